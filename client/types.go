package client

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
)

// Leave request statuses as the backend spells them.
const (
	LeaveStatusPending  = "Pending"
	LeaveStatusApproved = "Approved"
	LeaveStatusRejected = "Rejected"
)

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterUserRequest creates a dashboard account (admin/faculty/student
// login, no face enrollment).
type RegisterUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Dept     string `json:"dept"`
	Role     string `json:"role,omitempty"`
	Password string `json:"password"`
}

func (r RegisterUserRequest) Validate() error {
	return asValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 100)),
	))
}

// RegisterStudentRequest enrolls a student together with a captured face
// image (a data URL).
type RegisterStudentRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Dept     string `json:"dept"`
	Password string `json:"password"`
	Image    string `json:"image"`
}

func (r RegisterStudentRequest) Validate() error {
	return asValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 100)),
		validation.Field(&r.Image, validation.Required),
	))
}

// MarkResult is the face matcher's verdict for one submitted frame.
type MarkResult struct {
	Match bool   `json:"match"`
	Name  string `json:"name,omitempty"`
}

// Stats is the scanner view's headline counters.
type Stats struct {
	TotalStudents int `json:"total_students"`
	PresentToday  int `json:"present_today"`
}

// LogEntry is one attendance record in the activity feed.
type LogEntry struct {
	Name string `json:"name"`
	Date string `json:"date"`
	Time string `json:"time"`
}

// HODStats is the department head's headline block.
type HODStats struct {
	TotalStudents         int     `json:"total_students"`
	ActiveFaculty         int     `json:"active_faculty"`
	TodayAttendance       int     `json:"today_attendance"`
	TodayAttendanceRate   float64 `json:"today_attendance_rate"`
	AverageAttendanceRate float64 `json:"average_attendance_rate"`
	TotalSessions         int     `json:"total_sessions"`
}

// Defaulter is a student below the attendance threshold.
type Defaulter struct {
	Name                 string  `json:"name"`
	Email                string  `json:"email"`
	Dept                 string  `json:"dept"`
	AttendancePercentage float64 `json:"attendance_percentage"`
	PresentDays          int     `json:"present_days"`
	TotalSessions        int     `json:"total_sessions"`
}

// DeptOverview is one department's row in the overview table.
type DeptOverview struct {
	Dept           string  `json:"dept"`
	TotalStudents  int     `json:"total_students"`
	PresentToday   int     `json:"present_today"`
	AttendanceRate float64 `json:"attendance_rate"`
}

// TrendPoint is one day on the attendance trend chart.
type TrendPoint struct {
	Date  string  `json:"date"`
	Count int     `json:"count"`
	Rate  float64 `json:"rate"`
}

// HODDashboard is the full department-head dashboard payload.
type HODDashboard struct {
	Stats           HODStats       `json:"stats"`
	Defaulters      []Defaulter    `json:"defaulters"`
	DeptOverview    []DeptOverview `json:"dept_overview"`
	AttendanceTrend []TrendPoint   `json:"attendance_trend"`
	DefaulterCount  int            `json:"defaulter_count"`
}

// StudentDetails identifies the student on their own dashboard.
type StudentDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Dept  string `json:"dept"`
}

// StudentSummary is the per-student attendance summary block.
type StudentSummary struct {
	PresentDays   int `json:"present_days"`
	AbsentDays    int `json:"absent_days"`
	TotalSessions int `json:"total_sessions"`
	CurrentStreak int `json:"current_streak"`
}

// SessionRecord is one attendance session from the student's history.
type SessionRecord struct {
	Date   string `json:"date"`
	Time   string `json:"time"`
	Status string `json:"status"`
}

// StudentDashboard is the full student dashboard payload.
type StudentDashboard struct {
	StudentDetails       StudentDetails  `json:"student_details"`
	Summary              StudentSummary  `json:"summary"`
	RecentSessions       []SessionRecord `json:"recent_sessions"`
	History              []SessionRecord `json:"history"`
	AttendancePercentage float64         `json:"attendance_percentage"`
}

// StudentRecord is one row of the students roster.
type StudentRecord struct {
	StudentID            string  `json:"student_id"`
	Name                 string  `json:"name"`
	Email                string  `json:"email"`
	Dept                 string  `json:"dept"`
	AttendancePercentage float64 `json:"attendance_percentage"`
	PresentDays          int     `json:"present_days"`
	TotalSessions        int     `json:"total_sessions"`
	LastSeenDate         string  `json:"last_seen_date"`
	LastSeenTime         string  `json:"last_seen_time"`
}

// StudentsList is the roster payload.
type StudentsList struct {
	Students      []StudentRecord `json:"students"`
	TotalStudents int             `json:"total_students"`
	TotalSessions int             `json:"total_sessions"`
}

// LeaveRequest is a student's leave application.
type LeaveRequest struct {
	Type     string `json:"type"`
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
	Reason   string `json:"reason"`
}

func (r LeaveRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Type, validation.Required),
		validation.Field(&r.FromDate, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&r.ToDate, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&r.Reason, validation.Required, validation.Length(1, 500)),
	)
	if err != nil {
		return asValidationError(err)
	}
	if r.ToDate < r.FromDate {
		return goerrors.New("to_date must not be before from_date", goerrors.CategoryValidation)
	}
	return nil
}

// LeaveRecord is one of the student's own leave applications with its
// current status.
type LeaveRecord struct {
	Type     string `json:"type"`
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
	Reason   string `json:"reason"`
	Status   string `json:"status"`
}

// LeaveRequestRecord is a pending/decided request as seen by the department
// head, identifying the requesting student.
type LeaveRequestRecord struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Type     string `json:"type"`
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
	Reason   string `json:"reason"`
	Status   string `json:"status"`
}

// LeaveAction approves or rejects a request, keyed the way the backend keys
// leave rows: requester email plus start date.
type LeaveAction struct {
	Email    string `json:"email"`
	FromDate string `json:"from_date"`
	Status   string `json:"status"`
}

func (a LeaveAction) Validate() error {
	return asValidationError(validation.ValidateStruct(&a,
		validation.Field(&a.Email, validation.Required, is.Email),
		validation.Field(&a.FromDate, validation.Required),
		validation.Field(&a.Status, validation.Required, validation.In(LeaveStatusApproved, LeaveStatusRejected)),
	))
}

// asValidationError folds ozzo's error into the module's validation
// category so callers can branch on kind without knowing the library.
func asValidationError(err error) error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, err.Error())
}
