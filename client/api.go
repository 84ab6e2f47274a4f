package client

import (
	"context"
	"net/http"

	attend "github.com/smartattend/go-attend"
)

// Login verifies credentials and returns the issued token and role.
// Satisfies attend.LoginService so the session manager can drive it.
func (c *Client) Login(ctx context.Context, email, password string) (attend.LoginResult, error) {
	var result attend.LoginResult
	err := c.post(ctx, "/auth/login", Credentials{Email: email, Password: password}, &result)
	return result, err
}

// RegisterUser creates a dashboard account.
func (c *Client) RegisterUser(ctx context.Context, req RegisterUserRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return c.post(ctx, "/auth/register", req, nil)
}

// RegisterStudentFace enrolls a student with a captured face image.
func (c *Client) RegisterStudentFace(ctx context.Context, req RegisterStudentRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return c.post(ctx, "/register", req, nil)
}

// MarkAttendance submits a captured frame for face matching. A non-match is
// a valid response, not an error.
func (c *Client) MarkAttendance(ctx context.Context, image string) (MarkResult, error) {
	var result MarkResult
	err := c.post(ctx, "/mark_attendance", map[string]string{"image": image}, &result)
	return result, err
}

// Stats fetches the scanner view's headline counters.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := c.get(ctx, "/stats", &stats)
	return stats, err
}

// AttendanceLog fetches the recent activity feed.
func (c *Client) AttendanceLog(ctx context.Context) ([]LogEntry, error) {
	var log []LogEntry
	err := c.get(ctx, "/attendance_log", &log)
	return log, err
}

// HODDashboard fetches the department head's dashboard.
func (c *Client) HODDashboard(ctx context.Context) (*HODDashboard, error) {
	data := &HODDashboard{}
	if err := c.get(ctx, "/dashboard/hod", data); err != nil {
		return nil, err
	}
	return data, nil
}

// StudentDashboard fetches the authenticated student's dashboard.
func (c *Client) StudentDashboard(ctx context.Context) (*StudentDashboard, error) {
	data := &StudentDashboard{}
	if err := c.get(ctx, "/dashboard/student", data); err != nil {
		return nil, err
	}
	return data, nil
}

// Students fetches the roster.
func (c *Client) Students(ctx context.Context) (*StudentsList, error) {
	data := &StudentsList{}
	if err := c.get(ctx, "/students", data); err != nil {
		return nil, err
	}
	return data, nil
}

// ApplyLeave files a leave application for the authenticated student.
func (c *Client) ApplyLeave(ctx context.Context, req LeaveRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return c.post(ctx, "/leave/apply", req, nil)
}

// MyLeaves lists the authenticated student's leave applications.
func (c *Client) MyLeaves(ctx context.Context) ([]LeaveRecord, error) {
	var leaves []LeaveRecord
	err := c.get(ctx, "/leave/my", &leaves)
	return leaves, err
}

// AllLeaveRequests lists every leave request for department-head review.
func (c *Client) AllLeaveRequests(ctx context.Context) ([]LeaveRequestRecord, error) {
	var requests []LeaveRequestRecord
	err := c.get(ctx, "/leave/all", &requests)
	return requests, err
}

// ActOnLeave approves or rejects a request.
func (c *Client) ActOnLeave(ctx context.Context, action LeaveAction) error {
	if err := action.Validate(); err != nil {
		return err
	}
	return c.post(ctx, "/leave/action", action, nil)
}

// Health probes the backend with a short deadline and reports reachability.
func (c *Client) Health(ctx context.Context) bool {
	err := c.do(ctx, http.MethodGet, "/health", nil, nil, HealthTimeout)
	return err == nil
}
