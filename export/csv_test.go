package export_test

import (
	"strings"
	"testing"
	"time"

	"github.com/smartattend/go-attend/client"
	"github.com/smartattend/go-attend/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellQuoting(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Ada", `"Ada"`},
		{"empty", "", `""`},
		{"comma stays inside the cell", "x,y", `"x,y"`},
		{"quotes are doubled", `say "hi"`, `"say ""hi"""`},
		{"only a quote", `"`, `""""`},
		{"newline stays inside the cell", "a\nb", "\"a\nb\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, export.Cell(tt.in))
		})
	}
}

func TestEncodeRowsAndBlankSeparators(t *testing.T) {
	csv := export.Encode([][]string{
		{"Name", "Dept"},
		{"Smith, John", "CS"},
		{},
		{"Totals"},
	})

	assert.Equal(t, "\"Name\",\"Dept\"\n\"Smith, John\",\"CS\"\n\n\"Totals\"", csv)
}

func TestHODReportLayout(t *testing.T) {
	report := export.HODReport(client.HODDashboard{
		Stats: client.HODStats{
			TotalStudents:         120,
			ActiveFaculty:         8,
			TodayAttendance:       96,
			TodayAttendanceRate:   80,
			AverageAttendanceRate: 77.5,
			TotalSessions:         42,
		},
		Defaulters: []client.Defaulter{
			{
				Name:                 `Bobby "Tables"`,
				Email:                "bobby@campus.edu",
				Dept:                 "CS",
				AttendancePercentage: 41.7,
				PresentDays:          5,
				TotalSessions:        12,
			},
		},
		DeptOverview: []client.DeptOverview{
			{Dept: "Mech, Auto", TotalStudents: 30, PresentToday: 21, AttendanceRate: 70},
		},
	})

	lines := strings.Split(report, "\n")
	require.Len(t, lines, 15)

	assert.Equal(t, `"Metric","Value"`, lines[0])
	assert.Equal(t, `"Total Students","120"`, lines[1])
	assert.Equal(t, `"Faculty Members","8"`, lines[2])
	assert.Equal(t, `"Today Attendance","96"`, lines[3])
	assert.Equal(t, `"Today Attendance Rate (%)","80"`, lines[4])
	assert.Equal(t, `"Average Attendance Rate (%)","77.5"`, lines[5])
	assert.Equal(t, `"Total Sessions","42"`, lines[6])

	// Sections are separated by blank lines, not by markers.
	assert.Equal(t, "", lines[7])
	assert.Equal(t, `"Top Defaulters"`, lines[8])
	assert.Equal(t, `"Name","Email","Department","Attendance (%)","Present Days","Total Sessions"`, lines[9])
	assert.Equal(t, `"Bobby ""Tables""","bobby@campus.edu","CS","41.7","5","12"`, lines[10])

	assert.Equal(t, "", lines[11])
	assert.Equal(t, `"Department Overview"`, lines[12])
	assert.Equal(t, `"Department","Total Students","Present Today","Attendance (%)"`, lines[13])
	assert.Equal(t, `"Mech, Auto","30","21","70"`, lines[14])
}

func TestHODReportEmptyDashboard(t *testing.T) {
	report := export.HODReport(client.HODDashboard{})

	lines := strings.Split(report, "\n")
	// Seven metric rows, two section headings with their column rows, two
	// separators, zero data rows.
	require.Len(t, lines, 13)
	assert.Equal(t, `"Total Students","0"`, lines[1])
	assert.Equal(t, `"Top Defaulters"`, lines[8])
	assert.Equal(t, `"Department Overview"`, lines[11])
	assert.Equal(t, `"Department","Total Students","Present Today","Attendance (%)"`, lines[12])
}

func TestAttendanceLogExport(t *testing.T) {
	csv := export.AttendanceLog([]client.LogEntry{
		{Name: "Ada Lovelace", Date: "2026-08-30", Time: "09:12:04"},
		{Name: `June "JJ" Jones`, Date: "2026-08-30", Time: "09:15:31"},
	})

	lines := strings.Split(csv, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, `"Name","Date","Time"`, lines[0])
	assert.Equal(t, `"Ada Lovelace","2026-08-30","09:12:04"`, lines[1])
	assert.Equal(t, `"June ""JJ"" Jones","2026-08-30","09:15:31"`, lines[2])
}

func TestExportFilenames(t *testing.T) {
	at := time.Date(2026, time.August, 30, 23, 5, 0, 0, time.UTC)

	assert.Equal(t, "hod-dashboard-2026-08-30.csv", export.HODReportFilename(at))
	assert.Equal(t, "attendance-log-2026-08-30.csv", export.AttendanceLogFilename(at))
}
