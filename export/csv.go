// Package export renders dashboard data as CSV reports. Every cell is
// quoted and embedded quotes are doubled, so commas, quotes and newlines in
// the data never break the row structure.
package export

import (
	"strconv"
	"strings"
	"time"

	"github.com/smartattend/go-attend/client"
)

// Cell quotes one value for a CSV row. Quotes inside the value are doubled.
func Cell(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

// Encode joins rows of raw cell values into a CSV document. Rows are joined
// with a bare newline; an empty row becomes a blank line separating report
// sections.
func Encode(rows [][]string) string {
	out := make([]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = Cell(v)
		}
		out[i] = strings.Join(cells, ",")
	}
	return strings.Join(out, "\n")
}

// HODReport lays out the department head's dashboard as a three-section
// report: headline metrics, top defaulters, department overview.
func HODReport(d client.HODDashboard) string {
	rows := [][]string{
		{"Metric", "Value"},
		{"Total Students", itoa(d.Stats.TotalStudents)},
		{"Faculty Members", itoa(d.Stats.ActiveFaculty)},
		{"Today Attendance", itoa(d.Stats.TodayAttendance)},
		{"Today Attendance Rate (%)", ftoa(d.Stats.TodayAttendanceRate)},
		{"Average Attendance Rate (%)", ftoa(d.Stats.AverageAttendanceRate)},
		{"Total Sessions", itoa(d.Stats.TotalSessions)},
		{},
		{"Top Defaulters"},
		{"Name", "Email", "Department", "Attendance (%)", "Present Days", "Total Sessions"},
	}
	for _, item := range d.Defaulters {
		rows = append(rows, []string{
			item.Name,
			item.Email,
			item.Dept,
			ftoa(item.AttendancePercentage),
			itoa(item.PresentDays),
			itoa(item.TotalSessions),
		})
	}
	rows = append(rows,
		[]string{},
		[]string{"Department Overview"},
		[]string{"Department", "Total Students", "Present Today", "Attendance (%)"},
	)
	for _, item := range d.DeptOverview {
		rows = append(rows, []string{
			item.Dept,
			itoa(item.TotalStudents),
			itoa(item.PresentToday),
			ftoa(item.AttendanceRate),
		})
	}
	return Encode(rows)
}

// HODReportFilename names the report file by the export date.
func HODReportFilename(now time.Time) string {
	return "hod-dashboard-" + now.UTC().Format("2006-01-02") + ".csv"
}

// AttendanceLog renders the activity feed as a flat CSV table.
func AttendanceLog(entries []client.LogEntry) string {
	rows := [][]string{{"Name", "Date", "Time"}}
	for _, e := range entries {
		rows = append(rows, []string{e.Name, e.Date, e.Time})
	}
	return Encode(rows)
}

// AttendanceLogFilename names the log export file by the export date.
func AttendanceLogFilename(now time.Time) string {
	return "attendance-log-" + now.UTC().Format("2006-01-02") + ".csv"
}

func itoa(n int) string { return strconv.Itoa(n) }

// ftoa renders rates the way the dashboard shows them, without a forced
// number of decimals.
func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
