package kintai

// Report is the date-range projection of a user's attendance records.
// Entries are ordered by date ascending; an empty range is a valid
// outcome, not an error.
type Report struct {
	UserID    string        `json:"user_id"`
	StartDate Date          `json:"start_date"`
	EndDate   Date          `json:"end_date"`
	TotalDays int           `json:"total_days"`
	Entries   []ReportEntry `json:"entries"`
}

// ReportEntry is one day's totals plus its session list.
type ReportEntry struct {
	Date             Date      `json:"date"`
	TotalWorkedHours float64   `json:"total_worked_hours"`
	TotalBreakHours  float64   `json:"total_break_hours"`
	NetHoursWorked   float64   `json:"net_hours_worked"`
	Sessions         []Session `json:"sessions"`
}

func newReportEntry(rec *AttendanceRecord) ReportEntry {
	return ReportEntry{
		Date:             rec.Date,
		TotalWorkedHours: rec.TotalWorkedHours,
		TotalBreakHours:  rec.TotalBreakHours,
		NetHoursWorked:   rec.NetHoursWorked,
		Sessions:         rec.Sessions,
	}
}
