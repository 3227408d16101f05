package view

import (
	"testing"
	"time"

	"kintai/kintai"
)

func TestHoursToString(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{0, "00:00"},
		{0.5, "00:30"},
		{7.5, "07:30"},
		{8, "08:00"},
		{25.25, "25:15"},
	}
	for _, tt := range tests {
		if got := hoursToString(tt.hours); got != tt.want {
			t.Errorf("hoursToString(%v) = %s, want %s", tt.hours, got, tt.want)
		}
	}
}

func TestBuildTableWriter_RowPerBreak(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	out := t0.Add(8 * time.Hour)
	bEnd := t0.Add(4*time.Hour + 30*time.Minute)

	report := &kintai.Report{
		UserID:    "u1",
		StartDate: "2024-03-01",
		EndDate:   "2024-03-02",
		TotalDays: 2,
		Entries: []kintai.ReportEntry{
			{
				Date:             "2024-03-01",
				TotalWorkedHours: 8,
				TotalBreakHours:  0.5,
				NetHoursWorked:   7.5,
				Sessions: []kintai.Session{{
					ClockIn:  t0,
					ClockOut: &out,
					Breaks: []kintai.Break{{
						BreakStart: t0.Add(4 * time.Hour),
						BreakEnd:   &bEnd,
					}},
				}},
			},
			{Date: "2024-03-02"},
		},
	}

	tw := buildTableWriter(report)
	// Header + one break row + one empty-day row + footer.
	if got := tw.Length(); got != 2 {
		t.Fatalf("body rows = %d, want 2", got)
	}
}

func TestPtrTimeToString(t *testing.T) {
	if got := ptrTimeToString(nil); got != "" {
		t.Fatalf("nil time = %q, want empty", got)
	}
	at := time.Date(2024, 3, 1, 13, 5, 0, 0, time.UTC)
	if got := ptrTimeToString(&at); got != "13:05" {
		t.Fatalf("got %q, want 13:05", got)
	}
}
