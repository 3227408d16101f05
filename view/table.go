package view

import (
	"fmt"
	"os"
	"time"

	"kintai/kintai"

	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderReport prints a date-range attendance report as a terminal table,
// one row per break (or per session when it has none).
func RenderReport(report *kintai.Report) {
	buildTableWriter(report).Render()
}

func buildTableWriter(report *kintai.Report) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Date", "Clock In", "Clock Out", "Break Start", "Break End", "Break", "Worked", "Net"})

	var workedSum, netSum float64
	for _, entry := range report.Entries {
		workedSum += entry.TotalWorkedHours
		netSum += entry.NetHoursWorked

		breakStr := hoursToString(entry.TotalBreakHours)
		workedStr := hoursToString(entry.TotalWorkedHours)
		netStr := hoursToString(entry.NetHoursWorked)

		if len(entry.Sessions) == 0 {
			t.AppendRow(table.Row{entry.Date, "", "", "", "", breakStr, workedStr, netStr})
			continue
		}
		for _, s := range entry.Sessions {
			if len(s.Breaks) == 0 {
				t.AppendRow(table.Row{
					entry.Date,
					s.ClockIn.Format("15:04"),
					ptrTimeToString(s.ClockOut),
					"",
					"",
					breakStr,
					workedStr,
					netStr,
				})
				continue
			}
			for _, b := range s.Breaks {
				t.AppendRow(table.Row{
					entry.Date,
					s.ClockIn.Format("15:04"),
					ptrTimeToString(s.ClockOut),
					b.BreakStart.Format("15:04"),
					ptrTimeToString(b.BreakEnd),
					breakStr,
					workedStr,
					netStr,
				})
			}
		}
	}

	t.AppendFooter(table.Row{"", "", "", "", "", "Total", hoursToString(workedSum), hoursToString(netSum)})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true},
		{Number: 2, AutoMerge: true},
		{Number: 3, AutoMerge: true},
		{Number: 6, AutoMerge: true},
		{Number: 7, AutoMerge: true},
		{Number: 8, AutoMerge: true},
	})
	t.SetStyle(table.StyleRounded)
	return t
}

func hoursToString(hours float64) string {
	d := time.Duration(hours * float64(time.Hour))
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}

func ptrTimeToString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("15:04")
}
