package kintai

import "time"

// Interval is a possibly-open time span.
type Interval struct {
	Start time.Time
	End   *time.Time
}

// ElapsedHours returns end minus start in fractional hours.
func ElapsedHours(start, end time.Time) (float64, error) {
	if end.Before(start) {
		return 0, invalidIntervalf("interval ends at %s before it starts at %s",
			end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return end.Sub(start).Hours(), nil
}

// SumHours totals the closed intervals. Open intervals contribute nothing
// until they are closed.
func SumHours(intervals []Interval) (float64, error) {
	var total float64
	for _, iv := range intervals {
		if iv.End == nil {
			continue
		}
		h, err := ElapsedHours(iv.Start, *iv.End)
		if err != nil {
			return 0, err
		}
		total += h
	}
	return total, nil
}
