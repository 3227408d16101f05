package kintai

import "time"

// Date is a day key in "2006-01-02" form. Lexicographic order equals
// chronological order, which the storage layer relies on for range scans.
type Date string

const dateLayout = "2006-01-02"

func ParseDate(s string) (Date, error) {
	if _, err := time.Parse(dateLayout, s); err != nil {
		return "", invalidRangef("malformed date %q, want YYYY-MM-DD", s)
	}
	return Date(s), nil
}

func (d Date) Time() time.Time {
	t, _ := time.Parse(dateLayout, string(d))
	return t
}

// Next returns the following calendar day.
func (d Date) Next() Date {
	return Date(d.Time().AddDate(0, 0, 1).Format(dateLayout))
}

func (d Date) Before(other Date) bool {
	return string(d) < string(other)
}

// DateOf returns the day an instant belongs to. The boundary between days
// is local midnight pushed forward by shift: with shift = 5h, work at
// 02:00 is still attributed to the previous day.
func DateOf(t time.Time, shift time.Duration) Date {
	return Date(t.Add(-shift).Format(dateLayout))
}

// Clock supplies the current instant. Injected so tests can pin "today".
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func SystemClock() Clock { return systemClock{} }
