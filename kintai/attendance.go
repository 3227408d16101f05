package kintai

import "time"

// Break is a pause nested inside a Session. Open while BreakEnd is nil.
// Coordinates are recorded as opaque metadata, never validated.
type Break struct {
	BreakStart    time.Time  `json:"break_start"`
	BreakStartLat float64    `json:"break_start_lat"`
	BreakStartLng float64    `json:"break_start_lng"`
	BreakEnd      *time.Time `json:"break_end"`
	BreakEndLat   *float64   `json:"break_end_lat,omitempty"`
	BreakEndLng   *float64   `json:"break_end_lng,omitempty"`
}

func (b *Break) Open() bool { return b.BreakEnd == nil }

// Session is one contiguous clock-in-to-clock-out span. Open while
// ClockOut is nil. Totals stay zero until the session closes.
type Session struct {
	ClockIn          time.Time  `json:"clock_in"`
	ClockInLat       float64    `json:"clock_in_lat"`
	ClockInLng       float64    `json:"clock_in_lng"`
	ClockOut         *time.Time `json:"clock_out"`
	ClockOutLat      *float64   `json:"clock_out_lat,omitempty"`
	ClockOutLng      *float64   `json:"clock_out_lng,omitempty"`
	Breaks           []Break    `json:"breaks"`
	TotalWorkedHours float64    `json:"total_worked_hours"`
	TotalBreakHours  float64    `json:"total_break_hours"`
	NetHoursWorked   float64    `json:"net_hours_worked"`
}

func (s *Session) Open() bool { return s.ClockOut == nil }

// OpenBreak returns the session's unterminated break, or nil. At most one
// exists at any time.
func (s *Session) OpenBreak() *Break {
	for i := range s.Breaks {
		if s.Breaks[i].Open() {
			return &s.Breaks[i]
		}
	}
	return nil
}

// AttendanceRecord aggregates one user's sessions for one calendar day.
// The store holds exactly one record per (user, day).
type AttendanceRecord struct {
	UserID           string    `json:"user_id"`
	Date             Date      `json:"date"`
	Sessions         []Session `json:"sessions"`
	TotalWorkedHours float64   `json:"total_worked_hours"`
	TotalBreakHours  float64   `json:"total_break_hours"`
	NetHoursWorked   float64   `json:"net_hours_worked"`
}

func NewAttendanceRecord(userID string, date Date) *AttendanceRecord {
	return &AttendanceRecord{
		UserID:   userID,
		Date:     date,
		Sessions: []Session{},
	}
}

// OpenSession returns the session still waiting for a clock-out, or nil.
// At most one exists per record at any time.
func (r *AttendanceRecord) OpenSession() *Session {
	for i := range r.Sessions {
		if r.Sessions[i].Open() {
			return &r.Sessions[i]
		}
	}
	return nil
}

// State derives the user's current work state from the record's shape.
func (r *AttendanceRecord) State() WorkState {
	s := r.OpenSession()
	if s == nil {
		return StateOff
	}
	if s.OpenBreak() != nil {
		return StateBreaking
	}
	return StateWorking
}

// Recompute rederives every closed session's totals and the day's rollups
// from scratch. The totals are a pure function of the session list, so
// running it again on an unchanged record changes nothing. Nothing is
// patched incrementally; that is what keeps the rollups drift-free.
func (r *AttendanceRecord) Recompute() error {
	var worked, breaks float64
	for i := range r.Sessions {
		s := &r.Sessions[i]
		if s.Open() {
			// Closed breaks exist inside open sessions too; validate them
			// now so a malformed one is caught before it is persisted.
			if _, err := SumHours(breakIntervals(s.Breaks)); err != nil {
				return err
			}
			continue
		}
		w, err := ElapsedHours(s.ClockIn, *s.ClockOut)
		if err != nil {
			return err
		}
		b, err := SumHours(breakIntervals(s.Breaks))
		if err != nil {
			return err
		}
		s.TotalWorkedHours = w
		s.TotalBreakHours = b
		s.NetHoursWorked = w - b
		worked += w
		breaks += b
	}
	r.TotalWorkedHours = worked
	r.TotalBreakHours = breaks
	r.NetHoursWorked = worked - breaks
	return nil
}

func breakIntervals(bs []Break) []Interval {
	ivs := make([]Interval, 0, len(bs))
	for _, b := range bs {
		ivs = append(ivs, Interval{Start: b.BreakStart, End: b.BreakEnd})
	}
	return ivs
}
