package kintai

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// AttendanceService drives the four state transitions of a user's work day
// and assembles date-range reports. Each mutating call performs exactly one
// load and one persist of the day's record; every precondition is checked
// before anything is written, so a failed call leaves the stored record
// untouched.
type AttendanceService interface {
	ClockIn(userID string, lat, lng float64) (*AttendanceRecord, error)
	ClockOut(userID string, lat, lng float64) (*AttendanceRecord, error)
	StartBreak(userID string, lat, lng float64) (*AttendanceRecord, error)
	EndBreak(userID string, lat, lng float64) (*AttendanceRecord, error)
	GetReport(userID string, start, end Date) (*Report, error)
}

func NewAttendanceService(repo AttendanceRepository, clock Clock, boundaryShift time.Duration, logger *slog.Logger, notificator Notificator) AttendanceService {
	return &attendanceService{
		repo:          repo,
		clock:         clock,
		boundaryShift: boundaryShift,
		logger:        logger,
		notificator:   notificator,
		userMux:       make(map[string]*sync.Mutex),
	}
}

type attendanceService struct {
	repo          AttendanceRepository
	clock         Clock
	boundaryShift time.Duration
	logger        *slog.Logger
	notificator   Notificator

	mu      sync.Mutex
	userMux map[string]*sync.Mutex
}

// lockUser serializes load-mutate-persist per user. Distinct users never
// contend. Mutexes are kept for the life of the service; the per-user
// footprint is one mutex.
func (s *attendanceService) lockUser(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.userMux[userID]
	if !ok {
		m = &sync.Mutex{}
		s.userMux[userID] = m
	}
	return m
}

// today resolves the day boundary once per request. A call arriving exactly
// at the boundary is attributed to whichever day this single evaluation
// lands on; the operation is not atomic against midnight rollover.
func (s *attendanceService) today(now time.Time) Date {
	return DateOf(now, s.boundaryShift)
}

func (s *attendanceService) ClockIn(userID string, lat, lng float64) (*AttendanceRecord, error) {
	mu := s.lockUser(userID)
	mu.Lock()
	defer mu.Unlock()

	now := s.clock.Now()
	date := s.today(now)

	rec, err := s.repo.GetRecord(userID, date)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		rec = NewAttendanceRecord(userID, date)
	} else if rec.OpenSession() != nil {
		return nil, conflictf("active session already open, clock out before starting a new one")
	}

	rec.Sessions = append(rec.Sessions, Session{
		ClockIn:    now,
		ClockInLat: lat,
		ClockInLng: lng,
		Breaks:     []Break{},
	})

	if err := s.saveRecord(rec); err != nil {
		return nil, err
	}
	s.logTransition("clock in", rec)
	s.notify("clock in", fmt.Sprintf("user %s clocked in", userID))
	return rec, nil
}

func (s *attendanceService) ClockOut(userID string, lat, lng float64) (*AttendanceRecord, error) {
	mu := s.lockUser(userID)
	mu.Lock()
	defer mu.Unlock()

	now := s.clock.Now()
	date := s.today(now)

	rec, err := s.repo.GetRecord(userID, date)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, notFoundf("no attendance record for today, clock in first")
	}
	sess := rec.OpenSession()
	if sess == nil {
		return nil, notFoundf("no open session to clock out from")
	}

	sess.ClockOut = &now
	sess.ClockOutLat = &lat
	sess.ClockOutLng = &lng

	if err := s.saveRecord(rec); err != nil {
		return nil, err
	}
	s.logTransition("clock out", rec)
	s.notify("clock out", fmt.Sprintf("user %s clocked out", userID))
	return rec, nil
}

func (s *attendanceService) StartBreak(userID string, lat, lng float64) (*AttendanceRecord, error) {
	mu := s.lockUser(userID)
	mu.Lock()
	defer mu.Unlock()

	now := s.clock.Now()
	date := s.today(now)

	rec, err := s.repo.GetRecord(userID, date)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, notFoundf("no attendance record for today, clock in first")
	}
	sess := rec.OpenSession()
	if sess == nil {
		return nil, notFoundf("no open session to start a break in")
	}
	if sess.OpenBreak() != nil {
		return nil, conflictf("break already in progress")
	}

	sess.Breaks = append(sess.Breaks, Break{
		BreakStart:    now,
		BreakStartLat: lat,
		BreakStartLng: lng,
	})

	if err := s.saveRecord(rec); err != nil {
		return nil, err
	}
	s.logTransition("break start", rec)
	s.notify("break start", fmt.Sprintf("user %s started a break", userID))
	return rec, nil
}

func (s *attendanceService) EndBreak(userID string, lat, lng float64) (*AttendanceRecord, error) {
	mu := s.lockUser(userID)
	mu.Lock()
	defer mu.Unlock()

	now := s.clock.Now()
	date := s.today(now)

	rec, err := s.repo.GetRecord(userID, date)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, notFoundf("no attendance record for today, clock in first")
	}
	sess := rec.OpenSession()
	if sess == nil {
		return nil, notFoundf("no open session to end a break in")
	}
	brk := sess.OpenBreak()
	if brk == nil {
		return nil, notFoundf("no open break to end")
	}
	// A clock stepping backwards must not close the break; once persisted
	// the malformed interval would fail every later recompute.
	if now.Before(brk.BreakStart) {
		return nil, invalidIntervalf("break would end at %s before it started at %s",
			now.Format(time.RFC3339), brk.BreakStart.Format(time.RFC3339))
	}

	brk.BreakEnd = &now
	brk.BreakEndLat = &lat
	brk.BreakEndLng = &lng

	if err := s.saveRecord(rec); err != nil {
		return nil, err
	}
	s.logTransition("break end", rec)
	s.notify("break end", fmt.Sprintf("user %s ended a break", userID))
	return rec, nil
}

// GetReport is a lock-free snapshot read. It may observe a record
// mid-update; staleness is acceptable for reporting.
func (s *attendanceService) GetReport(userID string, start, end Date) (*Report, error) {
	if end.Before(start) {
		return nil, invalidRangef("end date %s is before start date %s", end, start)
	}

	recs, err := s.repo.ListRecords(userID, start, end)
	if err != nil {
		return nil, err
	}

	report := &Report{
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
		TotalDays: len(recs),
		Entries:   make([]ReportEntry, 0, len(recs)),
	}
	for _, rec := range recs {
		report.Entries = append(report.Entries, newReportEntry(rec))
	}
	return report, nil
}

// saveRecord recomputes all rollups and persists. Recompute runs before
// every persist so the stored totals are always a function of the session
// list, never a patched value.
func (s *attendanceService) saveRecord(rec *AttendanceRecord) error {
	if err := rec.Recompute(); err != nil {
		return err
	}
	return s.repo.SaveRecord(rec)
}

func (s *attendanceService) logTransition(event string, rec *AttendanceRecord) {
	s.logger.Debug(event,
		slog.String("user_id", rec.UserID),
		slog.String("date", string(rec.Date)),
		slog.String("state", string(rec.State())),
	)
}

func (s *attendanceService) notify(event, message string) {
	if err := s.notificator.Notify(event, message); err != nil {
		s.logger.Warn("notify failed", slog.String("event", event), slog.String("error", err.Error()))
	}
}
