package kintai

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/tidwall/buntdb"
)

// AttendanceRepository persists one record per (user, day). Save is
// create-or-replace and atomic per record.
type AttendanceRepository interface {
	GetRecord(userID string, date Date) (*AttendanceRecord, error)
	SaveRecord(record *AttendanceRecord) error
	ListRecords(userID string, start, end Date) ([]*AttendanceRecord, error)
}

func NewAttendanceRepository(db *buntdb.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

type attendanceRepository struct {
	db *buntdb.DB
}

// recordKey escapes the user id so an id containing the delimiter cannot
// fold its records into another user's key range.
func recordKey(userID string, date Date) string {
	return fmt.Sprintf("attendance:%s:%s", url.QueryEscape(userID), date)
}

func (r *attendanceRepository) GetRecord(userID string, date Date) (*AttendanceRecord, error) {
	var rec *AttendanceRecord
	err := r.db.View(func(tx *buntdb.Tx) error {
		v, err := tx.Get(recordKey(userID, date))
		if errors.Is(err, buntdb.ErrNotFound) {
			return nil
		} else if err != nil {
			return err
		}
		rec = &AttendanceRecord{}
		return json.Unmarshal([]byte(v), rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *attendanceRepository) SaveRecord(record *AttendanceRecord) error {
	return r.db.Update(func(tx *buntdb.Tx) error {
		bs, err := json.Marshal(record)
		if err != nil {
			return err
		}
		_, _, err = tx.Set(recordKey(record.UserID, record.Date), string(bs), nil)
		return err
	})
}

// ListRecords returns the user's records with dates in [start, end],
// ascending. ISO day keys sort lexicographically in date order, so the
// scan is a plain key-range walk.
func (r *attendanceRepository) ListRecords(userID string, start, end Date) ([]*AttendanceRecord, error) {
	var recs []*AttendanceRecord
	err := r.db.View(func(tx *buntdb.Tx) error {
		var iterErr error
		err := tx.AscendRange("", recordKey(userID, start), recordKey(userID, end.Next()), func(key, value string) bool {
			rec := &AttendanceRecord{}
			if err := json.Unmarshal([]byte(value), rec); err != nil {
				iterErr = err
				return false
			}
			recs = append(recs, rec)
			return true
		})
		if err != nil {
			return err
		}
		return iterErr
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}
