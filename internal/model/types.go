// Package model defines shared data structures.
package model

import (
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the calendar date format used for record dates.
const DateLayout = "2006-01-02"

var validate = validator.New()

// Quality is the user-selected sleep quality level.
type Quality int

// Quality levels.
const (
	QualityVeryPoor  Quality = 1
	QualityAverage   Quality = 2
	QualityExcellent Quality = 3
)

// DefaultQuality is the quality selected when a tracker starts.
const DefaultQuality = QualityExcellent

// Qualities lists the valid quality levels in ascending order.
var Qualities = []Quality{QualityVeryPoor, QualityAverage, QualityExcellent}

// Valid reports whether q is one of the enumerated levels.
func (q Quality) Valid() bool {
	return q >= QualityVeryPoor && q <= QualityExcellent
}

// Label returns the human-readable name of the level.
func (q Quality) Label() string {
	switch q {
	case QualityVeryPoor:
		return "Very Poor"
	case QualityAverage:
		return "Average"
	case QualityExcellent:
		return "Excellent"
	default:
		return "Unknown"
	}
}

// Config defines tracker settings.
type Config struct {
	DefaultQuality Quality
	Clock24h       bool
	UTCDates       bool
	TrendWindow    int
}

// SleepRecord is a committed summary of one past sleep session.
// Build records with NewSleepRecord; Duration and Date are derived.
type SleepRecord struct {
	ID           string    `validate:"required"`
	Date         string    `validate:"required,datetime=2006-01-02"`
	SleepTime    time.Time `validate:"required"`
	WakeTime     time.Time `validate:"required,gtfield=SleepTime"`
	Duration     float64   `validate:"gte=0"`
	SleepQuality Quality   `validate:"oneof=1 2 3"`
}

// NewSleepRecord builds a record for the interval [sleep, wake].
// Date is taken from sleep in its own location.
func NewSleepRecord(id string, sleep, wake time.Time, quality Quality) SleepRecord {
	return SleepRecord{
		ID:           id,
		Date:         sleep.Format(DateLayout),
		SleepTime:    sleep,
		WakeTime:     wake,
		Duration:     HoursBetween(sleep, wake),
		SleepQuality: quality,
	}
}

// HoursBetween returns the interval length in hours rounded to two decimals.
func HoursBetween(sleep, wake time.Time) float64 {
	seconds := wake.Sub(sleep).Seconds()
	return math.Round(seconds/3600*100) / 100
}

// Validate checks the record invariants.
func (r SleepRecord) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid sleep record: %w", err)
	}
	if want := HoursBetween(r.SleepTime, r.WakeTime); math.Abs(r.Duration-want) > 1e-9 {
		return fmt.Errorf("invalid sleep record: duration %.2f does not match interval (%.2f)", r.Duration, want)
	}
	return nil
}

// Status is the session state machine position.
type Status int

// Session states.
const (
	StatusIdle Status = iota
	StatusSleeping
)

func (s Status) String() string {
	if s == StatusSleeping {
		return "Sleeping"
	}
	return "Idle"
}

// SessionState is a snapshot of the current session.
type SessionState struct {
	Status          Status
	StartTime       time.Time
	ElapsedSeconds  int
	SelectedQuality Quality
}

// Sleeping reports whether a session is active.
func (s SessionState) Sleeping() bool {
	return s.Status == StatusSleeping
}
