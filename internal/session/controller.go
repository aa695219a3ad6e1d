package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/sleeptrack/internal/model"
)

// Recorder receives completed sleep records.
type Recorder interface {
	Append(ctx context.Context, rec model.SleepRecord) error
}

// Controller drives start/stop transitions and commits finished sessions.
type Controller struct {
	timer    Timer
	quality  model.Quality
	recorder Recorder

	now      func() time.Time
	newID    func() string
	utcDates bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithIDGenerator replaces the record ID source.
func WithIDGenerator(newID func() string) Option {
	return func(c *Controller) {
		if newID != nil {
			c.newID = newID
		}
	}
}

// WithUTCDates stamps sessions in UTC instead of the clock's location.
func WithUTCDates(utc bool) Option {
	return func(c *Controller) {
		c.utcDates = utc
	}
}

// NewController returns an idle controller with the given initial quality.
// An invalid quality falls back to model.DefaultQuality.
func NewController(recorder Recorder, quality model.Quality, opts ...Option) *Controller {
	if !quality.Valid() {
		quality = model.DefaultQuality
	}
	c := &Controller{
		quality:  quality,
		recorder: recorder,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start begins a session. It is a no-op while already sleeping.
func (c *Controller) Start() bool {
	return c.timer.Begin(c.stamp())
}

// Stop ends the session and commits its record. It is a no-op while idle.
// When the recorder fails the session keeps running and the error is returned.
func (c *Controller) Stop(ctx context.Context) (model.SleepRecord, bool, error) {
	if !c.timer.Sleeping() {
		return model.SleepRecord{}, false, nil
	}
	start := c.timer.Start()
	end := c.stamp()
	if !end.After(start) {
		end = start.Add(time.Second)
	}
	rec := model.NewSleepRecord(c.newID(), start, end, c.quality)
	if err := c.recorder.Append(ctx, rec); err != nil {
		return model.SleepRecord{}, false, err
	}
	c.timer.End()
	return rec, true, nil
}

// Tick advances the elapsed counter for the tick chain gen.
func (c *Controller) Tick(gen int) bool {
	return c.timer.Tick(gen)
}

// SetQuality changes the selected quality. Only honoured while idle.
func (c *Controller) SetQuality(q model.Quality) bool {
	if c.timer.Sleeping() || !q.Valid() {
		return false
	}
	c.quality = q
	return true
}

// Generation returns the current tick chain identifier.
func (c *Controller) Generation() int {
	return c.timer.Generation()
}

// State returns a snapshot of the session.
func (c *Controller) State() model.SessionState {
	state := model.SessionState{
		Status:          model.StatusIdle,
		SelectedQuality: c.quality,
	}
	if c.timer.Sleeping() {
		state.Status = model.StatusSleeping
		state.StartTime = c.timer.Start()
		state.ElapsedSeconds = c.timer.Elapsed()
	}
	return state
}

func (c *Controller) stamp() time.Time {
	now := c.now().Truncate(time.Second)
	if c.utcDates {
		now = now.UTC()
	}
	return now
}
