// Package session implements the sleep session state machine.
package session

import "time"

// Timer tracks the active sleep interval and its elapsed seconds.
//
// Every transition bumps the generation. Tick events carry the generation
// they were scheduled for, so at most one tick chain is ever honoured.
// The zero value is an idle timer.
type Timer struct {
	sleeping   bool
	start      time.Time
	elapsed    int
	generation int
}

// Begin enters the sleeping state at now. It reports false if already sleeping.
func (t *Timer) Begin(now time.Time) bool {
	if t.sleeping {
		return false
	}
	t.sleeping = true
	t.start = now
	t.elapsed = 0
	t.generation++
	return true
}

// End leaves the sleeping state and returns the start timestamp.
func (t *Timer) End() (time.Time, bool) {
	if !t.sleeping {
		return time.Time{}, false
	}
	start := t.start
	t.sleeping = false
	t.start = time.Time{}
	t.elapsed = 0
	t.generation++
	return start, true
}

// Tick advances elapsed time by one second when gen is current.
// The return value tells the scheduler whether to arm the next tick.
func (t *Timer) Tick(gen int) bool {
	if !t.sleeping || gen != t.generation {
		return false
	}
	t.elapsed++
	return true
}

// Sleeping reports whether a session is active.
func (t *Timer) Sleeping() bool { return t.sleeping }

// Start returns the session start, or the zero time when idle.
func (t *Timer) Start() time.Time { return t.start }

// Elapsed returns the number of ticks observed in the current session.
func (t *Timer) Elapsed() int { return t.elapsed }

// Generation identifies the current tick chain.
func (t *Timer) Generation() int { return t.generation }
