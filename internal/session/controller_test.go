package session

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/sleeptrack/internal/model"
	"github.com/verte-zerg/sleeptrack/internal/store"
)

type memRecorder struct {
	records []model.SleepRecord
	err     error
}

func (r *memRecorder) Append(_ context.Context, rec model.SleepRecord) error {
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, rec)
	return nil
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("rec-%d", n)
	}
}

func newTestController(rec Recorder, clock *fakeClock, q model.Quality) *Controller {
	return NewController(rec, q,
		WithClock(clock.Now),
		WithIDGenerator(sequentialIDs()),
		WithUTCDates(true),
	)
}

func TestOneHourScenario(t *testing.T) {
	st, err := store.Open()
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	clock := &fakeClock{now: time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC)}
	c := newTestController(st, clock, model.QualityExcellent)
	require.True(t, c.SetQuality(model.QualityAverage))

	require.True(t, c.Start())
	gen := c.Generation()
	for i := 0; i < 3600; i++ {
		require.True(t, c.Tick(gen))
	}
	assert.Equal(t, 3600, c.State().ElapsedSeconds)

	clock.now = time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC)
	rec, ok, err := c.Stop(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "2024-01-01", rec.Date)
	assert.Equal(t, 1.00, rec.Duration)
	assert.Equal(t, model.QualityAverage, rec.SleepQuality)

	snap, err := st.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snap, 1)
	assert.Equal(t, rec.ID, snap[0].ID)
	assert.Equal(t, model.StatusIdle, c.State().Status)
	assert.Equal(t, 0, c.State().ElapsedSeconds)
}

func TestOutOfTurnCallsDoNotRecord(t *testing.T) {
	rec := &memRecorder{}
	clock := &fakeClock{now: time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC)}
	c := newTestController(rec, clock, model.QualityAverage)

	_, ok, err := c.Stop(context.Background())
	require.NoError(t, err)
	assert.False(t, ok, "stop while idle must be a no-op")

	require.True(t, c.Start())
	clock.Advance(time.Hour)
	assert.False(t, c.Start(), "start while sleeping must be a no-op")
	assert.True(t, c.State().StartTime.Equal(time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC)))

	clock.Advance(time.Hour)
	_, ok, err = c.Stop(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	_, ok, err = c.Stop(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	require.Len(t, rec.records, 1)
	assert.Equal(t, 2.0, rec.records[0].Duration)
}

func TestCompletedPairsAddOneRecordEach(t *testing.T) {
	rec := &memRecorder{}
	clock := &fakeClock{now: time.Date(2024, 5, 1, 21, 0, 0, 0, time.UTC)}
	c := newTestController(rec, clock, model.QualityExcellent)

	for i := 1; i <= 5; i++ {
		c.Start()
		c.Start()
		clock.Advance(time.Duration(i) * 17 * time.Minute)
		_, ok, err := c.Stop(context.Background())
		require.NoError(t, err)
		require.True(t, ok)
		c.Stop(context.Background())
		clock.Advance(time.Hour)
		assert.Len(t, rec.records, i)
	}
	for _, r := range rec.records {
		assert.Equal(t, model.HoursBetween(r.SleepTime, r.WakeTime), r.Duration)
		assert.True(t, r.WakeTime.After(r.SleepTime))
		assert.Greater(t, r.Duration, 0.0)
	}
}

func TestQualityEditableOnlyWhileIdle(t *testing.T) {
	rec := &memRecorder{}
	clock := &fakeClock{now: time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC)}
	c := newTestController(rec, clock, model.QualityVeryPoor)

	assert.False(t, c.SetQuality(7))
	assert.True(t, c.SetQuality(model.QualityExcellent))
	c.Start()
	assert.False(t, c.SetQuality(model.QualityVeryPoor))
	assert.Equal(t, model.QualityExcellent, c.State().SelectedQuality)

	clock.Advance(8 * time.Hour)
	r, _, err := c.Stop(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.QualityExcellent, r.SleepQuality)
}

func TestStaleTicksAreDropped(t *testing.T) {
	rec := &memRecorder{}
	clock := &fakeClock{now: time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC)}
	c := newTestController(rec, clock, model.QualityAverage)

	assert.False(t, c.Tick(c.Generation()), "idle tick must not be rescheduled")

	c.Start()
	first := c.Generation()
	assert.True(t, c.Tick(first))

	clock.Advance(time.Minute)
	_, _, err := c.Stop(context.Background())
	require.NoError(t, err)
	assert.False(t, c.Tick(first))

	c.Start()
	assert.False(t, c.Tick(first), "tick from previous session must be ignored")
	assert.True(t, c.Tick(c.Generation()))
	assert.Equal(t, 1, c.State().ElapsedSeconds)
}

func TestStopInSameSecondKeepsWakeAfterSleep(t *testing.T) {
	rec := &memRecorder{}
	clock := &fakeClock{now: time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC)}
	c := newTestController(rec, clock, model.QualityAverage)

	c.Start()
	clock.Advance(300 * time.Millisecond)
	r, ok, err := c.Stop(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, r.WakeTime.After(r.SleepTime))
	require.NoError(t, r.Validate())
}

func TestRecorderFailureKeepsSession(t *testing.T) {
	rec := &memRecorder{err: errors.New("boom")}
	clock := &fakeClock{now: time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC)}
	c := newTestController(rec, clock, model.QualityAverage)

	c.Start()
	clock.Advance(time.Hour)
	_, ok, err := c.Stop(context.Background())
	require.Error(t, err)
	assert.False(t, ok)
	assert.True(t, c.State().Sleeping())

	rec.err = nil
	_, ok, err = c.Stop(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, rec.records, 1)
}

func TestDateFollowsStartInLocalMode(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	clock := &fakeClock{now: time.Date(2024, 1, 2, 1, 0, 0, 0, loc)}
	rec := &memRecorder{}
	c := NewController(rec, model.QualityAverage, WithClock(clock.Now), WithUTCDates(false))

	c.Start()
	clock.Advance(6 * time.Hour)
	r, _, err := c.Stop(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", r.Date)
	assert.NotEmpty(t, r.ID)

	utc := NewController(rec, model.QualityAverage, WithClock(clock.Now), WithUTCDates(true))
	clock.now = time.Date(2024, 1, 2, 1, 0, 0, 0, loc)
	utc.Start()
	clock.Advance(time.Hour)
	r, _, err = utc.Stop(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", r.Date)
}
