package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/sleeptrack/internal/model"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func record(id string, hours float64, q model.Quality) model.SleepRecord {
	sleep := time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC)
	wake := sleep.Add(time.Duration(hours * float64(time.Hour)))
	return model.NewSleepRecord(id, sleep, wake, q)
}

func TestAppendAndSnapshotKeepOrder(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	require.NoError(t, st.Append(ctx, record("a", 7.5, model.QualityAverage)))
	require.NoError(t, st.Append(ctx, record("b", 8.25, model.QualityExcellent)))
	require.NoError(t, st.Append(ctx, record("a", 6, model.QualityVeryPoor)))

	snap, err := st.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap, 3)
	assert.Equal(t, "a", snap[0].ID)
	assert.Equal(t, 7.5, snap[0].Duration)
	assert.Equal(t, "b", snap[1].ID)
	assert.Equal(t, 8.25, snap[1].Duration)
	assert.Equal(t, model.QualityVeryPoor, snap[2].SleepQuality)
	assert.True(t, snap[0].SleepTime.Equal(time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC)))
}

func TestAppendRejectsInvalidRecord(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	bad := record("x", 1, model.QualityAverage)
	bad.SleepQuality = 4
	assert.Error(t, st.Append(ctx, bad))

	n, err := st.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestDeleteAtFirstShiftsRemaining(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	require.NoError(t, st.Append(ctx, record("first", 7, model.QualityAverage)))
	require.NoError(t, st.Append(ctx, record("second", 8, model.QualityExcellent)))

	require.NoError(t, st.DeleteAt(ctx, 0))

	snap, err := st.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap, 1)
	assert.Equal(t, "second", snap[0].ID)
}

func TestDeleteAtOutOfRangeIsNoop(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	require.NoError(t, st.Append(ctx, record("a", 7, model.QualityAverage)))
	require.NoError(t, st.Append(ctx, record("b", 8, model.QualityAverage)))

	for _, pos := range []int{-1, 2, 100} {
		require.NoError(t, st.DeleteAt(ctx, pos))
	}

	snap, err := st.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap, 2)
	assert.Equal(t, "a", snap[0].ID)
	assert.Equal(t, "b", snap[1].ID)
}

func TestSnapshotIsIndependentCopy(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	require.NoError(t, st.Append(ctx, record("a", 7, model.QualityAverage)))

	snap, err := st.Snapshot(ctx)
	require.NoError(t, err)
	snap[0].Duration = 99

	again, err := st.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7.0, again[0].Duration)
}

func TestEmptySnapshot(t *testing.T) {
	st := openStore(t)
	snap, err := st.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap)
}
