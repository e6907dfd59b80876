package pacing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGate_WaitsAtLeastDuration(t *testing.T) {
	t.Parallel()

	gate := NewGate()
	started := time.Now()
	require.NoError(t, gate.Wait(context.Background(), 20*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(started), 20*time.Millisecond)
}

func TestGate_CancelledContextReturnsEarly(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	started := time.Now()
	err := NewGate().Wait(ctx, 5*time.Second)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(started), time.Second)
}

func TestGate_NonPositiveDelayIsNoop(t *testing.T) {
	t.Parallel()

	require.NoError(t, NewGate().Wait(context.Background(), 0))
	require.NoError(t, NewGate().Wait(context.Background(), -time.Second))
}

func TestRecorder_Total(t *testing.T) {
	t.Parallel()

	rec := &Recorder{}
	delays := DefaultDelays()
	require.NoError(t, rec.Wait(context.Background(), delays.Detail))
	require.NoError(t, rec.Wait(context.Background(), delays.List))
	require.NoError(t, rec.Wait(context.Background(), delays.Year))
	assert.Equal(t, 1500*time.Millisecond, rec.Total())
}
