// Package pacing spaces outbound calls with fixed delays so batch jobs stay
// under upstream rate limits.
package pacing

import (
	"context"
	"time"
)

const (
	DetailDelay = 200 * time.Millisecond
	ListDelay   = 300 * time.Millisecond
	YearDelay   = time.Second
)

// Delays groups the three pauses the backfill uses between calls.
type Delays struct {
	Detail time.Duration
	List   time.Duration
	Year   time.Duration
}

func DefaultDelays() Delays {
	return Delays{Detail: DetailDelay, List: ListDelay, Year: YearDelay}
}

// Waiter suspends the caller for at least d, or until ctx is done.
type Waiter interface {
	Wait(ctx context.Context, d time.Duration) error
}

// Gate is the timer-backed Waiter. The zero value is ready to use.
type Gate struct{}

func NewGate() *Gate {
	return &Gate{}
}

func (g *Gate) Wait(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Recorder is a Waiter that only remembers the requested delays. Useful for
// dry runs and tests that must not sleep.
type Recorder struct {
	Waits []time.Duration
}

func (r *Recorder) Wait(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.Waits = append(r.Waits, d)
	return nil
}

// Total sums every recorded delay.
func (r *Recorder) Total() time.Duration {
	var total time.Duration
	for _, d := range r.Waits {
		total += d
	}
	return total
}
