// Package window produces the date windows a backfill walks through.
package window

import (
	"iter"
	"time"
)

const Week = 7 * 24 * time.Hour

// Sequence is a finite, restartable series of window start dates. Ranging over
// it twice yields the same dates.
type Sequence struct {
	from time.Time
	to   time.Time
	step time.Duration
}

// Weekly returns 7-day window starts from Jan 1 of year through the last
// start on or before Dec 31, in UTC.
func Weekly(year int) Sequence {
	return Range(
		time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
		Week,
	)
}

// Range yields from, from+step, ... while the start is not after to. A
// non-positive step yields nothing.
func Range(from, to time.Time, step time.Duration) Sequence {
	return Sequence{from: from, to: to, step: step}
}

func (s Sequence) All() iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		if s.step <= 0 {
			return
		}
		for start := s.from; !start.After(s.to); start = start.Add(s.step) {
			if !yield(start) {
				return
			}
		}
	}
}

func (s Sequence) Len() int {
	if s.step <= 0 || s.from.After(s.to) {
		return 0
	}
	return int(s.to.Sub(s.from)/s.step) + 1
}
