// Package scheduling decides whether focus sessions collide and where free
// time remains in a day.
//
// Everything here operates on values handed in by the caller. Nothing reads
// the clock, touches storage or keeps state, so results are only as fresh as
// the snapshot they were computed from. The database constraint on sessions
// remains the authority; these checks are a fast pre-check for users.
package scheduling

import (
	"time"
)

// Interval is the half-open range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval builds an interval, failing with ErrInvalidInterval unless end
// is strictly after start. Both bounds are normalized to UTC.
func NewInterval(start, end time.Time) (Interval, error) {
	if !end.After(start) {
		return Interval{}, ErrInvalidInterval
	}
	return Interval{Start: start.UTC(), End: end.UTC()}, nil
}

// Valid reports whether End is strictly after Start.
func (i Interval) Valid() bool {
	return i.End.After(i.Start)
}

// Duration is End - Start.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Overlaps reports whether the two half-open intervals share any instant.
// Intervals that only touch (i.End == other.Start) do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return Overlaps(i.Start, i.End, other.Start, other.End)
}

// Overlaps is the half-open overlap test: [a1,a2) and [b1,b2) overlap iff
// a1 < b2 && b1 < a2.
func Overlaps(a1, a2, b1, b2 time.Time) bool {
	return a1.Before(b2) && b1.Before(a2)
}
