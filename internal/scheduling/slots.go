package scheduling

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/nekogravitycat/focus-planner-backend/internal/pkg/kst"
)

// DefaultMaxDaysToScan bounds FindNextAvailableSlot when the caller passes 0.
const DefaultMaxDaysToScan = 30

// AvailableSlot is a free range exactly as long as the requested duration.
type AvailableSlot struct {
	Start time.Time
	End   time.Time
}

// DayWindow is the default search window of a day: 00:00:00.000 through
// 23:59:59.999 KST.
func DayWindow(day kst.Date) Interval {
	return Interval{Start: day.Midnight(), End: day.End()}
}

// FindAvailableSlots returns the first duration-sized slot of every free gap
// inside window (the whole KST day when window is nil). A large gap yields a
// single slot at its start, never several packed end to end.
//
// An empty result is not an error. Use FindFirstAvailableSlot when the caller
// needs exactly one slot.
func FindAvailableSlots(day kst.Date, duration time.Duration, existing []Session, window *Interval) ([]AvailableSlot, error) {
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}

	w := DayWindow(day)
	if window != nil {
		if !window.Valid() {
			return nil, ErrInvalidInterval
		}
		w = Interval{Start: window.Start.UTC(), End: window.End.UTC()}
	}

	busy := make([]Session, 0, len(existing))
	for _, s := range existing {
		if s.Interval().Valid() && w.Overlaps(s.Interval()) {
			busy = append(busy, s)
		}
	}
	// Stable so equal starts keep their input order.
	sort.SliceStable(busy, func(i, j int) bool {
		return busy[i].Start.Before(busy[j].Start)
	})

	slots := []AvailableSlot{}
	cursor := w.Start
	for _, s := range busy {
		if s.Start.Sub(cursor) >= duration {
			slots = append(slots, AvailableSlot{Start: cursor, End: cursor.Add(duration)})
		}
		if s.End.After(cursor) {
			cursor = s.End
		}
	}
	if w.End.Sub(cursor) >= duration {
		slots = append(slots, AvailableSlot{Start: cursor, End: cursor.Add(duration)})
	}

	return slots, nil
}

// FindFirstAvailableSlot is FindAvailableSlots for callers that want one slot
// or an error. It fails with *NoAvailableSlotError when nothing fits.
func FindFirstAvailableSlot(day kst.Date, duration time.Duration, existing []Session, window *Interval) (AvailableSlot, error) {
	slots, err := FindAvailableSlots(day, duration, existing, window)
	if err != nil {
		return AvailableSlot{}, err
	}
	if len(slots) == 0 {
		return AvailableSlot{}, &NoAvailableSlotError{Day: day, Duration: duration, DaysScanned: 1}
	}
	return slots[0], nil
}

// FindNextAvailableSlot scans forward one KST day at a time, starting with the
// day that contains from, and returns the earliest free slot. On the first day
// nothing before from is offered. At most maxDaysToScan days are loaded
// (DefaultMaxDaysToScan when maxDaysToScan <= 0); after that it fails with
// *NoAvailableSlotError.
func FindNextAvailableSlot(ctx context.Context, duration time.Duration, from time.Time, source DaySource, maxDaysToScan int) (AvailableSlot, error) {
	if duration <= 0 {
		return AvailableSlot{}, ErrInvalidDuration
	}
	if maxDaysToScan <= 0 {
		maxDaysToScan = DefaultMaxDaysToScan
	}

	from = from.UTC()
	first := kst.DateOf(from)

	for i := 0; i < maxDaysToScan; i++ {
		if err := ctx.Err(); err != nil {
			return AvailableSlot{}, err
		}

		day := first.AddDays(i)
		window := DayWindow(day)
		if i == 0 {
			window.Start = from
			if !window.Valid() {
				continue
			}
		}

		sessions, err := source(ctx, day)
		if err != nil {
			return AvailableSlot{}, fmt.Errorf("load sessions for %s: %w", day, err)
		}

		slots, err := FindAvailableSlots(day, duration, sessions, &window)
		if err != nil {
			return AvailableSlot{}, err
		}
		if len(slots) > 0 {
			return slots[0], nil
		}
	}

	return AvailableSlot{}, &NoAvailableSlotError{Day: first, Duration: duration, DaysScanned: maxDaysToScan}
}
