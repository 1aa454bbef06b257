package timeline

import (
	"fmt"
	"time"
)

// State is the interaction state of the day view. The variants are Idle,
// Selecting and DialogOpen, always passed by value.
type State interface {
	isState()
}

// Idle means nothing is selected.
type Idle struct{}

// Selecting is an in-progress drag from Anchor to Cursor. Cursor may be above
// the anchor.
type Selecting struct {
	Anchor time.Time
	Cursor time.Time
}

// DialogOpen holds the range being confirmed in the create dialog.
type DialogOpen struct {
	Start time.Time
	End   time.Time
}

func (Idle) isState()       {}
func (Selecting) isState()  {}
func (DialogOpen) isState() {}

// IntervalOf returns the chronologically ordered range covered by s. ok is
// false only for Idle. It panics on any other type, so a new variant cannot be
// silently treated as "no selection".
func IntervalOf(s State) (start, end time.Time, ok bool) {
	switch v := s.(type) {
	case Idle:
		return time.Time{}, time.Time{}, false
	case Selecting:
		start, end = ordered(v.Anchor, v.Cursor)
		return start, end, true
	case DialogOpen:
		start, end = ordered(v.Start, v.End)
		return start, end, true
	default:
		panic(fmt.Sprintf("timeline: unhandled state %T", s))
	}
}

func ordered(a, b time.Time) (time.Time, time.Time) {
	if b.Before(a) {
		return b, a
	}
	return a, b
}
