package scheduling

import (
	"context"
	"time"

	"github.com/nekogravitycat/focus-planner-backend/internal/pkg/kst"
)

// Session is the read-only view of a stored focus session.
type Session struct {
	ID        string
	Start     time.Time
	End       time.Time
	ProjectID *string
}

// Interval returns the session's [Start, End) range without validating it.
func (s Session) Interval() Interval {
	return Interval{Start: s.Start, End: s.End}
}

// SessionSource is the read side of the session store.
type SessionSource interface {
	ListSessionsOverlapping(ctx context.Context, start, end time.Time) ([]Session, error)
	ListSessionsOnDate(ctx context.Context, date kst.Date) ([]Session, error)
}

// DaySource loads the sessions of one KST calendar day.
type DaySource func(ctx context.Context, day kst.Date) ([]Session, error)

// DaySourceOf adapts a SessionSource for FindNextAvailableSlot.
func DaySourceOf(src SessionSource) DaySource {
	return src.ListSessionsOnDate
}
