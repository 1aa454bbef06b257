package scheduling

import (
	"fmt"
	"net/http"
	"time"

	"github.com/nekogravitycat/focus-planner-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/focus-planner-backend/internal/pkg/kst"
)

var (
	ErrInvalidInterval = apperror.New(http.StatusBadRequest, "interval end must be after its start")
	ErrInvalidDuration = apperror.New(http.StatusBadRequest, "duration must be positive")
	ErrNoAvailableSlot = apperror.New(http.StatusNotFound, "no available slot")
)

// NoAvailableSlotError is returned by the lookups that must produce exactly
// one slot. It carries the search parameters for display and unwraps to
// ErrNoAvailableSlot.
type NoAvailableSlotError struct {
	Day         kst.Date
	Duration    time.Duration
	DaysScanned int
}

func (e *NoAvailableSlotError) Error() string {
	if e.DaysScanned > 1 {
		return fmt.Sprintf("no available %s slot in the %d days starting %s",
			e.Duration, e.DaysScanned, e.Day)
	}
	return fmt.Sprintf("no available %s slot on %s", e.Duration, e.Day)
}

func (e *NoAvailableSlotError) Unwrap() error {
	return ErrNoAvailableSlot
}

func (e *NoAvailableSlotError) Details() any {
	return map[string]any{
		"date":             e.Day.String(),
		"duration_minutes": int(e.Duration / time.Minute),
		"days_scanned":     e.DaysScanned,
	}
}
