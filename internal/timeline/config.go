package timeline

import (
	"fmt"
	"math"
	"net/http"

	"github.com/nekogravitycat/focus-planner-backend/internal/pkg/apperror"
)

var (
	ErrInvalidConfig   = apperror.New(http.StatusBadRequest, "invalid timeline config")
	ErrInvalidViewport = apperror.New(http.StatusBadRequest, "invalid viewport")
)

// Config describes how a day is laid out vertically.
type Config struct {
	RowHeightPx        float64
	GranularityMinutes int
	StartHour          int
	EndHour            int
}

// DefaultConfig shows 07:00 to 22:00 in 15 minute rows of 20px.
func DefaultConfig() Config {
	return Config{
		RowHeightPx:        20,
		GranularityMinutes: 15,
		StartHour:          7,
		EndHour:            22,
	}
}

// Validate checks the hour window and the positive sizes. Errors wrap
// ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case !isFinite(c.RowHeightPx):
		return fmt.Errorf("%w: row height %v must be finite", ErrInvalidConfig, c.RowHeightPx)
	case c.RowHeightPx <= 0:
		return fmt.Errorf("%w: row height %v must be positive", ErrInvalidConfig, c.RowHeightPx)
	case c.GranularityMinutes <= 0:
		return fmt.Errorf("%w: granularity %d must be positive", ErrInvalidConfig, c.GranularityMinutes)
	case c.StartHour < 0 || c.StartHour > 24 || c.EndHour < 0 || c.EndHour > 24:
		return fmt.Errorf("%w: hours %d-%d must be within 0-24", ErrInvalidConfig, c.StartHour, c.EndHour)
	case c.EndHour <= c.StartHour:
		return fmt.Errorf("%w: end hour %d must be after start hour %d", ErrInvalidConfig, c.EndHour, c.StartHour)
	}
	return nil
}

// TotalMinutes is the length of the visible window.
func (c Config) TotalMinutes() int {
	return (c.EndHour - c.StartHour) * 60
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
