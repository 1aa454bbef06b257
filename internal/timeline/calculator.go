// Package timeline converts between vertical pixel offsets of a day view and
// instants, snapped to the configured granularity.
package timeline

import (
	"fmt"
	"math"
	"time"

	"github.com/nekogravitycat/focus-planner-backend/internal/pkg/kst"
)

// Calculator maps pixels to instants for one rendered day. It is immutable;
// build a new one when the viewport, the date or the config changes.
type Calculator struct {
	cfg             Config
	viewportTop     float64
	viewportHeight  float64
	windowStart     time.Time
	effectiveTop    float64
	effectiveHeight float64
	totalMinutes    float64
}

// NewCalculator validates cfg and anchors the visible window at StartHour on
// the KST day containing referenceDate.
func NewCalculator(viewportTop, viewportHeight float64, referenceDate time.Time, cfg Config) (*Calculator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !isFinite(viewportTop) || !isFinite(viewportHeight) {
		return nil, fmt.Errorf("%w: top %v and height %v must be finite", ErrInvalidViewport, viewportTop, viewportHeight)
	}
	// Half a row is inset at both ends so the first and last rows sit
	// centered on their gridlines.
	effectiveHeight := viewportHeight - cfg.RowHeightPx
	if effectiveHeight <= 0 {
		return nil, fmt.Errorf("%w: height %v must exceed row height %v", ErrInvalidViewport, viewportHeight, cfg.RowHeightPx)
	}

	return &Calculator{
		cfg:             cfg,
		viewportTop:     viewportTop,
		viewportHeight:  viewportHeight,
		windowStart:     kst.MidnightOf(referenceDate).Add(time.Duration(cfg.StartHour) * time.Hour),
		effectiveTop:    viewportTop - cfg.RowHeightPx/2,
		effectiveHeight: effectiveHeight,
		totalMinutes:    float64(cfg.TotalMinutes()),
	}, nil
}

func (c *Calculator) Config() Config { return c.cfg }

// WindowStart is StartHour on the reference day.
func (c *Calculator) WindowStart() time.Time { return c.windowStart }

// WindowEnd is EndHour on the reference day.
func (c *Calculator) WindowEnd() time.Time {
	return c.windowStart.Add(time.Duration(c.totalMinutes) * time.Minute)
}

// EffectiveTop is the pixel that maps to WindowStart.
func (c *Calculator) EffectiveTop() float64 { return c.effectiveTop }

// EffectiveHeight is the pixel span between WindowStart and WindowEnd.
func (c *Calculator) EffectiveHeight() float64 { return c.effectiveHeight }

// maxOffsetMinutes is the largest whole-minute offset a time.Duration holds.
const maxOffsetMinutes = float64(math.MaxInt64 / int64(time.Minute))

// PixelToTime converts y to an instant rounded half-up to the nearest
// granularity boundary. y is not clamped: offsets above or below the window
// extrapolate to instants outside it. Offsets beyond the range of
// time.Duration saturate.
func (c *Calculator) PixelToTime(y float64) time.Time {
	minutes := (y - c.effectiveTop) * c.totalMinutes / c.effectiveHeight

	g := float64(c.cfg.GranularityMinutes)
	snapped := math.Floor(minutes/g+0.5) * g
	switch {
	case math.IsNaN(snapped):
		snapped = 0
	case snapped > maxOffsetMinutes:
		snapped = maxOffsetMinutes
	case snapped < -maxOffsetMinutes:
		snapped = -maxOffsetMinutes
	}

	return c.windowStart.Add(time.Duration(snapped) * time.Minute)
}

// TimeToPixel is the unsnapped inverse of PixelToTime.
func (c *Calculator) TimeToPixel(t time.Time) float64 {
	minutes := float64(t.Sub(c.windowStart)) / float64(time.Minute)
	return c.effectiveTop + (minutes/c.totalMinutes)*c.effectiveHeight
}

// Ticks returns every granularity boundary from WindowStart through WindowEnd.
func (c *Calculator) Ticks() []time.Time {
	step := time.Duration(c.cfg.GranularityMinutes) * time.Minute
	end := c.WindowEnd()

	var ticks []time.Time
	for t := c.windowStart; !t.After(end); t = t.Add(step) {
		ticks = append(ticks, t)
	}
	return ticks
}
