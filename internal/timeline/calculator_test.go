package timeline

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/focus-planner-backend/internal/pkg/kst"
)

var refDay = kst.NewDate(2026, time.March, 10)

func kstAt(hour, minute int) time.Time {
	return refDay.Midnight().Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func newDefaultCalculator(t *testing.T) *Calculator {
	t.Helper()
	c, err := NewCalculator(100, 400, kstAt(12, 0), DefaultConfig())
	require.NoError(t, err)
	return c
}

func TestPixelToTimeAtEffectiveTop(t *testing.T) {
	c := newDefaultCalculator(t)

	assert.Equal(t, 90.0, c.EffectiveTop())
	assert.Equal(t, 380.0, c.EffectiveHeight())

	got := c.PixelToTime(90)
	assert.True(t, kstAt(7, 0).Equal(got), "got %s", kst.FormatISO(got))
	assert.Equal(t, "07:00", got.In(kst.Location).Format("15:04"))
}

func TestPixelToTime(t *testing.T) {
	c := newDefaultCalculator(t)
	// 380px for 900 minutes: one 15 minute row is 6.333...px.
	rowPx := 380.0 / 60

	tests := []struct {
		name string
		y    float64
		want time.Time
	}{
		{"bottom edge is the window end", 90 + 380, kstAt(22, 0)},
		{"middle of the window", 90 + 190, kstAt(14, 30)},
		{"one row down", 90 + rowPx, kstAt(7, 15)},
		{"just under half a row rounds down", 90 + rowPx*0.49, kstAt(7, 0)},
		{"just over half a row rounds up", 90 + rowPx*0.51, kstAt(7, 15)},
		{"above the window extrapolates backwards", 90 - 2*rowPx, kstAt(6, 30)},
		{"below the window extrapolates forwards", 90 + 380 + 4*rowPx, kstAt(23, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.PixelToTime(tt.y)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", kst.FormatISO(tt.want), kst.FormatISO(got))
		})
	}
}

func TestTimeToPixel(t *testing.T) {
	c := newDefaultCalculator(t)

	assert.InDelta(t, 90.0, c.TimeToPixel(kstAt(7, 0)), 1e-9)
	assert.InDelta(t, 470.0, c.TimeToPixel(kstAt(22, 0)), 1e-9)
	assert.InDelta(t, 280.0, c.TimeToPixel(kstAt(14, 30)), 1e-9)

	// Not snapped: 07:05 sits a third of the way into the first row.
	assert.InDelta(t, 90+380.0/180, c.TimeToPixel(kstAt(7, 5)), 1e-9)
}

func TestRoundTripOnGranularityBoundaries(t *testing.T) {
	for _, cfg := range []Config{
		DefaultConfig(),
		{RowHeightPx: 24, GranularityMinutes: 30, StartHour: 0, EndHour: 24},
		{RowHeightPx: 13, GranularityMinutes: 5, StartHour: 9, EndHour: 18},
	} {
		c, err := NewCalculator(37.5, 733, kstAt(3, 0), cfg)
		require.NoError(t, err)

		step := time.Duration(cfg.GranularityMinutes) * time.Minute
		for tt := c.WindowStart().Add(-2 * time.Hour); tt.Before(c.WindowEnd().Add(2 * time.Hour)); tt = tt.Add(step) {
			got := c.PixelToTime(c.TimeToPixel(tt))
			require.True(t, tt.Equal(got), "cfg %+v: want %s, got %s", cfg, kst.FormatISO(tt), kst.FormatISO(got))
		}
	}
}

func TestRoundTripSnapsArbitraryInstants(t *testing.T) {
	c := newDefaultCalculator(t)

	got := c.PixelToTime(c.TimeToPixel(kstAt(9, 7)))
	assert.True(t, kstAt(9, 0).Equal(got))

	got = c.PixelToTime(c.TimeToPixel(kstAt(9, 8)))
	assert.True(t, kstAt(9, 15).Equal(got))
}

func TestSnapIsIdempotent(t *testing.T) {
	c := newDefaultCalculator(t)

	for y := 40.0; y < 520; y += 0.37 {
		first := c.PixelToTime(y)
		second := c.PixelToTime(c.TimeToPixel(first))
		third := c.PixelToTime(c.TimeToPixel(second))
		require.True(t, first.Equal(second), "y=%v", y)
		require.True(t, second.Equal(third), "y=%v", y)
	}
}

func TestWindowIsAnchoredToTheKSTDay(t *testing.T) {
	// 16:00 UTC on the 9th is 01:00 KST on the 10th.
	ref := time.Date(2026, 3, 9, 16, 0, 0, 0, time.UTC)
	c, err := NewCalculator(0, 320, ref, DefaultConfig())
	require.NoError(t, err)

	assert.True(t, kstAt(7, 0).Equal(c.WindowStart()))
	assert.True(t, kstAt(22, 0).Equal(c.WindowEnd()))
}

func TestTicks(t *testing.T) {
	c, err := NewCalculator(0, 200, kstAt(0, 0), Config{RowHeightPx: 20, GranularityMinutes: 30, StartHour: 8, EndHour: 10})
	require.NoError(t, err)

	ticks := c.Ticks()
	require.Len(t, ticks, 5)
	assert.True(t, kstAt(8, 0).Equal(ticks[0]))
	assert.True(t, kstAt(10, 0).Equal(ticks[4]))
}

func TestNewCalculatorRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		height  float64
		cfg     Config
		wantErr error
	}{
		{"end hour before start hour", 400, Config{RowHeightPx: 20, GranularityMinutes: 15, StartHour: 10, EndHour: 9}, ErrInvalidConfig},
		{"end hour equal to start hour", 400, Config{RowHeightPx: 20, GranularityMinutes: 15, StartHour: 9, EndHour: 9}, ErrInvalidConfig},
		{"hour beyond 24", 400, Config{RowHeightPx: 20, GranularityMinutes: 15, StartHour: 7, EndHour: 25}, ErrInvalidConfig},
		{"negative start hour", 400, Config{RowHeightPx: 20, GranularityMinutes: 15, StartHour: -1, EndHour: 5}, ErrInvalidConfig},
		{"zero granularity", 400, Config{RowHeightPx: 20, GranularityMinutes: 0, StartHour: 7, EndHour: 22}, ErrInvalidConfig},
		{"zero row height", 400, Config{RowHeightPx: 0, GranularityMinutes: 15, StartHour: 7, EndHour: 22}, ErrInvalidConfig},
		{"NaN row height", 400, Config{RowHeightPx: math.NaN(), GranularityMinutes: 15, StartHour: 7, EndHour: 22}, ErrInvalidConfig},
		{"infinite row height", 400, Config{RowHeightPx: math.Inf(1), GranularityMinutes: 15, StartHour: 7, EndHour: 22}, ErrInvalidConfig},
		{"viewport no taller than a row", 20, DefaultConfig(), ErrInvalidViewport},
		{"NaN viewport height", math.NaN(), DefaultConfig(), ErrInvalidViewport},
		{"infinite viewport height", math.Inf(1), DefaultConfig(), ErrInvalidViewport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCalculator(0, tt.height, kstAt(0, 0), tt.cfg)
			assert.Nil(t, c)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewCalculatorRejectsNonFiniteTop(t *testing.T) {
	for _, top := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		c, err := NewCalculator(top, 400, kstAt(0, 0), DefaultConfig())
		assert.Nil(t, c)
		assert.ErrorIs(t, err, ErrInvalidViewport, "top=%v", top)
	}
}

func TestPixelToTimeRoundsExactHalfUp(t *testing.T) {
	// 920px minus one 20px row spans 900 minutes: one pixel per minute.
	c, err := NewCalculator(100, 920, kstAt(12, 0), DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, 90.0, c.EffectiveTop())

	got := c.PixelToTime(c.EffectiveTop() + 7.5)
	assert.True(t, kstAt(7, 15).Equal(got), "got %s", kst.FormatISO(got))

	got = c.PixelToTime(c.EffectiveTop() - 7.5)
	assert.True(t, kstAt(7, 0).Equal(got), "got %s", kst.FormatISO(got))
}

func TestPixelToTimeSaturatesFarOffsets(t *testing.T) {
	c := newDefaultCalculator(t)

	below := c.PixelToTime(1e15)
	above := c.PixelToTime(-1e15)

	assert.True(t, below.After(c.WindowEnd()), "got %s", kst.FormatISO(below))
	assert.True(t, above.Before(c.WindowStart()), "got %s", kst.FormatISO(above))
	assert.True(t, c.PixelToTime(1e300).Equal(below))
}
