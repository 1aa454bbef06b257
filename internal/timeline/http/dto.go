package http

import (
	"time"

	"github.com/nekogravitycat/focus-planner-backend/internal/pkg/kst"
	"github.com/nekogravitycat/focus-planner-backend/internal/timeline"
)

// ConfigOverride replaces individual fields of the default layout.
type ConfigOverride struct {
	RowHeightPx        *float64 `form:"row_height_px" json:"row_height_px"`
	GranularityMinutes *int     `form:"granularity_minutes" json:"granularity_minutes"`
	StartHour          *int     `form:"start_hour" json:"start_hour"`
	EndHour            *int     `form:"end_hour" json:"end_hour"`
}

// Apply returns base with the set fields replaced. Validation happens when
// the calculator is built.
func (o *ConfigOverride) Apply(base timeline.Config) timeline.Config {
	if o == nil {
		return base
	}
	if o.RowHeightPx != nil {
		base.RowHeightPx = *o.RowHeightPx
	}
	if o.GranularityMinutes != nil {
		base.GranularityMinutes = *o.GranularityMinutes
	}
	if o.StartHour != nil {
		base.StartHour = *o.StartHour
	}
	if o.EndHour != nil {
		base.EndHour = *o.EndHour
	}
	return base
}

// ViewRequest defines query parameters for rendering one day.
type ViewRequest struct {
	ConfigOverride
	Date           string  `form:"date" binding:"required"`
	ViewportTop    float64 `form:"viewport_top"`
	ViewportHeight float64 `form:"viewport_height" binding:"required,gt=0"`
}

// SelectionRequest offsets are bounded to a million pixels either way.
type SelectionRequest struct {
	Date             string          `json:"date" binding:"required"`
	ViewportTop      float64         `json:"viewport_top"`
	ViewportHeight   float64         `json:"viewport_height" binding:"required,gt=0"`
	AnchorY          float64         `json:"anchor_y" binding:"min=-1000000,max=1000000"`
	CursorY          float64         `json:"cursor_y" binding:"min=-1000000,max=1000000"`
	ExcludeSessionID string          `json:"exclude_session_id" binding:"omitempty,uuid"`
	Config           *ConfigOverride `json:"config"`
}

type ConfigResponse struct {
	RowHeightPx        float64 `json:"row_height_px"`
	GranularityMinutes int     `json:"granularity_minutes"`
	StartHour          int     `json:"start_hour"`
	EndHour            int     `json:"end_hour"`
}

type BlockResponse struct {
	ID        string  `json:"id"`
	ProjectID *string `json:"project_id"`
	Title     string  `json:"title"`
	StartAt   string  `json:"start_at"`
	EndAt     string  `json:"end_at"`
	Top       float64 `json:"top"`
	Bottom    float64 `json:"bottom"`
	// Visible is false for sessions entirely outside the hour window.
	Visible bool `json:"visible"`
}

type TickResponse struct {
	Time   string  `json:"time"`
	Label  string  `json:"label"`
	Y      float64 `json:"y"`
	IsHour bool    `json:"is_hour"`
}

type ViewResponse struct {
	Date            string          `json:"date"`
	WindowStart     string          `json:"window_start"`
	WindowEnd       string          `json:"window_end"`
	EffectiveTop    float64         `json:"effective_top"`
	EffectiveHeight float64         `json:"effective_height"`
	Config          ConfigResponse  `json:"config"`
	Sessions        []BlockResponse `json:"sessions"`
	Ticks           []TickResponse  `json:"ticks"`
}

type SelectionResponse struct {
	Start                 string   `json:"start"`
	End                   string   `json:"end"`
	DurationMinutes       int      `json:"duration_minutes"`
	HasConflict           bool     `json:"has_conflict"`
	ConflictingSessionIDs []string `json:"conflicting_session_ids"`
}

func newConfigResponse(cfg timeline.Config) ConfigResponse {
	return ConfigResponse{
		RowHeightPx:        cfg.RowHeightPx,
		GranularityMinutes: cfg.GranularityMinutes,
		StartHour:          cfg.StartHour,
		EndHour:            cfg.EndHour,
	}
}

func newTickResponse(calc *timeline.Calculator, t time.Time) TickResponse {
	local := t.In(kst.Location)
	return TickResponse{
		Time:   kst.FormatISO(t),
		Label:  local.Format("15:04"),
		Y:      calc.TimeToPixel(t),
		IsHour: local.Minute() == 0,
	}
}
