package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/focus-planner-backend/internal/auth"
	"github.com/nekogravitycat/focus-planner-backend/internal/pkg/kst"
	"github.com/nekogravitycat/focus-planner-backend/internal/pkg/response"
	"github.com/nekogravitycat/focus-planner-backend/internal/scheduling"
	"github.com/nekogravitycat/focus-planner-backend/internal/session"
	"github.com/nekogravitycat/focus-planner-backend/internal/timeline"
)

// Sessions is the part of session.Service the day view needs.
type Sessions interface {
	SessionsOnDate(ctx context.Context, userID string, date kst.Date) ([]*session.Session, error)
	CheckConflict(ctx context.Context, userID string, start, end time.Time, excludeID string) (scheduling.ConflictResult, error)
}

type Handler struct {
	sessions Sessions
	defaults timeline.Config
}

func NewHandler(sessions Sessions, defaults timeline.Config) *Handler {
	return &Handler{sessions: sessions, defaults: defaults}
}

// View lays out one KST day: the hour window, every session of the day in
// pixel coordinates and the grid ticks.
func (h *Handler) View(c *gin.Context) {
	var req ViewRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	date, err := kst.ParseDate(req.Date)
	if err != nil {
		response.BadRequest(c, "invalid date", err)
		return
	}

	calc, err := timeline.NewCalculator(req.ViewportTop, req.ViewportHeight, date.Midnight(), req.ConfigOverride.Apply(h.defaults))
	if err != nil {
		response.Error(c, err)
		return
	}

	sessions, err := h.sessions.SessionsOnDate(c.Request.Context(), auth.GetUserID(c), date)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := ViewResponse{
		Date:            date.String(),
		WindowStart:     kst.FormatISO(calc.WindowStart()),
		WindowEnd:       kst.FormatISO(calc.WindowEnd()),
		EffectiveTop:    calc.EffectiveTop(),
		EffectiveHeight: calc.EffectiveHeight(),
		Config:          newConfigResponse(calc.Config()),
		Sessions:        make([]BlockResponse, len(sessions)),
	}

	for i, s := range sessions {
		resp.Sessions[i] = BlockResponse{
			ID:        s.ID,
			ProjectID: s.ProjectID,
			Title:     s.Title,
			StartAt:   kst.FormatISO(s.StartAt),
			EndAt:     kst.FormatISO(s.EndAt),
			Top:       calc.TimeToPixel(s.StartAt),
			Bottom:    calc.TimeToPixel(s.EndAt),
			Visible:   scheduling.Overlaps(s.StartAt, s.EndAt, calc.WindowStart(), calc.WindowEnd()),
		}
	}

	ticks := calc.Ticks()
	resp.Ticks = make([]TickResponse, len(ticks))
	for i, t := range ticks {
		resp.Ticks[i] = newTickResponse(calc, t)
	}

	c.JSON(http.StatusOK, resp)
}

// Selection resolves a drag between two pixel offsets to a snapped range and
// checks it against the user's sessions.
func (h *Handler) Selection(c *gin.Context) {
	var body SelectionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	date, err := kst.ParseDate(body.Date)
	if err != nil {
		response.BadRequest(c, "invalid date", err)
		return
	}

	calc, err := timeline.NewCalculator(body.ViewportTop, body.ViewportHeight, date.Midnight(), body.Config.Apply(h.defaults))
	if err != nil {
		response.Error(c, err)
		return
	}

	state := timeline.Selecting{
		Anchor: calc.PixelToTime(body.AnchorY),
		Cursor: calc.PixelToTime(body.CursorY),
	}
	start, end, _ := timeline.IntervalOf(state)

	// Both ends snapped to the same row.
	if !end.After(start) {
		response.Error(c, scheduling.ErrInvalidInterval)
		return
	}

	res, err := h.sessions.CheckConflict(c.Request.Context(), auth.GetUserID(c), start, end, body.ExcludeSessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, SelectionResponse{
		Start:                 kst.FormatISO(start),
		End:                   kst.FormatISO(end),
		DurationMinutes:       int(end.Sub(start) / time.Minute),
		HasConflict:           res.HasConflict,
		ConflictingSessionIDs: res.ConflictingSessionIDs,
	})
}
