package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/focus-planner-backend/internal/auth"
	"github.com/nekogravitycat/focus-planner-backend/internal/pkg/kst"
	"github.com/nekogravitycat/focus-planner-backend/internal/pkg/request"
	"github.com/nekogravitycat/focus-planner-backend/internal/pkg/response"
	"github.com/nekogravitycat/focus-planner-backend/internal/session"
)

type Handler struct {
	service session.Service
}

func NewHandler(service session.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListSessionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	req.Normalize("ASC")

	from, to, err := req.Range()
	if err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	filter := session.Filter{
		UserID:    auth.GetUserID(c),
		ProjectID: req.ProjectID,
		From:      from,
		To:        to,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}
	if filter.SortBy == "" {
		filter.SortBy = "start_at"
	}

	sessions, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]SessionResponse, len(sessions))
	for i, s := range sessions {
		items[i] = NewResponse(s)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	start, err := kst.ParseISO(body.StartAt)
	if err != nil {
		response.BadRequest(c, "invalid start_at", err)
		return
	}
	end, err := kst.ParseISO(body.EndAt)
	if err != nil {
		response.BadRequest(c, "invalid end_at", err)
		return
	}

	s, err := h.service.Create(c.Request.Context(), session.CreateRequest{
		UserID:    auth.GetUserID(c),
		ProjectID: body.ProjectID,
		Title:     body.Title,
		StartAt:   start,
		EndAt:     end,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewResponse(s))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	s, err := h.service.GetOwned(c.Request.Context(), req.ID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(s))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body UpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	start, err := parseOptionalISOPtr("start_at", body.StartAt)
	if err != nil {
		response.BadRequest(c, "invalid start_at", err)
		return
	}
	end, err := parseOptionalISOPtr("end_at", body.EndAt)
	if err != nil {
		response.BadRequest(c, "invalid end_at", err)
		return
	}

	s, err := h.service.Update(c.Request.Context(), uri.ID, auth.GetUserID(c), session.UpdateRequest{
		ProjectID: body.ProjectID,
		Title:     body.Title,
		StartAt:   start,
		EndAt:     end,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(s))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID, auth.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CheckConflicts reports overlaps without writing anything.
func (h *Handler) CheckConflicts(c *gin.Context) {
	var body ConflictCheckRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	start, err := kst.ParseISO(body.StartAt)
	if err != nil {
		response.BadRequest(c, "invalid start_at", err)
		return
	}
	end, err := kst.ParseISO(body.EndAt)
	if err != nil {
		response.BadRequest(c, "invalid end_at", err)
		return
	}

	res, err := h.service.CheckConflict(c.Request.Context(), auth.GetUserID(c), start, end, body.ExcludeSessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewConflictCheckResponse(res))
}

func (h *Handler) AvailableSlots(c *gin.Context) {
	var req AvailableSlotsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	date, err := kst.ParseDate(req.Date)
	if err != nil {
		response.BadRequest(c, "invalid date", err)
		return
	}
	window, err := req.Window()
	if err != nil {
		response.BadRequest(c, "invalid window", err)
		return
	}

	duration := time.Duration(req.DurationMinutes) * time.Minute
	slots, err := h.service.AvailableSlots(c.Request.Context(), auth.GetUserID(c), date, duration, window)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := AvailableSlotsResponse{
		Date:            date.String(),
		DurationMinutes: req.DurationMinutes,
		Slots:           make([]SlotResponse, len(slots)),
	}
	for i, s := range slots {
		resp.Slots[i] = NewSlotResponse(s)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) NextSlot(c *gin.Context) {
	var req NextSlotRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	from, err := parseOptionalISO("from", req.From)
	if err != nil {
		response.BadRequest(c, "invalid from", err)
		return
	}

	duration := time.Duration(req.DurationMinutes) * time.Minute
	slot, err := h.service.NextAvailableSlot(c.Request.Context(), auth.GetUserID(c), duration, from, req.MaxDays)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSlotResponse(slot))
}

func parseOptionalISOPtr(field string, value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	return parseOptionalISO(field, *value)
}
