package http

import (
	"fmt"
	"time"

	"github.com/nekogravitycat/focus-planner-backend/internal/pkg/kst"
	"github.com/nekogravitycat/focus-planner-backend/internal/pkg/request"
	"github.com/nekogravitycat/focus-planner-backend/internal/scheduling"
	"github.com/nekogravitycat/focus-planner-backend/internal/session"
)

// ListSessionsRequest defines query parameters for listing sessions.
type ListSessionsRequest struct {
	request.ListParams
	ProjectID string `form:"project_id" binding:"omitempty,uuid"`
	From      string `form:"from"`
	To        string `form:"to"`
	SortBy    string `form:"sort_by" binding:"omitempty,oneof=start_at created_at"`
}

// Range parses the optional from/to bounds.
func (r *ListSessionsRequest) Range() (from, to *time.Time, err error) {
	if from, err = parseOptionalISO("from", r.From); err != nil {
		return nil, nil, err
	}
	if to, err = parseOptionalISO("to", r.To); err != nil {
		return nil, nil, err
	}
	if from != nil && to != nil && !to.After(*from) {
		return nil, nil, fmt.Errorf("to must be after from")
	}
	return from, to, nil
}

type SessionResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	ProjectID       *string `json:"project_id"`
	Title           string  `json:"title"`
	StartAt         string  `json:"start_at"`
	EndAt           string  `json:"end_at"`
	DurationMinutes int     `json:"duration_minutes"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

func NewResponse(s *session.Session) SessionResponse {
	return SessionResponse{
		ID:              s.ID,
		UserID:          s.UserID,
		ProjectID:       s.ProjectID,
		Title:           s.Title,
		StartAt:         kst.FormatISO(s.StartAt),
		EndAt:           kst.FormatISO(s.EndAt),
		DurationMinutes: int(s.EndAt.Sub(s.StartAt) / time.Minute),
		CreatedAt:       kst.FormatISO(s.CreatedAt),
		UpdatedAt:       kst.FormatISO(s.UpdatedAt),
	}
}

type CreateRequest struct {
	ProjectID *string `json:"project_id" binding:"omitempty,uuid"`
	Title     string  `json:"title" binding:"max=200"`
	StartAt   string  `json:"start_at" binding:"required"`
	EndAt     string  `json:"end_at" binding:"required"`
}

type UpdateRequest struct {
	// An empty string detaches the session from its project.
	ProjectID *string `json:"project_id" binding:"omitempty,uuid|len=0"`
	Title     *string `json:"title" binding:"omitempty,max=200"`
	StartAt   *string `json:"start_at"`
	EndAt     *string `json:"end_at"`
}

type ConflictCheckRequest struct {
	StartAt          string `json:"start_at" binding:"required"`
	EndAt            string `json:"end_at" binding:"required"`
	ExcludeSessionID string `json:"exclude_session_id" binding:"omitempty,uuid"`
}

type SessionBrief struct {
	ID        string  `json:"id"`
	ProjectID *string `json:"project_id"`
	StartAt   string  `json:"start_at"`
	EndAt     string  `json:"end_at"`
}

type ConflictCheckResponse struct {
	HasConflict           bool           `json:"has_conflict"`
	ConflictingSessionIDs []string       `json:"conflicting_session_ids"`
	Conflicts             []SessionBrief `json:"conflicts"`
}

func NewConflictCheckResponse(res scheduling.ConflictResult) ConflictCheckResponse {
	resp := ConflictCheckResponse{
		HasConflict:           res.HasConflict,
		ConflictingSessionIDs: res.ConflictingSessionIDs,
		Conflicts:             make([]SessionBrief, len(res.Conflicts)),
	}
	if resp.ConflictingSessionIDs == nil {
		resp.ConflictingSessionIDs = []string{}
	}
	for i, s := range res.Conflicts {
		resp.Conflicts[i] = SessionBrief{
			ID:        s.ID,
			ProjectID: s.ProjectID,
			StartAt:   kst.FormatISO(s.Start),
			EndAt:     kst.FormatISO(s.End),
		}
	}
	return resp
}

// AvailableSlotsRequest defines query parameters for the free-slot listing.
type AvailableSlotsRequest struct {
	Date            string `form:"date" binding:"required"`
	DurationMinutes int    `form:"duration_minutes" binding:"required,min=1,max=1440"`
	WindowStart     string `form:"window_start"`
	WindowEnd       string `form:"window_end"`
}

// Window parses the optional search window. Both bounds must be given together.
func (r *AvailableSlotsRequest) Window() (*scheduling.Interval, error) {
	if r.WindowStart == "" && r.WindowEnd == "" {
		return nil, nil
	}
	if r.WindowStart == "" || r.WindowEnd == "" {
		return nil, fmt.Errorf("window_start and window_end must be given together")
	}
	start, err := kst.ParseISO(r.WindowStart)
	if err != nil {
		return nil, err
	}
	end, err := kst.ParseISO(r.WindowEnd)
	if err != nil {
		return nil, err
	}
	w, err := scheduling.NewInterval(start, end)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// NextSlotRequest defines query parameters for the next-slot lookup.
type NextSlotRequest struct {
	DurationMinutes int    `form:"duration_minutes" binding:"required,min=1,max=1440"`
	From            string `form:"from"`
	MaxDays         int    `form:"max_days" binding:"omitempty,min=1,max=366"`
}

type SlotResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func NewSlotResponse(s scheduling.AvailableSlot) SlotResponse {
	return SlotResponse{Start: kst.FormatISO(s.Start), End: kst.FormatISO(s.End)}
}

type AvailableSlotsResponse struct {
	Date            string         `json:"date"`
	DurationMinutes int            `json:"duration_minutes"`
	Slots           []SlotResponse `json:"slots"`
}

func parseOptionalISO(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := kst.ParseISO(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return &t, nil
}
