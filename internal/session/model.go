package session

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nekogravitycat/focus-planner-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/focus-planner-backend/internal/scheduling"
)

const MaxTitleLength = 200

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "session not found")
	ErrTimeConflict     = apperror.New(http.StatusConflict, "session overlaps an existing session")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
	ErrProjectNotFound  = apperror.New(http.StatusNotFound, "project not found")
	ErrTitleTooLong     = apperror.New(http.StatusBadRequest, fmt.Sprintf("title must be at most %d characters", MaxTitleLength))
)

// ConflictError is returned when a create or update would overlap other
// sessions of the same user. It unwraps to ErrTimeConflict.
type ConflictError struct {
	SessionIDs []string
}

func (e *ConflictError) Error() string {
	if len(e.SessionIDs) == 0 {
		return ErrTimeConflict.Message
	}
	return fmt.Sprintf("%s: %s", ErrTimeConflict.Message, strings.Join(e.SessionIDs, ", "))
}

func (e *ConflictError) Unwrap() error {
	return ErrTimeConflict
}

func (e *ConflictError) Details() any {
	ids := e.SessionIDs
	if ids == nil {
		ids = []string{}
	}
	return map[string]any{"conflicting_session_ids": ids}
}

// Session is a stored focus session.
type Session struct {
	ID        string
	UserID    string
	ProjectID *string
	Title     string
	StartAt   time.Time
	EndAt     time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ToScheduling returns the view of s used by the conflict and slot engines.
func (s *Session) ToScheduling() scheduling.Session {
	return scheduling.Session{
		ID:        s.ID,
		Start:     s.StartAt,
		End:       s.EndAt,
		ProjectID: s.ProjectID,
	}
}

// ToSchedulingAll converts a list of stored sessions.
func ToSchedulingAll(sessions []*Session) []scheduling.Session {
	out := make([]scheduling.Session, len(sessions))
	for i, s := range sessions {
		out[i] = s.ToScheduling()
	}
	return out
}

// Filter defines parameters for listing sessions.
type Filter struct {
	UserID    string
	ProjectID string
	From      *time.Time // Sessions ending after this instant
	To        *time.Time // Sessions starting before this instant
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
