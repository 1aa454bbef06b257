package project

import (
	"net/http"
	"regexp"
	"time"

	"github.com/nekogravitycat/focus-planner-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "project not found")
	ErrNameRequired     = apperror.New(http.StatusBadRequest, "project name is required")
	ErrInvalidColor     = apperror.New(http.StatusBadRequest, "color must look like #RRGGBB")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Project groups focus sessions under a name and color.
type Project struct {
	ID        string
	UserID    string
	Name      string
	Color     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for listing projects.
type Filter struct {
	UserID    string
	Name      string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
