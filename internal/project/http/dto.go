package http

import (
	"time"

	"github.com/nekogravitycat/focus-planner-backend/internal/pkg/request"
	"github.com/nekogravitycat/focus-planner-backend/internal/project"
)

// ListProjectsRequest defines query parameters for listing projects.
type ListProjectsRequest struct {
	request.ListParams
	Name   string `form:"name" binding:"omitempty,max=100"`
	SortBy string `form:"sort_by" binding:"omitempty,oneof=name created_at"`
}

type ProjectResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Color     *string   `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

func NewResponse(p *project.Project) ProjectResponse {
	return ProjectResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		Name:      p.Name,
		Color:     p.Color,
		CreatedAt: p.CreatedAt,
	}
}

type CreateRequest struct {
	Name  string  `json:"name" binding:"required,min=1,max=100"`
	Color *string `json:"color" binding:"omitempty,hexcolor,len=7"`
}

type UpdateRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=100"`
	Color *string `json:"color"`
}
