package project

import (
	"context"
	"strings"
)

type CreateRequest struct {
	UserID string
	Name   string
	Color  *string
}

type UpdateRequest struct {
	Name  *string
	Color *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Project, error)
	// GetOwned returns the project if it belongs to userID.
	GetOwned(ctx context.Context, id, userID string) (*Project, error)
	List(ctx context.Context, filter Filter) ([]*Project, int, error)
	Update(ctx context.Context, id, userID string, req UpdateRequest) (*Project, error)
	Delete(ctx context.Context, id, userID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if err := validateColor(req.Color); err != nil {
		return nil, err
	}

	p := &Project{
		UserID: req.UserID,
		Name:   name,
		Color:  req.Color,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetOwned(ctx context.Context, id, userID string) (*Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, ErrPermissionDenied
	}
	return p, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Project, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id, userID string, req UpdateRequest) (*Project, error) {
	p, err := s.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		p.Name = name
	}
	if req.Color != nil {
		if err := validateColor(req.Color); err != nil {
			return nil, err
		}
		// An empty string clears the color.
		if *req.Color == "" {
			p.Color = nil
		} else {
			p.Color = req.Color
		}
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.GetOwned(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func validateColor(color *string) error {
	if color == nil || *color == "" {
		return nil
	}
	if !colorPattern.MatchString(*color) {
		return ErrInvalidColor
	}
	return nil
}
