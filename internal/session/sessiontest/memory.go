// Package sessiontest provides an in-memory session.Repository for tests.
package sessiontest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/nekogravitycat/focus-planner-backend/internal/pkg/kst"
	"github.com/nekogravitycat/focus-planner-backend/internal/project"
	"github.com/nekogravitycat/focus-planner-backend/internal/scheduling"
	"github.com/nekogravitycat/focus-planner-backend/internal/session"
)

// MemoryRepository mimics the Postgres repository, including the per-user
// exclusion constraint on overlapping sessions.
type MemoryRepository struct {
	mu    sync.Mutex
	items map[string]session.Session
	seq   int

	// Err, when set, is returned by every method.
	Err error
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: map[string]session.Session{}}
}

// Seed stores s as-is, bypassing the overlap constraint, and returns its id.
func (r *MemoryRepository) Seed(s session.Session) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.ID == "" {
		r.seq++
		s.ID = fmt.Sprintf("00000000-0000-0000-0000-%012d", r.seq)
	}
	r.items[s.ID] = s
	return s.ID
}

func (r *MemoryRepository) Create(_ context.Context, s *session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}
	if r.overlapsLocked(s.UserID, s.StartAt, s.EndAt, "") {
		return session.ErrTimeConflict
	}
	r.seq++
	s.ID = fmt.Sprintf("00000000-0000-0000-0000-%012d", r.seq)
	s.CreatedAt = time.Now().UTC()
	s.UpdatedAt = s.CreatedAt
	r.items[s.ID] = *s
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*session.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	s, ok := r.items[id]
	if !ok {
		return nil, session.ErrNotFound
	}
	return &s, nil
}

func (r *MemoryRepository) List(_ context.Context, filter session.Filter) ([]*session.Session, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, 0, r.Err
	}
	var out []*session.Session
	for _, s := range r.items {
		if s.UserID != filter.UserID {
			continue
		}
		if filter.ProjectID != "" && (s.ProjectID == nil || *s.ProjectID != filter.ProjectID) {
			continue
		}
		if filter.From != nil && !s.EndAt.After(*filter.From) {
			continue
		}
		if filter.To != nil && !s.StartAt.Before(*filter.To) {
			continue
		}
		cp := s
		out = append(out, &cp)
	}
	sortByStart(out)
	total := len(out)

	page, size := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}
	lo := min((page-1)*size, total)
	hi := min(lo+size, total)
	return out[lo:hi], total, nil
}

func (r *MemoryRepository) Update(_ context.Context, s *session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.items[s.ID]; !ok {
		return session.ErrNotFound
	}
	if r.overlapsLocked(s.UserID, s.StartAt, s.EndAt, s.ID) {
		return session.ErrTimeConflict
	}
	s.UpdatedAt = time.Now().UTC()
	r.items[s.ID] = *s
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.items[id]; !ok {
		return session.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *MemoryRepository) ListOverlapping(_ context.Context, userID string, start, end time.Time) ([]*session.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	out := []*session.Session{}
	for _, s := range r.items {
		if s.UserID == userID && scheduling.Overlaps(s.StartAt, s.EndAt, start, end) {
			cp := s
			out = append(out, &cp)
		}
	}
	sortByStart(out)
	return out, nil
}

func (r *MemoryRepository) ListOnDate(ctx context.Context, userID string, date kst.Date) ([]*session.Session, error) {
	return r.ListOverlapping(ctx, userID, date.Midnight(), date.AddDays(1).Midnight())
}

func (r *MemoryRepository) overlapsLocked(userID string, start, end time.Time, excludeID string) bool {
	for id, s := range r.items {
		if id == excludeID || s.UserID != userID {
			continue
		}
		if scheduling.Overlaps(s.StartAt, s.EndAt, start, end) {
			return true
		}
	}
	return false
}

func sortByStart(sessions []*session.Session) {
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].StartAt.Equal(sessions[j].StartAt) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].StartAt.Before(sessions[j].StartAt)
	})
}

// Projects is a ProjectLookup backed by a fixed owner map.
type Projects map[string]string

func (p Projects) GetOwned(_ context.Context, id, userID string) (*project.Project, error) {
	owner, ok := p[id]
	if !ok {
		return nil, project.ErrNotFound
	}
	if owner != userID {
		return nil, project.ErrPermissionDenied
	}
	return &project.Project{ID: id, UserID: owner}, nil
}
