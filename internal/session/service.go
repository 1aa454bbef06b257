package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nekogravitycat/focus-planner-backend/internal/pkg/kst"
	"github.com/nekogravitycat/focus-planner-backend/internal/project"
	"github.com/nekogravitycat/focus-planner-backend/internal/scheduling"
)

type CreateRequest struct {
	UserID    string
	ProjectID *string
	Title     string
	StartAt   time.Time
	EndAt     time.Time
}

// UpdateRequest changes only the non-nil fields. An empty ProjectID detaches
// the session from its project.
type UpdateRequest struct {
	ProjectID *string
	Title     *string
	StartAt   *time.Time
	EndAt     *time.Time
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Session, error)
	GetOwned(ctx context.Context, id, userID string) (*Session, error)
	List(ctx context.Context, filter Filter) ([]*Session, int, error)
	Update(ctx context.Context, id, userID string, req UpdateRequest) (*Session, error)
	Delete(ctx context.Context, id, userID string) error

	// SessionsOnDate returns the user's sessions intersecting the KST day.
	SessionsOnDate(ctx context.Context, userID string, date kst.Date) ([]*Session, error)
	// CheckConflict reports the user's sessions overlapping [start, end).
	CheckConflict(ctx context.Context, userID string, start, end time.Time, excludeID string) (scheduling.ConflictResult, error)
	// AvailableSlots lists one slot per free gap of the day, or of window when set.
	AvailableSlots(ctx context.Context, userID string, date kst.Date, duration time.Duration, window *scheduling.Interval) ([]scheduling.AvailableSlot, error)
	// NextAvailableSlot finds the earliest slot at or after from, which
	// defaults to now. maxDays <= 0 uses the configured bound.
	NextAvailableSlot(ctx context.Context, userID string, duration time.Duration, from *time.Time, maxDays int) (scheduling.AvailableSlot, error)
}

// ProjectLookup resolves a project owned by a user.
type ProjectLookup interface {
	GetOwned(ctx context.Context, id, userID string) (*project.Project, error)
}

// Options tunes the service. Zero values pick the defaults.
type Options struct {
	MaxScanDays int
	Now         func() time.Time
}

type service struct {
	repo     Repository
	projects ProjectLookup

	maxScanDays int
	now         func() time.Time
}

func NewService(repo Repository, projects ProjectLookup, opts Options) Service {
	s := &service{
		repo:        repo,
		projects:    projects,
		maxScanDays: opts.MaxScanDays,
		now:         opts.Now,
	}
	if s.maxScanDays < 1 {
		s.maxScanDays = scheduling.DefaultMaxDaysToScan
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Session, error) {
	// 1. Validate input
	interval, err := scheduling.NewInterval(req.StartAt, req.EndAt)
	if err != nil {
		return nil, err
	}
	title, err := cleanTitle(req.Title)
	if err != nil {
		return nil, err
	}
	projectID := normalizeProjectID(req.ProjectID)
	if err := s.checkProject(ctx, projectID, req.UserID); err != nil {
		return nil, err
	}

	// 2. Pre-check overlaps against the current snapshot
	if err := s.ensureFree(ctx, req.UserID, interval, ""); err != nil {
		return nil, err
	}

	// 3. Insert; the exclusion constraint catches concurrent writers
	sess := &Session{
		UserID:    req.UserID,
		ProjectID: projectID,
		Title:     title,
		StartAt:   interval.Start,
		EndAt:     interval.End,
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return nil, s.conflictAfterWrite(ctx, req.UserID, interval, "", err)
	}
	return sess, nil
}

func (s *service) GetOwned(ctx context.Context, id, userID string) (*Session, error) {
	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.UserID != userID {
		return nil, ErrPermissionDenied
	}
	return sess, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Session, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id, userID string, req UpdateRequest) (*Session, error) {
	sess, err := s.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title, err := cleanTitle(*req.Title)
		if err != nil {
			return nil, err
		}
		sess.Title = title
	}

	if req.ProjectID != nil {
		projectID := normalizeProjectID(req.ProjectID)
		if err := s.checkProject(ctx, projectID, userID); err != nil {
			return nil, err
		}
		sess.ProjectID = projectID
	}

	if req.StartAt != nil || req.EndAt != nil {
		start, end := sess.StartAt, sess.EndAt
		if req.StartAt != nil {
			start = *req.StartAt
		}
		if req.EndAt != nil {
			end = *req.EndAt
		}
		interval, err := scheduling.NewInterval(start, end)
		if err != nil {
			return nil, err
		}
		// The stored copy of this session must not count against itself.
		if err := s.ensureFree(ctx, userID, interval, sess.ID); err != nil {
			return nil, err
		}
		sess.StartAt = interval.Start
		sess.EndAt = interval.End
	}

	if err := s.repo.Update(ctx, sess); err != nil {
		return nil, s.conflictAfterWrite(ctx, userID, sess.ToScheduling().Interval(), sess.ID, err)
	}
	return sess, nil
}

func (s *service) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.GetOwned(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) SessionsOnDate(ctx context.Context, userID string, date kst.Date) ([]*Session, error) {
	return s.repo.ListOnDate(ctx, userID, date)
}

func (s *service) CheckConflict(ctx context.Context, userID string, start, end time.Time, excludeID string) (scheduling.ConflictResult, error) {
	interval, err := scheduling.NewInterval(start, end)
	if err != nil {
		return scheduling.ConflictResult{}, err
	}
	existing, err := SourceFor(s.repo, userID).ListSessionsOverlapping(ctx, interval.Start, interval.End)
	if err != nil {
		return scheduling.ConflictResult{}, err
	}
	return scheduling.CheckConflict(interval, existing, excludeID)
}

func (s *service) AvailableSlots(ctx context.Context, userID string, date kst.Date, duration time.Duration, window *scheduling.Interval) ([]scheduling.AvailableSlot, error) {
	if duration <= 0 {
		return nil, scheduling.ErrInvalidDuration
	}
	bounds := scheduling.DayWindow(date)
	if window != nil {
		if !window.Valid() {
			return nil, scheduling.ErrInvalidInterval
		}
		bounds = *window
	}

	existing, err := SourceFor(s.repo, userID).ListSessionsOverlapping(ctx, bounds.Start, bounds.End)
	if err != nil {
		return nil, err
	}
	return scheduling.FindAvailableSlots(date, duration, existing, window)
}

func (s *service) NextAvailableSlot(ctx context.Context, userID string, duration time.Duration, from *time.Time, maxDays int) (scheduling.AvailableSlot, error) {
	start := s.now().UTC()
	if from != nil {
		start = from.UTC()
	}
	if maxDays < 1 {
		maxDays = s.maxScanDays
	}

	source := scheduling.DaySourceOf(SourceFor(s.repo, userID))
	return scheduling.FindNextAvailableSlot(ctx, duration, start, source, maxDays)
}

// ensureFree returns a *ConflictError when interval overlaps any other
// session of the user.
func (s *service) ensureFree(ctx context.Context, userID string, interval scheduling.Interval, excludeID string) error {
	result, err := s.CheckConflict(ctx, userID, interval.Start, interval.End, excludeID)
	if err != nil {
		return err
	}
	if result.HasConflict {
		return &ConflictError{SessionIDs: result.ConflictingSessionIDs}
	}
	return nil
}

// conflictAfterWrite turns a constraint violation lost to a concurrent
// writer into a *ConflictError naming the sessions that won.
func (s *service) conflictAfterWrite(ctx context.Context, userID string, interval scheduling.Interval, excludeID string, err error) error {
	if !errors.Is(err, ErrTimeConflict) {
		return err
	}
	if cerr := s.ensureFree(ctx, userID, interval, excludeID); cerr != nil {
		var conflict *ConflictError
		if errors.As(cerr, &conflict) {
			return conflict
		}
	}
	return &ConflictError{}
}

func (s *service) checkProject(ctx context.Context, projectID *string, userID string) error {
	if projectID == nil {
		return nil
	}
	if _, err := s.projects.GetOwned(ctx, *projectID, userID); err != nil {
		// Other users' projects are reported as missing.
		if errors.Is(err, project.ErrNotFound) || errors.Is(err, project.ErrPermissionDenied) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to load project: %w", err)
	}
	return nil
}

func cleanTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if utf8.RuneCountInString(t) > MaxTitleLength {
		return "", ErrTitleTooLong
	}
	return t, nil
}

func normalizeProjectID(id *string) *string {
	if id == nil || strings.TrimSpace(*id) == "" {
		return nil
	}
	v := strings.TrimSpace(*id)
	return &v
}
