package session

import (
	"context"
	"time"

	"github.com/nekogravitycat/focus-planner-backend/internal/pkg/kst"
	"github.com/nekogravitycat/focus-planner-backend/internal/scheduling"
)

// userSource exposes one user's sessions to the scheduling engine.
type userSource struct {
	repo   Repository
	userID string
}

// SourceFor returns a scheduling.SessionSource limited to userID.
func SourceFor(repo Repository, userID string) scheduling.SessionSource {
	return &userSource{repo: repo, userID: userID}
}

func (s *userSource) ListSessionsOverlapping(ctx context.Context, start, end time.Time) ([]scheduling.Session, error) {
	sessions, err := s.repo.ListOverlapping(ctx, s.userID, start, end)
	if err != nil {
		return nil, err
	}
	return ToSchedulingAll(sessions), nil
}

func (s *userSource) ListSessionsOnDate(ctx context.Context, date kst.Date) ([]scheduling.Session, error) {
	sessions, err := s.repo.ListOnDate(ctx, s.userID, date)
	if err != nil {
		return nil, err
	}
	return ToSchedulingAll(sessions), nil
}
