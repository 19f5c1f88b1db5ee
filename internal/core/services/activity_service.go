package services

import (
	"context"
	"log"
	"time"

	"github.com/streakmate/streakmate-api/internal/core/domain"
	"github.com/streakmate/streakmate-api/internal/core/workers"
)

type ActivityService struct {
	repo     domain.ActivityRepository
	userRepo domain.UserRepository
	worker   *workers.LeaderboardWorker

	// Now supplies the reference time for "today"; overridable in tests.
	Now func() time.Time
}

func NewActivityService(repo domain.ActivityRepository, userRepo domain.UserRepository, worker *workers.LeaderboardWorker) *ActivityService {
	return &ActivityService{
		repo:     repo,
		userRepo: userRepo,
		worker:   worker,
		Now:      time.Now,
	}
}

// Log appends today's activity for the user. The completed-today check runs
// first so a second log of the same day is rejected before it hits storage;
// the unique constraint in the repository backstops concurrent racers.
func (s *ActivityService) Log(ctx context.Context, userID string) (*domain.Activity, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.Now()

	activities, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if domain.CompletedToday(activities, now) {
		return nil, domain.ErrActivityExists
	}

	activity := domain.NewActivity(userID, now)
	if err := activity.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, activity); err != nil {
		return nil, err
	}

	if user.GroupID != nil {
		s.worker.Enqueue(*user.GroupID)
	}

	return activity, nil
}

// LogByToken is the magic-link entry point: the bearer completion token
// identifies the subject instead of an authenticated session. The logging
// contract is identical to Log.
func (s *ActivityService) LogByToken(ctx context.Context, token string) (*domain.Activity, error) {
	user, err := s.userRepo.GetByCompletionToken(ctx, token)
	if err != nil {
		return nil, err
	}

	return s.Log(ctx, user.ID)
}

// Status reports the caller's derived completion state for today.
func (s *ActivityService) Status(ctx context.Context, userID string) (domain.StreakResult, error) {
	activities, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return domain.StreakResult{}, err
	}

	for _, a := range activities {
		if a != nil && a.PerformedAt.IsZero() {
			log.Printf("[DATA] Skipping activity %s with unparseable timestamp for user %s", a.ID, userID)
		}
	}

	return domain.ComputeStreak(userID, activities, s.Now()), nil
}

func (s *ActivityService) ListForUser(ctx context.Context, userID string, from, to time.Time) ([]*domain.Activity, error) {
	return s.repo.ListByUserIDWithRange(ctx, userID, from, to)
}
