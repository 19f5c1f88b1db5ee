package services

import (
	"context"
	"log"
	"time"

	"github.com/streakmate/streakmate-api/internal/core/domain"
)

// SnapshotCache serves pre-ranked leaderboards. A miss (or any cache error)
// falls through to a fresh computation; the cache is never authoritative.
type SnapshotCache interface {
	Get(ctx context.Context, groupID string) (*domain.Leaderboard, error)
	Set(ctx context.Context, leaderboard *domain.Leaderboard) error
}

type LeaderboardService struct {
	groupRepo    domain.GroupRepository
	userRepo     domain.UserRepository
	activityRepo domain.ActivityRepository
	cache        SnapshotCache

	// Now supplies the reference time for "today"; overridable in tests.
	Now func() time.Time
}

func NewLeaderboardService(groupRepo domain.GroupRepository, userRepo domain.UserRepository, activityRepo domain.ActivityRepository, cache SnapshotCache) *LeaderboardService {
	return &LeaderboardService{
		groupRepo:    groupRepo,
		userRepo:     userRepo,
		activityRepo: activityRepo,
		cache:        cache,
		Now:          time.Now,
	}
}

// Get ranks the group's members by current streak. Only members may view
// their group's leaderboard.
func (s *LeaderboardService) Get(ctx context.Context, groupID, requesterID string) (*domain.Leaderboard, error) {
	requester, err := s.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if !requester.InGroup(groupID) {
		return nil, domain.ErrNotGroupMember
	}

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, groupID); err == nil && cached != nil {
			return cached, nil
		}
	}

	leaderboard, err := s.compute(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, leaderboard); err != nil {
			log.Printf("[CACHE] Failed to store leaderboard for group %s: %v", groupID, err)
		}
	}

	return leaderboard, nil
}

func (s *LeaderboardService) compute(ctx context.Context, groupID string) (*domain.Leaderboard, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	members, err := s.userRepo.ListByGroupID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	activitiesByUser := make(map[string][]*domain.Activity, len(members))
	for _, m := range members {
		activities, err := s.activityRepo.ListByUserID(ctx, m.ID)
		if err != nil {
			// A member with unreadable history still appears, with a zero
			// streak, rather than aborting the whole ranking.
			log.Printf("[DATA] Failed to fetch activities for member %s: %v", m.ID, err)
			continue
		}
		activitiesByUser[m.ID] = activities
	}

	return domain.RankMembers(group, members, activitiesByUser, s.Now()), nil
}
