package services

import (
	"context"

	"github.com/streakmate/streakmate-api/internal/core/domain"
	"github.com/streakmate/streakmate-api/internal/core/workers"
)

type GroupService struct {
	repo     domain.GroupRepository
	userRepo domain.UserRepository
	worker   *workers.LeaderboardWorker
}

func NewGroupService(repo domain.GroupRepository, userRepo domain.UserRepository, worker *workers.LeaderboardWorker) *GroupService {
	return &GroupService{
		repo:     repo,
		userRepo: userRepo,
		worker:   worker,
	}
}

// Create makes a new group and moves the owner into it.
func (s *GroupService) Create(ctx context.Context, ownerID, name string) (*domain.Group, error) {
	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	group, err := domain.NewGroup(ownerID, name)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, group); err != nil {
		return nil, err
	}

	previous := owner.GroupID
	owner.JoinGroup(group.ID)
	if err := s.userRepo.UpdateGroup(ctx, owner); err != nil {
		return nil, err
	}

	if previous != nil {
		s.worker.Enqueue(*previous)
	}

	return group, nil
}

func (s *GroupService) Join(ctx context.Context, userID, groupID string) error {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.InGroup(group.ID) {
		return domain.ErrAlreadyInGroup
	}

	previous := user.GroupID
	user.JoinGroup(group.ID)
	if err := s.userRepo.UpdateGroup(ctx, user); err != nil {
		return err
	}

	s.worker.Enqueue(group.ID)
	if previous != nil {
		s.worker.Enqueue(*previous)
	}

	return nil
}

func (s *GroupService) Leave(ctx context.Context, userID, groupID string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !user.InGroup(groupID) {
		return domain.ErrNotGroupMember
	}

	user.LeaveGroup()
	if err := s.userRepo.UpdateGroup(ctx, user); err != nil {
		return err
	}

	s.worker.Enqueue(groupID)

	return nil
}

// Delete removes a group entirely. Owner only; remaining members fall back
// to no group (the storage layer clears their membership).
func (s *GroupService) Delete(ctx context.Context, userID, groupID string) error {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}

	if !group.IsOwner(userID) {
		return domain.ErrUnauthorized
	}

	return s.repo.Delete(ctx, groupID)
}

// Get returns a group together with its current member set.
func (s *GroupService) Get(ctx context.Context, groupID string) (*domain.Group, []*domain.User, error) {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}

	members, err := s.userRepo.ListByGroupID(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}

	return group, members, nil
}

// List returns all groups, for browsing and joining.
func (s *GroupService) List(ctx context.Context) ([]*domain.Group, error) {
	return s.repo.List(ctx)
}
