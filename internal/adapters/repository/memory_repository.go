package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/streakmate/streakmate-api/internal/core/domain"
)

type InMemoryUserRepository struct {
	store map[string]*domain.User

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		store: make(map[string]*domain.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.store {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}

	r.store[user.ID] = user
	return nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.store[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.store {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *InMemoryUserRepository) GetByCompletionToken(ctx context.Context, token string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.store {
		if u.CompletionToken != "" && u.CompletionToken == token {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *InMemoryUserRepository) ListByGroupID(ctx context.Context, groupID string) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var users []*domain.User
	for _, u := range r.store {
		if u.InGroup(groupID) {
			users = append(users, u)
		}
	}

	sort.Slice(users, func(i, j int) bool {
		return users[i].ID < users[j].ID
	})

	return users, nil
}

func (r *InMemoryUserRepository) UpdateGroup(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.store[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}

	stored.GroupID = user.GroupID
	stored.UpdatedAt = user.UpdatedAt
	return nil
}

type InMemoryGroupRepository struct {
	store map[string]*domain.Group

	mu sync.RWMutex
}

func NewInMemoryGroupRepository() *InMemoryGroupRepository {
	return &InMemoryGroupRepository{
		store: make(map[string]*domain.Group),
	}
}

func (r *InMemoryGroupRepository) Create(ctx context.Context, group *domain.Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[group.ID] = group
	return nil
}

func (r *InMemoryGroupRepository) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	group, ok := r.store[id]
	if !ok {
		return nil, domain.ErrGroupNotFound
	}
	return group, nil
}

func (r *InMemoryGroupRepository) List(ctx context.Context) ([]*domain.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	groups := make([]*domain.Group, 0, len(r.store))
	for _, g := range r.store {
		groups = append(groups, g)
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].CreatedAt.After(groups[j].CreatedAt)
	})

	return groups, nil
}

func (r *InMemoryGroupRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrGroupNotFound
	}

	delete(r.store, id)
	return nil
}

type InMemoryActivityRepository struct {
	store map[string]*domain.Activity

	mu sync.RWMutex
}

func NewInMemoryActivityRepository() *InMemoryActivityRepository {
	return &InMemoryActivityRepository{
		store: make(map[string]*domain.Activity),
	}
}

func (r *InMemoryActivityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	day := activity.PerformedAt.UTC().Format("2006-01-02")
	for _, a := range r.store {
		if a.UserID == activity.UserID && a.PerformedAt.UTC().Format("2006-01-02") == day {
			return domain.ErrActivityExists
		}
	}

	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}
	r.store[activity.ID] = activity
	return nil
}

func (r *InMemoryActivityRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var activities []*domain.Activity
	for _, a := range r.store {
		if a.UserID == userID {
			activities = append(activities, a)
		}
	}

	sort.Slice(activities, func(i, j int) bool {
		return activities[i].PerformedAt.After(activities[j].PerformedAt)
	})

	return activities, nil
}

func (r *InMemoryActivityRepository) ListByUserIDWithRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.Activity, error) {
	all, err := r.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var activities []*domain.Activity
	for _, a := range all {
		if a.PerformedAt.Before(from) || a.PerformedAt.After(to) {
			continue
		}
		activities = append(activities, a)
	}
	return activities, nil
}
