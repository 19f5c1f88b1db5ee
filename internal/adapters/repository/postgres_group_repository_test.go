package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/streakmate/streakmate-api/internal/core/domain"
)

func createTestGroup(t *testing.T, ctx context.Context) (*domain.Group, *domain.User) {
	t.Helper()

	db := requireDB(t)
	userRepo := NewPostgresUserRepository(db.DB)
	groupRepo := NewPostgresGroupRepository(db)

	owner := newTestUser(t)
	if err := userRepo.Create(ctx, owner); err != nil {
		t.Fatalf("Setup insert failed: %v", err)
	}

	group, err := domain.NewGroup(owner.ID, fmt.Sprintf("Group %s", uuid.NewString()))
	if err != nil {
		t.Fatalf("Failed to create domain group: %v", err)
	}
	if err := groupRepo.Create(ctx, group); err != nil {
		t.Fatalf("Failed to persist group: %v", err)
	}
	return group, owner
}

func TestPostgresGroupRepository_CreateAndGet(t *testing.T) {
	t.Parallel()

	db := requireDB(t)
	repo := NewPostgresGroupRepository(db)
	ctx := context.Background()

	t.Run("Should create and retrieve a group", func(t *testing.T) {
		t.Parallel()

		group, owner := createTestGroup(t, ctx)

		found, err := repo.GetByID(ctx, group.ID)

		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if found.Name != group.Name {
			t.Errorf("Expected name %s, got %s", group.Name, found.Name)
		}
		if found.OwnerID != owner.ID {
			t.Errorf("Expected owner %s, got %s", owner.ID, found.OwnerID)
		}
	})

	t.Run("Should return ErrGroupNotFound for non-existent ID", func(t *testing.T) {
		t.Parallel()

		_, err := repo.GetByID(ctx, uuid.NewString())

		if err != domain.ErrGroupNotFound {
			t.Errorf("Expected ErrGroupNotFound, got %v", err)
		}
	})

	t.Run("Should reject a group owned by a ghost user", func(t *testing.T) {
		t.Parallel()

		group, err := domain.NewGroup(uuid.NewString(), "Ghost Crew")
		if err != nil {
			t.Fatalf("Failed to create domain group: %v", err)
		}

		err = repo.Create(ctx, group)

		if err != domain.ErrGroupInvalidUser {
			t.Errorf("Expected ErrGroupInvalidUser, got %v", err)
		}
	})
}

func TestPostgresGroupRepository_List(t *testing.T) {
	t.Parallel()

	db := requireDB(t)
	repo := NewPostgresGroupRepository(db)
	ctx := context.Background()

	t.Run("Should include freshly created groups", func(t *testing.T) {
		t.Parallel()

		group, _ := createTestGroup(t, ctx)

		groups, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		found := false
		for _, g := range groups {
			if g.ID == group.ID {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected group %s in list", group.ID)
		}
	})
}

func TestPostgresGroupRepository_Delete(t *testing.T) {
	t.Parallel()

	db := requireDB(t)
	repo := NewPostgresGroupRepository(db)
	ctx := context.Background()

	t.Run("Should delete an existing group", func(t *testing.T) {
		t.Parallel()

		group, _ := createTestGroup(t, ctx)

		if err := repo.Delete(ctx, group.ID); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		_, err := repo.GetByID(ctx, group.ID)
		if err != domain.ErrGroupNotFound {
			t.Errorf("Expected ErrGroupNotFound after delete, got %v", err)
		}
	})

	t.Run("Should return ErrGroupNotFound for non-existent group", func(t *testing.T) {
		t.Parallel()

		err := repo.Delete(ctx, uuid.NewString())

		if err != domain.ErrGroupNotFound {
			t.Errorf("Expected ErrGroupNotFound, got %v", err)
		}
	})
}
