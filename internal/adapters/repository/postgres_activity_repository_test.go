package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/streakmate/streakmate-api/internal/core/domain"
)

func TestPostgresActivityRepository_Create(t *testing.T) {
	t.Parallel()

	db := requireDB(t)
	repo := NewPostgresActivityRepository(db)
	userRepo := NewPostgresUserRepository(db.DB)
	ctx := context.Background()

	t.Run("Should log an activity and assign an ID", func(t *testing.T) {
		t.Parallel()

		user := newTestUser(t)
		if err := userRepo.Create(ctx, user); err != nil {
			t.Fatalf("Setup insert failed: %v", err)
		}

		activity := domain.NewActivity(user.ID, time.Now().UTC())

		if err := repo.Create(ctx, activity); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if activity.ID == "" {
			t.Error("Expected an assigned ID")
		}
	})

	t.Run("Should reject a second activity on the same day", func(t *testing.T) {
		t.Parallel()

		user := newTestUser(t)
		if err := userRepo.Create(ctx, user); err != nil {
			t.Fatalf("Setup insert failed: %v", err)
		}

		morning := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
		evening := morning.Add(10 * time.Hour)

		if err := repo.Create(ctx, domain.NewActivity(user.ID, morning)); err != nil {
			t.Fatalf("First insert failed: %v", err)
		}

		err := repo.Create(ctx, domain.NewActivity(user.ID, evening))

		if err != domain.ErrActivityExists {
			t.Errorf("Expected ErrActivityExists, got %v", err)
		}
	})

	t.Run("Should reject an activity for a ghost user", func(t *testing.T) {
		t.Parallel()

		err := repo.Create(ctx, domain.NewActivity(uuid.NewString(), time.Now().UTC()))

		if err != domain.ErrUserNotFound {
			t.Errorf("Expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestPostgresActivityRepository_List(t *testing.T) {
	t.Parallel()

	db := requireDB(t)
	repo := NewPostgresActivityRepository(db)
	userRepo := NewPostgresUserRepository(db.DB)
	ctx := context.Background()

	t.Run("Should list newest first", func(t *testing.T) {
		t.Parallel()

		user := newTestUser(t)
		if err := userRepo.Create(ctx, user); err != nil {
			t.Fatalf("Setup insert failed: %v", err)
		}

		base := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
		for _, d := range []int{2, 0, 1} {
			if err := repo.Create(ctx, domain.NewActivity(user.ID, base.AddDate(0, 0, -d))); err != nil {
				t.Fatalf("Insert failed: %v", err)
			}
		}

		activities, err := repo.ListByUserID(ctx, user.ID)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(activities) != 3 {
			t.Fatalf("Expected 3 activities, got %d", len(activities))
		}
		for i := 1; i < len(activities); i++ {
			if activities[i].PerformedAt.After(activities[i-1].PerformedAt) {
				t.Error("Activities should be ordered newest first")
			}
		}
	})

	t.Run("Should respect the requested time window", func(t *testing.T) {
		t.Parallel()

		user := newTestUser(t)
		if err := userRepo.Create(ctx, user); err != nil {
			t.Fatalf("Setup insert failed: %v", err)
		}

		base := time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC)
		for d := 0; d < 5; d++ {
			if err := repo.Create(ctx, domain.NewActivity(user.ID, base.AddDate(0, 0, -d))); err != nil {
				t.Fatalf("Insert failed: %v", err)
			}
		}

		from := base.AddDate(0, 0, -2)
		activities, err := repo.ListByUserIDWithRange(ctx, user.ID, from, base)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(activities) != 3 {
			t.Errorf("Expected 3 activities in window, got %d", len(activities))
		}
	})
}
