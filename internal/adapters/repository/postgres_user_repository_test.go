package repository

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/streakmate/streakmate-api/internal/core/domain"
)

var testDB *sqlx.DB

func TestMain(m *testing.M) {
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}

	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "5432"
	}

	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		dbUser = "streakmate_user"
	}

	dbPass := os.Getenv("DB_PASSWORD")
	if dbPass == "" {
		dbPass = "secret"
	}

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "streakmate_db"
	}

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPass, dbHost, dbPort, dbName)

	db, err := sqlx.Open("pgx", connStr)
	if err == nil {
		for i := 0; i < 5; i++ {
			if err = db.Ping(); err == nil {
				testDB = db
				break
			}
			time.Sleep(1 * time.Second)
		}
	}

	if testDB == nil {
		log.Printf("Postgres unreachable, integration tests will be skipped: %v", err)
	}

	code := m.Run()

	if testDB != nil {
		testDB.Close()
	}
	os.Exit(code)
}

func requireDB(t *testing.T) *sqlx.DB {
	t.Helper()
	if testDB == nil {
		t.Skip("Skipping integration test: postgres not available")
	}
	return testDB
}

func newTestUser(t *testing.T) *domain.User {
	t.Helper()

	email := fmt.Sprintf("test_%s@example.com", uuid.NewString())
	user, err := domain.NewUser(uuid.NewString(), email, "Tester")
	if err != nil {
		t.Fatalf("Failed to create domain user: %v", err)
	}
	if err := user.SetPassword("passwordStrong123"); err != nil {
		t.Fatalf("Failed to set password: %v", err)
	}
	return user
}

func TestPostgresUserRepository_Create(t *testing.T) {
	t.Parallel()

	db := requireDB(t)
	repo := NewPostgresUserRepository(db.DB)
	ctx := context.Background()

	t.Run("Should create a user successfully", func(t *testing.T) {
		t.Parallel()

		user := newTestUser(t)

		if err := repo.Create(ctx, user); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}

		savedUser, err := repo.GetByEmail(ctx, user.Email)
		if err != nil {
			t.Fatalf("Could not retrieve saved user: %v", err)
		}

		if savedUser.ID != user.ID {
			t.Errorf("Expected ID %s, got %s", user.ID, savedUser.ID)
		}
		if savedUser.CompletionToken != user.CompletionToken {
			t.Errorf("Expected completion token %s, got %s", user.CompletionToken, savedUser.CompletionToken)
		}
		if savedUser.CreatedAt.IsZero() || savedUser.UpdatedAt.IsZero() {
			t.Error("Timestamps should not be zero")
		}
	})

	t.Run("Should fail on duplicate email", func(t *testing.T) {
		t.Parallel()

		user1 := newTestUser(t)
		if err := repo.Create(ctx, user1); err != nil {
			t.Fatalf("Setup insert failed: %v", err)
		}

		user2, _ := domain.NewUser(uuid.NewString(), user1.Email, "Other")
		_ = user2.SetPassword("passwordStrong123")

		err := repo.Create(ctx, user2)

		if err != domain.ErrEmailAlreadyExists {
			t.Errorf("Expected ErrEmailAlreadyExists, got %v", err)
		}
	})
}

func TestPostgresUserRepository_GetByID(t *testing.T) {
	t.Parallel()

	db := requireDB(t)
	repo := NewPostgresUserRepository(db.DB)
	ctx := context.Background()

	t.Run("Should retrieve existing user by ID", func(t *testing.T) {
		t.Parallel()

		user := newTestUser(t)
		_ = repo.Create(ctx, user)

		foundUser, err := repo.GetByID(ctx, user.ID)

		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if foundUser.Email != user.Email {
			t.Errorf("Expected email %s, got %s", user.Email, foundUser.Email)
		}
	})

	t.Run("Should return ErrUserNotFound for non-existent ID", func(t *testing.T) {
		t.Parallel()

		_, err := repo.GetByID(ctx, uuid.NewString())

		if err != domain.ErrUserNotFound {
			t.Errorf("Expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestPostgresUserRepository_GetByCompletionToken(t *testing.T) {
	t.Parallel()

	db := requireDB(t)
	repo := NewPostgresUserRepository(db.DB)
	ctx := context.Background()

	t.Run("Should resolve a user from the completion token", func(t *testing.T) {
		t.Parallel()

		user := newTestUser(t)
		_ = repo.Create(ctx, user)

		foundUser, err := repo.GetByCompletionToken(ctx, user.CompletionToken)

		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if foundUser.ID != user.ID {
			t.Errorf("Expected ID %s, got %s", user.ID, foundUser.ID)
		}
	})

	t.Run("Should return ErrUserNotFound for unknown token", func(t *testing.T) {
		t.Parallel()

		_, err := repo.GetByCompletionToken(ctx, uuid.NewString())

		if err != domain.ErrUserNotFound {
			t.Errorf("Expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestPostgresUserRepository_GroupMembership(t *testing.T) {
	t.Parallel()

	db := requireDB(t)
	repo := NewPostgresUserRepository(db.DB)
	groupRepo := NewPostgresGroupRepository(db)
	ctx := context.Background()

	t.Run("UpdateGroup and ListByGroupID roundtrip", func(t *testing.T) {
		t.Parallel()

		owner := newTestUser(t)
		member := newTestUser(t)
		if err := repo.Create(ctx, owner); err != nil {
			t.Fatalf("Setup insert failed: %v", err)
		}
		if err := repo.Create(ctx, member); err != nil {
			t.Fatalf("Setup insert failed: %v", err)
		}

		group, err := domain.NewGroup(owner.ID, fmt.Sprintf("Group %s", uuid.NewString()))
		if err != nil {
			t.Fatalf("Failed to create domain group: %v", err)
		}
		if err := groupRepo.Create(ctx, group); err != nil {
			t.Fatalf("Failed to persist group: %v", err)
		}

		owner.JoinGroup(group.ID)
		member.JoinGroup(group.ID)
		if err := repo.UpdateGroup(ctx, owner); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if err := repo.UpdateGroup(ctx, member); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		members, err := repo.ListByGroupID(ctx, group.ID)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(members) != 2 {
			t.Fatalf("Expected 2 members, got %d", len(members))
		}
		if members[0].ID > members[1].ID {
			t.Error("Members should be ordered by ID ascending")
		}
	})

	t.Run("Should return ErrUserNotFound when updating a ghost user", func(t *testing.T) {
		t.Parallel()

		ghost := newTestUser(t)

		err := repo.UpdateGroup(ctx, ghost)

		if err != domain.ErrUserNotFound {
			t.Errorf("Expected ErrUserNotFound, got %v", err)
		}
	})
}
