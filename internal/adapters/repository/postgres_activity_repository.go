package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/streakmate/streakmate-api/internal/core/domain"
)

type PostgresActivityRepository struct {
	db *sqlx.DB
}

func NewPostgresActivityRepository(db *sqlx.DB) *PostgresActivityRepository {
	return &PostgresActivityRepository{db: db}
}

func (r *PostgresActivityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}

	// The unique index on (user_id, performed_at::date) is the last line of
	// defense for the one-completion-per-day rule when two logs race.
	query := `
		INSERT INTO activities (id, user_id, performed_at, created_at)
		VALUES (:id, :user_id, :performed_at, :created_at)`

	_, err := r.db.NamedExecContext(ctx, query, activity)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" {
				return domain.ErrUserNotFound
			}
			if pqErr.Code == "23505" {
				return domain.ErrActivityExists
			}
		}
		return err
	}
	return nil
}

func (r *PostgresActivityRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Activity, error) {
	activities := []*domain.Activity{}

	query := `
		SELECT * FROM activities
		WHERE user_id = $1
		ORDER BY performed_at DESC`

	err := r.db.SelectContext(ctx, &activities, query, userID)
	if err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *PostgresActivityRepository) ListByUserIDWithRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.Activity, error) {
	activities := []*domain.Activity{}

	query := `
		SELECT * FROM activities
		WHERE user_id = $1
		  AND performed_at >= $2
		  AND performed_at <= $3
		ORDER BY performed_at DESC`

	err := r.db.SelectContext(ctx, &activities, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *PostgresActivityRepository) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	var activity domain.Activity
	query := `SELECT * FROM activities WHERE id = $1`

	err := r.db.GetContext(ctx, &activity, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrActivityNotFound
		}
		return nil, err
	}
	return &activity, nil
}
