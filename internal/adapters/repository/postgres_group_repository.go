package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/streakmate/streakmate-api/internal/core/domain"
)

type PostgresGroupRepository struct {
	db *sqlx.DB
}

func NewPostgresGroupRepository(db *sqlx.DB) *PostgresGroupRepository {
	return &PostgresGroupRepository{db: db}
}

func (r *PostgresGroupRepository) Create(ctx context.Context, group *domain.Group) error {
	query := `
		INSERT INTO groups (id, name, owner_id, created_at, updated_at)
		VALUES (:id, :name, :owner_id, :created_at, :updated_at)`

	_, err := r.db.NamedExecContext(ctx, query, group)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" {
				return domain.ErrGroupInvalidUser
			}
		}
		return err
	}
	return nil
}

func (r *PostgresGroupRepository) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	var group domain.Group
	query := `SELECT * FROM groups WHERE id = $1`

	err := r.db.GetContext(ctx, &group, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGroupNotFound
		}
		return nil, err
	}
	return &group, nil
}

func (r *PostgresGroupRepository) List(ctx context.Context) ([]*domain.Group, error) {
	groups := []*domain.Group{}

	query := `SELECT * FROM groups ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &groups, query)
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *PostgresGroupRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM groups WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrGroupNotFound
	}

	return nil
}
