package domain

import (
	"context"
	"errors"
)

var (
	ErrGroupNotFound = errors.New("group not found")
)

type GroupRepository interface {
	// Create persists a new group.
	Create(ctx context.Context, group *Group) error

	// GetByID retrieves a group by its unique identifier.
	GetByID(ctx context.Context, id string) (*Group, error)

	// List retrieves all groups, for browsing/joining.
	List(ctx context.Context) ([]*Group, error)

	// Delete permanently removes a group.
	Delete(ctx context.Context, id string) error
}
