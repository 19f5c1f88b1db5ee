package domain

import "context"

type UserRepository interface {
	// Create persists a new user account.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by its unique identifier.
	GetByID(ctx context.Context, id string) (*User, error)

	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByCompletionToken resolves the opaque magic-link credential to a
	// user. Returns ErrUserNotFound for unknown tokens.
	GetByCompletionToken(ctx context.Context, token string) (*User, error)

	// ListByGroupID retrieves the member set of a group.
	ListByGroupID(ctx context.Context, groupID string) ([]*User, error)

	// UpdateGroup persists a membership change (join, switch or leave).
	UpdateGroup(ctx context.Context, user *User) error
}
