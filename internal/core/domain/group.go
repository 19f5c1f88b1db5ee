package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrGroupNameEmpty   = errors.New("group name cannot be empty")
	ErrGroupNameTooLong = errors.New("group name is too long (max 100 chars)")
	ErrGroupInvalidUser = errors.New("invalid owner user id")
	ErrAlreadyInGroup   = errors.New("user is already a member of this group")
	ErrNotGroupMember   = errors.New("user is not a member of this group")
)

const MaxGroupNameLen = 100

// Group is a named circle of users competing on the same leaderboard.
// Membership lives on the user side (User.GroupID); the group itself only
// carries identity and ownership.
type Group struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	OwnerID   string    `json:"owner_id" db:"owner_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func NewGroup(ownerID, name string) (*Group, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, ErrGroupInvalidUser
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrGroupNameEmpty
	}
	if len(trimmed) > MaxGroupNameLen {
		return nil, ErrGroupNameTooLong
	}

	now := time.Now().UTC()
	return &Group{
		ID:        uuid.NewString(),
		Name:      trimmed,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (g *Group) IsOwner(userID string) bool {
	return g.OwnerID == userID
}
