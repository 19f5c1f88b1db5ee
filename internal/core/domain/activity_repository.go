package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrActivityNotFound = errors.New("activity not found")
)

type ActivityRepository interface {
	// Create appends one activity record. Implementations must map a
	// duplicate (user, calendar day) pair to ErrActivityExists so that
	// concurrent same-day writes stay idempotent.
	Create(ctx context.Context, activity *Activity) error

	// ListByUserID retrieves the full activity history for a user, in no
	// guaranteed order. Streak math sorts internally.
	ListByUserID(ctx context.Context, userID string) ([]*Activity, error)

	// ListByUserIDWithRange retrieves activities within a time window.
	// This backs history/calendar views.
	ListByUserIDWithRange(ctx context.Context, userID string, from, to time.Time) ([]*Activity, error)
}
