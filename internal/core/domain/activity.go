package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidActivity = errors.New("invalid activity data")

	// ErrActivityExists signals the one-completion-per-day rule: either the
	// caller skipped the completed-today check, or two writes for the same
	// day raced and the storage unique constraint caught the second one.
	ErrActivityExists = errors.New("activity already logged for this day")
)

// Activity is a single logged workout. Append-only: records are immutable
// once created and are never deleted in normal operation. Only the calendar
// day of PerformedAt (in UTC) is significant for streak math.
type Activity struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	PerformedAt time.Time `json:"performed_at" db:"performed_at"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

func NewActivity(userID string, performedAt time.Time) *Activity {
	return &Activity{
		UserID:      userID,
		PerformedAt: performedAt.UTC(),
		CreatedAt:   time.Now().UTC(),
	}
}

func (a *Activity) Validate() error {
	if strings.TrimSpace(a.UserID) == "" {
		return errors.New("user_id is required")
	}
	if a.PerformedAt.IsZero() {
		return errors.New("performed_at is required")
	}
	return nil
}
