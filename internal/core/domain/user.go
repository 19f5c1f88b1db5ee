package domain

import (
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrUnauthorized       = errors.New("unauthorized access")
)

type User struct {
	ID           string  `json:"id" db:"id"`
	Email        string  `json:"email" db:"email"`
	Name         string  `json:"name" db:"name"`
	AvatarURL    string  `json:"avatar_url,omitempty" db:"avatar_url"`
	PasswordHash string  `json:"-" db:"password_hash"`
	GroupID      *string `json:"group_id,omitempty" db:"group_id"`

	// CompletionToken is the opaque bearer credential behind "magic link"
	// completions. It identifies the user without a session.
	CompletionToken string `json:"-" db:"completion_token"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func NewUser(id, email, name string) (*User, error) {
	email = strings.TrimSpace(email)

	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	name = strings.TrimSpace(name)
	if name == "" {
		// Same fallback the clients use: everything before the @.
		name = strings.SplitN(email, "@", 2)[0]
	}

	now := time.Now().UTC()
	return &User{
		ID:              id,
		Email:           strings.ToLower(email),
		Name:            name,
		CompletionToken: uuid.NewString(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

func (u *User) SetPassword(plainPassword string) error {
	if utf8.RuneCountInString(plainPassword) < 8 {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), 12)
	if err != nil {
		return err
	}

	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (u *User) CheckPassword(plainPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plainPassword))
}

// JoinGroup moves the user into a group. A user belongs to at most one group
// at a time; joining another group replaces the previous membership.
func (u *User) JoinGroup(groupID string) {
	u.GroupID = &groupID
	u.UpdatedAt = time.Now().UTC()
}

func (u *User) LeaveGroup() {
	u.GroupID = nil
	u.UpdatedAt = time.Now().UTC()
}

func (u *User) InGroup(groupID string) bool {
	return u.GroupID != nil && *u.GroupID == groupID
}

func isValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}
