// Package user manages accounts for the simulator: signup with email
// verification and password login. Persistence is behind the Store interface.
package user

import (
	"context"
	"errors"
	"time"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid verification token")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrPasswordRequired   = errors.New("password is required")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotVerified        = errors.New("email not verified")
	ErrLoginDisabled      = errors.New("login is not configured")
)

// User is a registered account. PasswordHash is a bcrypt hash.
type User struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	PasswordHash      string    `json:"-"`
	Verified          bool      `json:"verified"`
	VerificationToken string    `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
}

// Store persists users. Implementations must be safe for concurrent use.
type Store interface {
	// Create inserts u, returning ErrEmailTaken if the email exists.
	Create(ctx context.Context, u User) error

	// GetByEmail returns ErrUserNotFound when no user has the email.
	GetByEmail(ctx context.Context, email string) (User, error)

	// VerifyByToken marks the user holding token as verified and clears the
	// token. Returns ErrInvalidToken when no user holds it.
	VerifyByToken(ctx context.Context, token string) (User, error)

	Count(ctx context.Context) (int, error)
}
