package user

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/bcrypt"
)

// emailRe is a deliberately loose syntax check: something@something.tld.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// TokenIssuer creates session tokens for logged-in users.
type TokenIssuer interface {
	Issue(userID, email string) (token string, expiresAt time.Time, err error)
}

// Session is returned by a successful login.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Email     string    `json:"email"`
}

// Registry implements signup, email verification, and login on top of a Store.
type Registry struct {
	store    Store
	issuer   TokenIssuer
	clock    clockwork.Clock
	hashCost int
	logger   *slog.Logger
	onSignup func()
}

// NewRegistry creates a Registry. A nil issuer disables Login.
func NewRegistry(store Store, issuer TokenIssuer, logger *slog.Logger) *Registry {
	return &Registry{
		store:    store,
		issuer:   issuer,
		clock:    clockwork.NewRealClock(),
		hashCost: bcrypt.DefaultCost,
		logger:   logger,
	}
}

// SetClock swaps the time source used for CreatedAt.
func (r *Registry) SetClock(c clockwork.Clock) { r.clock = c }

// SetHashCost overrides the bcrypt cost. Intended for tests.
func (r *Registry) SetHashCost(cost int) { r.hashCost = cost }

// OnSignup registers a callback run after each successful signup.
func (r *Registry) OnSignup(fn func()) { r.onSignup = fn }

// Signup creates an unverified account and returns it with its verification token.
func (r *Registry) Signup(ctx context.Context, email, password string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRe.MatchString(email) {
		return User{}, ErrInvalidEmail
	}
	if password == "" {
		return User{}, ErrPasswordRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), r.hashCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}
	token, err := newVerificationToken()
	if err != nil {
		return User{}, err
	}

	u := User{
		ID:                uuid.NewString(),
		Email:             email,
		PasswordHash:      string(hash),
		VerificationToken: token,
		CreatedAt:         r.clock.Now().UTC(),
	}
	if err := r.store.Create(ctx, u); err != nil {
		return User{}, err
	}

	if r.onSignup != nil {
		r.onSignup()
	}
	r.logger.Info("user created", "user_id", u.ID)
	return u, nil
}

// Verify marks the account holding token as verified.
func (r *Registry) Verify(ctx context.Context, token string) (User, error) {
	u, err := r.store.VerifyByToken(ctx, token)
	if err != nil {
		return User{}, err
	}
	r.logger.Info("user verified", "user_id", u.ID)
	return u, nil
}

// Login checks credentials and issues a session token for verified users.
func (r *Registry) Login(ctx context.Context, email, password string) (Session, error) {
	if r.issuer == nil {
		return Session{}, ErrLoginDisabled
	}

	u, err := r.store.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, ErrUserNotFound) {
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}
	if !u.Verified {
		return Session{}, ErrNotVerified
	}

	token, expiresAt, err := r.issuer.Issue(u.ID, u.Email)
	if err != nil {
		return Session{}, fmt.Errorf("issue session token: %w", err)
	}
	return Session{Token: token, ExpiresAt: expiresAt, Email: u.Email}, nil
}

// Count returns the number of registered users.
func (r *Registry) Count(ctx context.Context) (int, error) {
	return r.store.Count(ctx)
}

func newVerificationToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate verification token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
