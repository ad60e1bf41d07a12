package user

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testEmail    = "ada@example.com"
	testPassword = "correct horse battery staple"
)

type stubIssuer struct {
	err error
}

func (s stubIssuer) Issue(userID, _ string) (string, time.Time, error) {
	return "token-" + userID, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRegistry(issuer TokenIssuer) *Registry {
	r := NewRegistry(NewMemoryStore(), issuer, discardLogger())
	r.SetHashCost(bcrypt.MinCost)
	return r
}

func TestRegistry_Signup(t *testing.T) {
	created := time.Date(2026, 1, 1, 9, 30, 0, 0, time.UTC)
	r := newTestRegistry(nil)
	r.SetClock(clockwork.NewFakeClockAt(created))
	signups := 0
	r.OnSignup(func() { signups++ })

	u, err := r.Signup(context.Background(), "  Ada@Example.com ", testPassword)
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, testEmail, u.Email)
	assert.False(t, u.Verified)
	assert.Len(t, u.VerificationToken, 64)
	assert.Equal(t, created, u.CreatedAt)
	assert.NotEqual(t, testPassword, u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(testPassword)))
	assert.Equal(t, 1, signups)

	n, err := r.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRegistry_SignupRejects(t *testing.T) {
	r := newTestRegistry(nil)
	_, err := r.Signup(context.Background(), testEmail, testPassword)
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"duplicate", testEmail, "other", ErrEmailTaken},
		{"bad email", "not-an-email", testPassword, ErrInvalidEmail},
		{"empty password", "bob@example.com", "", ErrPasswordRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Signup(context.Background(), tt.email, tt.password)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRegistry_VerifyAndLogin(t *testing.T) {
	r := newTestRegistry(stubIssuer{})
	ctx := context.Background()

	u, err := r.Signup(ctx, testEmail, testPassword)
	require.NoError(t, err)

	_, err = r.Login(ctx, testEmail, testPassword)
	assert.ErrorIs(t, err, ErrNotVerified)

	verified, err := r.Verify(ctx, u.VerificationToken)
	require.NoError(t, err)
	assert.True(t, verified.Verified)

	_, err = r.Verify(ctx, u.VerificationToken)
	assert.ErrorIs(t, err, ErrInvalidToken, "tokens are single use")

	session, err := r.Login(ctx, "ADA@example.com", testPassword)
	require.NoError(t, err)
	assert.Equal(t, "token-"+u.ID, session.Token)
	assert.Equal(t, testEmail, session.Email)
}

func TestRegistry_LoginFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown email", func(t *testing.T) {
		r := newTestRegistry(stubIssuer{})
		_, err := r.Login(ctx, "nobody@example.com", testPassword)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		r := newTestRegistry(stubIssuer{})
		_, err := r.Signup(ctx, testEmail, testPassword)
		require.NoError(t, err)
		_, err = r.Login(ctx, testEmail, "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("issuer error", func(t *testing.T) {
		r := newTestRegistry(stubIssuer{err: errors.New("signing failed")})
		u, err := r.Signup(ctx, testEmail, testPassword)
		require.NoError(t, err)
		_, err = r.Verify(ctx, u.VerificationToken)
		require.NoError(t, err)

		_, err = r.Login(ctx, testEmail, testPassword)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "signing failed")
	})

	t.Run("login disabled", func(t *testing.T) {
		r := newTestRegistry(nil)
		_, err := r.Login(ctx, testEmail, testPassword)
		assert.ErrorIs(t, err, ErrLoginDisabled)
	})
}
