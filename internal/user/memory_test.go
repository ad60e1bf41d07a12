package user

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_CRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Create(ctx, User{ID: "u1", Email: testEmail, VerificationToken: "tok"}))
	assert.ErrorIs(t, s.Create(ctx, User{ID: "u2", Email: testEmail}), ErrEmailTaken)

	got, err := s.GetByEmail(ctx, testEmail)
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)

	_, err = s.GetByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = s.VerifyByToken(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidToken)

	v, err := s.VerifyByToken(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, v.Verified)
	assert.Empty(t, v.VerificationToken)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMemoryStore_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Create(ctx, User{ID: fmt.Sprint(i), Email: fmt.Sprintf("u%d@example.com", i)})
		}()
	}
	wg.Wait()

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, n)
}
