package user

import (
	"context"
	"sync"
)

// MemoryStore is a Store backed by a map. Contents are lost on restart.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]User // keyed by email
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]User)}
}

func (s *MemoryStore) Create(_ context.Context, u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.Email]; ok {
		return ErrEmailTaken
	}
	s.users[u.Email] = u
	return nil
}

func (s *MemoryStore) GetByEmail(_ context.Context, email string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[email]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func (s *MemoryStore) VerifyByToken(_ context.Context, token string) (User, error) {
	if token == "" {
		return User{}, ErrInvalidToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for email, u := range s.users {
		if u.VerificationToken != token {
			continue
		}
		u.Verified = true
		u.VerificationToken = ""
		s.users[email] = u
		return u, nil
	}
	return User{}, ErrInvalidToken
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}
