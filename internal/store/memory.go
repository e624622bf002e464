package store

import (
	"context"
	"sync"
	"time"

	"hellosvc.org/internal/auth"
)

var _ auth.UserStore = (*InMemory)(nil)

// InMemory implements auth.UserStore with in-process concurrency safety.
// Email uniqueness is checked under the same lock as the insert, so a
// duplicate registration can never race past the constraint.
type InMemory struct {
	mu      sync.RWMutex
	byID    map[string]*auth.User
	byEmail map[string]string
}

// NewInMemory creates an empty user store.
func NewInMemory() *InMemory {
	return &InMemory{
		byID:    make(map[string]*auth.User),
		byEmail: make(map[string]string),
	}
}

func (s *InMemory) Create(ctx context.Context, u *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[u.Email]; ok {
		return auth.ErrAlreadyExists
	}
	cp := *u
	s.byID[cp.ID] = &cp
	s.byEmail[cp.Email] = cp.ID
	return nil
}

func (s *InMemory) Find(ctx context.Context, id string) (*auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, auth.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *InMemory) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return nil, auth.ErrNotFound
	}
	cp := *s.byID[id]
	return &cp, nil
}

func (s *InMemory) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return auth.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *InMemory) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return auth.ErrNotFound
	}
	delete(s.byEmail, u.Email)
	delete(s.byID, id)
	return nil
}
