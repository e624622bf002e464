package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeStore is a minimal UserStore for exercising the service.
type fakeStore struct {
	mu      sync.Mutex
	byID    map[string]*User
	byEmail map[string]string
	failAll error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		byID:    make(map[string]*User),
		byEmail: make(map[string]string),
	}
}

func (s *fakeStore) Create(ctx context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll != nil {
		return s.failAll
	}
	if _, ok := s.byEmail[u.Email]; ok {
		return ErrAlreadyExists
	}
	cp := *u
	s.byID[cp.ID] = &cp
	s.byEmail[cp.Email] = cp.ID
	return nil
}

func (s *fakeStore) Find(ctx context.Context, id string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll != nil {
		return nil, s.failAll
	}
	u, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *fakeStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll != nil {
		return nil, s.failAll
	}
	id, ok := s.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s.byID[id]
	return &cp, nil
}

func (s *fakeStore) UpdatePassword(ctx context.Context, id, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = hash
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *fakeStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.byEmail, u.Email)
	delete(s.byID, id)
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	codec, err := NewCodec([]byte("test-secret"))
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return NewService(store, NewHasher(4), codec), store
}

func TestServiceRegisterAndAuthenticate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Bob@Jones.com", "1234")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "bob@jones.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash == "1234" || user.PasswordHash == "" {
		t.Fatalf("password was not hashed")
	}

	token, err := svc.Authenticate(ctx, "bob@jones.com", "1234")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}

	resolved, err := svc.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.ID != user.ID {
		t.Fatalf("token resolved to %q, want %q", resolved.ID, user.ID)
	}
}

func TestServiceAuthenticateUnknownEmail(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Authenticate(context.Background(), "nobody@example.com", "1234")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestServiceAuthenticateWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	if _, err := svc.Register(ctx, "bob@jones.com", "1234"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err := svc.Authenticate(ctx, "bob@jones.com", "5678")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestServiceAuthenticateStoreFault(t *testing.T) {
	svc, store := newTestService(t)
	store.failAll = errors.New("connection refused")
	_, err := svc.Authenticate(context.Background(), "bob@jones.com", "1234")
	if err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnauthorized) {
		t.Fatalf("store fault must not map to an auth condition, got %v", err)
	}
}

func TestServiceRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	if _, err := svc.Register(ctx, "bob@jones.com", "1234"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err := svc.Register(ctx, "bob@jones.com", "5678")
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestServiceResolveStaleToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "bob@jones.com", "1234")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	token, err := svc.Authenticate(ctx, "bob@jones.com", "1234")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if err := svc.Delete(ctx, user.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	_, err = svc.Resolve(ctx, token)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("stale token should report ErrNotFound, got %v", err)
	}
}

func TestServiceChangePassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "bob@jones.com", "1234")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := svc.ChangePassword(ctx, user.ID, "abcd"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	if _, err := svc.Authenticate(ctx, "bob@jones.com", "1234"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("old password must stop working, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "bob@jones.com", "abcd"); err != nil {
		t.Fatalf("new password must work: %v", err)
	}
}
