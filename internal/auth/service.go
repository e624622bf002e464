package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hellosvc.org/internal/ids"
)

// Service orchestrates credential login, bearer token resolution and the
// user lifecycle around an injected UserStore. All dependencies are fixed
// at construction; the service itself holds no mutable state.
type Service struct {
	users  UserStore
	hasher *Hasher
	tokens *Codec
	now    func() time.Time
}

// NewService wires the identity store, password hasher and token codec.
func NewService(users UserStore, hasher *Hasher, tokens *Codec) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		now:    time.Now,
	}
}

// Register creates a user record with a freshly hashed password.
// A duplicate email surfaces as ErrAlreadyExists from the store.
func (s *Service) Register(ctx context.Context, email, password string) (*User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := s.now().UTC()
	user := &User{
		ID:           ids.New(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate performs the login exchange: one store read, zero writes.
// Unknown email reports ErrNotFound, a password mismatch ErrUnauthorized
// with no further detail; anything else is a store fault.
func (s *Service) Authenticate(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return "", ErrUnauthorized
	}
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// Resolve maps a bearer token back to its user. Verification failures come
// back as *TokenError; a token that verifies but whose user no longer
// exists reports ErrNotFound, which callers treat as a stale token.
func (s *Service) Resolve(ctx context.Context, token string) (*User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	return s.users.Find(ctx, claims.Subject)
}

// Get loads a user by identifier.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.users.Find(ctx, id)
}

// ChangePassword re-hashes and stores a new password for the user.
func (s *Service) ChangePassword(ctx context.Context, id, password string) error {
	if password == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.UpdatePassword(ctx, id, hash)
}

// Delete removes the user record. Tokens already issued for the user keep
// verifying but resolve to no principal afterwards.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
