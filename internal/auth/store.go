package auth

import "context"

// UserStore is the identity lookup contract shared by credential and bearer
// authentication. Every operation is atomic at single-record granularity;
// email uniqueness is enforced by the store at write time.
type UserStore interface {
	Create(ctx context.Context, u *User) error
	Find(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
}
