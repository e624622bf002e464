package auth

import "context"

type principalContextKey struct{}

// ContextWithPrincipal attaches the resolved user to the request context.
func ContextWithPrincipal(ctx context.Context, user *User) context.Context {
	if user == nil {
		return ctx
	}
	return context.WithValue(ctx, principalContextKey{}, user)
}

// PrincipalFromContext extracts the resolved user from the context.
func PrincipalFromContext(ctx context.Context) (*User, bool) {
	if ctx == nil {
		return nil, false
	}
	u, ok := ctx.Value(principalContextKey{}).(*User)
	if !ok || u == nil {
		return nil, false
	}
	return u, true
}
