package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"hellosvc.org/internal/auth"
)

const (
	authHeader   = "Authorization"
	bearerScheme = "Bearer"
)

// isPublicRequest reports whether the request bypasses bearer
// authentication. Login and registration are open; everything else under
// the mux requires a token.
func isPublicRequest(r *http.Request) bool {
	if r.Method == http.MethodOptions {
		return true
	}
	switch r.URL.Path {
	case "/authenticate", "/healthz", "/readyz", "/metrics":
		return true
	case "/users":
		return r.Method == http.MethodPost
	}
	return false
}

// withAuth resolves the acting principal from the Authorization header or
// fails the request closed. The header is accepted only as exactly
// "Bearer <token>"; a scheme mismatch or extra segments are rejected even
// when a token-shaped value is present.
func (a *API) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublicRequest(r) {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get(authHeader)
		if header == "" {
			writeError(w, r, http.StatusUnauthorized, "No Authorization Header")
			return
		}
		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != bearerScheme {
			writeError(w, r, http.StatusUnauthorized, "Invalid Authorization Header")
			return
		}

		user, err := a.auth.Resolve(r.Context(), parts[1])
		var tokenErr *auth.TokenError
		switch {
		case err == nil:
			r = r.WithContext(auth.ContextWithPrincipal(r.Context(), user))
		case errors.As(err, &tokenErr):
			writeError(w, r, http.StatusUnauthorized, tokenErr.Error())
			return
		case errors.Is(err, auth.ErrNotFound):
			// Token verified but its user is gone: the request continues
			// without a principal and the ownership gate denies it with 403.
		default:
			writeError(w, r, http.StatusInternalServerError, "authentication error")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireOwner is the authorization gate: the context principal must own
// the targeted resource. A denial is always 403, distinct from the 401s
// produced by withAuth.
func (a *API) requireOwner(w http.ResponseWriter, r *http.Request, ownerID string) (*auth.User, bool) {
	principal, _ := auth.PrincipalFromContext(r.Context())
	if !auth.Authorize(principal, ownerID) {
		writeError(w, r, http.StatusForbidden, "User does not have permission to perform operation")
		return nil, false
	}
	return principal, true
}
