package auth

// Authorize reports whether the principal may act on the resource owned by
// ownerID. The policy is ownership equality: a request acting as no
// principal, or as a different user, is denied. Callers surface a denial as
// forbidden, never as an authentication failure.
func Authorize(principal *User, ownerID string) bool {
	if principal == nil || ownerID == "" {
		return false
	}
	return principal.ID == ownerID
}
