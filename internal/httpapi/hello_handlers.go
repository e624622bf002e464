package httpapi

import (
	"net/http"

	"hellosvc.org/internal/auth"
)

const helloMessage = "Hello world!"

type helloResponse struct {
	Message string `json:"message"`
}

func (a *API) handleHello(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	// Any resolved principal may be greeted; a stale token leaves no
	// principal in context and is denied here.
	if _, ok := auth.PrincipalFromContext(r.Context()); !ok {
		writeError(w, r, http.StatusForbidden, "User does not have permission to perform operation")
		return
	}
	writeJSON(w, http.StatusOK, helloResponse{Message: helloMessage})
}
