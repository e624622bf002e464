package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"hellosvc.org/internal/audit"
	"hellosvc.org/internal/auth"
	"hellosvc.org/internal/obs"
)

type authenticateRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authenticateResponse struct {
	JWT string `json:"jwt"`
}

func (a *API) handleAuthenticate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req authenticateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateStruct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	token, err := a.auth.Authenticate(r.Context(), req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrNotFound):
		obs.ObserveAuthAttempt("not_found")
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("email: %s", req.Email))
		return
	case errors.Is(err, auth.ErrUnauthorized):
		obs.ObserveAuthAttempt("unauthorized")
		_ = audit.LogEvent(r.Context(), "auth.login.denied", map[string]any{
			"email": req.Email,
		})
		writeError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	default:
		obs.ObserveAuthAttempt("error")
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	obs.ObserveAuthAttempt("success")
	_ = audit.LogEvent(r.Context(), "auth.login", map[string]any{
		"email": req.Email,
	})
	writeJSON(w, http.StatusOK, authenticateResponse{JWT: token})
}
