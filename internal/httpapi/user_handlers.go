package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"hellosvc.org/internal/audit"
	"hellosvc.org/internal/auth"
)

type createUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateUserRequest struct {
	Password string `json:"password" validate:"required"`
}

// mutationResponse reports how many records a write touched.
type mutationResponse struct {
	N int `json:"n"`
}

func (a *API) handleUsersCollection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req createUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateStruct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	user, err := a.auth.Register(r.Context(), req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrAlreadyExists):
		writeError(w, r, http.StatusConflict, "User exists with this email")
		return
	case errors.Is(err, auth.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	default:
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	_ = audit.LogEvent(r.Context(), "user.create", map[string]any{
		"user_id": user.ID,
		"email":   user.Email,
	})
	w.Header().Set("Location", fmt.Sprintf("/users/%s", user.ID))
	writeJSON(w, http.StatusCreated, user)
}

func (a *API) handleUserResource(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/users/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		a.getUser(w, r, id)
	case http.MethodPatch:
		a.updateUser(w, r, id)
	case http.MethodDelete:
		a.deleteUser(w, r, id)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPatch, http.MethodDelete)
	}
}

func (a *API) getUser(w http.ResponseWriter, r *http.Request, id string) {
	principal, ok := a.requireOwner(w, r, id)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, principal)
}

func (a *API) updateUser(w http.ResponseWriter, r *http.Request, id string) {
	if _, ok := a.requireOwner(w, r, id); !ok {
		return
	}

	var req updateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateStruct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.auth.ChangePassword(r.Context(), id, req.Password); err != nil {
		handleUserError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "user.password_change", map[string]any{
		"user_id": id,
	})
	writeJSON(w, http.StatusOK, mutationResponse{N: 1})
}

func (a *API) deleteUser(w http.ResponseWriter, r *http.Request, id string) {
	if _, ok := a.requireOwner(w, r, id); !ok {
		return
	}

	if err := a.auth.Delete(r.Context(), id); err != nil {
		handleUserError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "user.delete", map[string]any{
		"user_id": id,
	})
	writeJSON(w, http.StatusOK, mutationResponse{N: 1})
}

func handleUserError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, auth.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "user not found")
	case errors.Is(err, auth.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, err.Error())
	default:
		writeError(w, r, http.StatusInternalServerError, err.Error())
	}
}
