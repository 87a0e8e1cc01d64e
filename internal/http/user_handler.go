package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/quickbite/ordering/internal/user"
)

// CreateOrGetUser registers a user, or returns the existing id when the
// email is already taken. Both outcomes look the same to the caller.
func (h *Handler) CreateOrGetUser(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" || body.Email == "" {
		writeError(w, http.StatusBadRequest, "name and email are required")
		return
	}

	role, ok := user.ParseRole(body.Role)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid role")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	id, err := h.users.CreateOrGet(ctx, body.Name, body.Email, role)
	if err != nil {
		h.logger.Printf("create user: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"userId": id})
}

func (h *Handler) GetUserByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "missing email")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	u, err := h.users.GetByEmail(ctx, email)
	if err != nil {
		h.logger.Printf("get user by email: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load user")
		return
	}
	if u == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, u)
}
