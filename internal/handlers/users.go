// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"clientportal/internal/middleware"
	"clientportal/internal/models"
)

// UserAdminSource is the subset of store.UserStore the admin user
// management handlers need.
type UserAdminSource interface {
	List(ctx context.Context) ([]models.User, error)
	SetRole(ctx context.Context, userID uuid.UUID, role models.Role) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// Users serves the admin account-management endpoints, mainly approving
// pending registrations by moving them to the client role.
type Users struct {
	users      UserAdminSource
	activities ActivityRecorder
}

// NewUsers creates the user management handler group.
func NewUsers(users UserAdminSource, activities ActivityRecorder) *Users {
	return &Users{users: users, activities: activities}
}

// List returns all accounts.
func (u *Users) List(w http.ResponseWriter, r *http.Request) {
	users, err := u.users.List(r.Context())
	if err != nil {
		slog.Error("users query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not load users.")
		return
	}
	if users == nil {
		users = []models.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

type roleRequest struct {
	Role models.Role `json:"role"`
}

// SetRole changes an account's role. Approving a registration is
// PATCH {role: "client"} on a pending account.
func (u *Users) SetRole(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id.")
		return
	}

	var req roleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	switch req.Role {
	case models.RoleAdmin, models.RoleClient, models.RolePending:
	default:
		writeError(w, http.StatusBadRequest, "Unknown role.")
		return
	}

	// Admins cannot demote themselves; that locks everyone out.
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil && sess.UserID == id && req.Role != models.RoleAdmin {
		writeError(w, http.StatusBadRequest, "You cannot change your own role.")
		return
	}

	if err := u.users.SetRole(r.Context(), id, req.Role); err != nil {
		slog.Error("role update failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Could not update the user.")
		return
	}

	if err := u.activities.Record(r.Context(), "user", "Account role changed to "+string(req.Role)); err != nil {
		slog.Warn("activity record failed", "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes an account.
func (u *Users) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id.")
		return
	}

	if sess := middleware.SessionFromCtx(r.Context()); sess != nil && sess.UserID == id {
		writeError(w, http.StatusBadRequest, "You cannot delete your own account.")
		return
	}

	if err := u.users.Delete(r.Context(), id); err != nil {
		slog.Error("user delete failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Could not delete the user.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
