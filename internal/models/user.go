// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a user's permission level in the portal.
type Role string

const (
	// RoleAdmin can manage branding, users, and the Freshbooks connection.
	RoleAdmin Role = "admin"
	// RoleClient is an approved customer with access to their dashboard.
	RoleClient Role = "client"
	// RolePending is a freshly registered account awaiting approval.
	RolePending Role = "pending"
)

// User represents a portal account with authentication and optional 2FA fields.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	TOTPSecret   *string   `json:"-"` // Nullable; set during 2FA setup
	TOTPEnabled  bool      `json:"totpEnabled"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsApproved returns true once an admin has promoted the account out of
// the pending tier.
func (u *User) IsApproved() bool {
	return u.Role == RoleAdmin || u.Role == RoleClient
}
