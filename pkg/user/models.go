package user

import (
	"time"

	"github.com/redcore/yabutech-api/pkg/role"
)

// User represents a user in the system. The stored credential hash is never
// serialized.
type User struct {
	ID           int64     `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	RoleID       int64     `json:"role_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserWithRole represents a user joined with their role. Role is nil when
// the referenced role no longer exists (unguarded role deletion).
type UserWithRole struct {
	User
	Role *role.Role `json:"role"`
}

// CreateUserParams contains parameters for creating a new user
type CreateUserParams struct {
	FullName             string `json:"full_name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	RoleID               int64  `json:"role_id"`
}

// UpdateUserParams contains parameters for updating a user. Password and
// PasswordConfirmation are optional; when Password is nil the stored hash is
// retained unchanged.
type UpdateUserParams struct {
	ID                   int64   `json:"id"`
	FullName             string  `json:"full_name"`
	Email                string  `json:"email"`
	Password             *string `json:"password,omitempty"`
	PasswordConfirmation *string `json:"password_confirmation,omitempty"`
	RoleID               int64   `json:"role_id"`
}

// CreateUserRow is the storage-level shape for inserting a user
type CreateUserRow struct {
	FullName     string
	Email        string
	PasswordHash string
	RoleID       int64
}

// UpdateUserRow is the storage-level shape for updating a user
type UpdateUserRow struct {
	ID           int64
	FullName     string
	Email        string
	PasswordHash string
	RoleID       int64
}
