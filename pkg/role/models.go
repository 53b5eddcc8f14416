package role

import "time"

// Role represents a named permission category assigned to users
type Role struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateRoleParams contains parameters for creating a new role
type CreateRoleParams struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateRoleParams contains parameters for updating a role
type UpdateRoleParams struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
