package role

import (
	"context"
	"errors"
)

var (
	// ErrRoleNotFound is returned when a role id does not resolve to a record
	ErrRoleNotFound = errors.New("role not found")
	// ErrRoleNameTaken is returned when the unique name constraint is violated
	ErrRoleNameTaken = errors.New("role name already taken")
)

// RoleRepository defines the interface for role storage operations
type RoleRepository interface {
	FindRoles(ctx context.Context) ([]Role, error)
	CreateRole(ctx context.Context, arg CreateRoleParams) (Role, error)
	GetRoleById(ctx context.Context, id int64) (Role, error)
	GetRoleByName(ctx context.Context, name string) (Role, error)
	UpdateRole(ctx context.Context, arg UpdateRoleParams) (Role, error)
	DeleteRole(ctx context.Context, id int64) error
}
