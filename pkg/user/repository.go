package user

import (
	"context"
	"errors"
)

var (
	// ErrUserNotFound is returned when a user id or email does not resolve
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when the unique email constraint is violated
	ErrEmailTaken = errors.New("email already taken")
)

// UserRepository defines the interface for user storage operations.
// Reads are always joined with the user's role.
type UserRepository interface {
	FindUsers(ctx context.Context) ([]UserWithRole, error)
	CreateUser(ctx context.Context, arg CreateUserRow) (User, error)
	GetUserById(ctx context.Context, id int64) (UserWithRole, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	UpdateUser(ctx context.Context, arg UpdateUserRow) (User, error)
	DeleteUser(ctx context.Context, id int64) error
}
