package auth

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// AuthUser identifies the authenticated caller of a request
type AuthUser struct {
	UserID  int64     `json:"user_id"`
	Email   string    `json:"email"`
	Role    string    `json:"role,omitempty"`
	TokenID uuid.UUID `json:"-"`
}

func (u AuthUser) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("user_id", u.UserID),
		slog.String("email", u.Email),
	)
}

// contextKey is a value for use with context.WithValue. It's used as
// a pointer so it fits in an interface{} without allocation.
type contextKey struct {
	name string
}

func (k *contextKey) String() string {
	return "auth context value " + k.name
}

// AuthUserKey is the context key under which the authenticated user is stored
var AuthUserKey = &contextKey{"AuthUser"}

// NewContext returns a context carrying the authenticated user
func NewContext(ctx context.Context, u AuthUser) context.Context {
	return context.WithValue(ctx, AuthUserKey, u)
}

// FromContext extracts the authenticated user from a request context
func FromContext(ctx context.Context) (AuthUser, bool) {
	u, ok := ctx.Value(AuthUserKey).(AuthUser)
	return u, ok
}
