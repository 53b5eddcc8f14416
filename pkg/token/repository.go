package token

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrTokenNotFound is returned when a token id does not resolve to a record
var ErrTokenNotFound = errors.New("token not found")

// TokenRepository defines the interface for access token storage
type TokenRepository interface {
	CreateToken(ctx context.Context, arg Token) (Token, error)
	GetTokenById(ctx context.Context, id uuid.UUID) (Token, error)
	TouchToken(ctx context.Context, id uuid.UUID, usedAt time.Time) error
	DeleteToken(ctx context.Context, id uuid.UUID) error
	DeleteTokensByUser(ctx context.Context, userID int64) error
}
