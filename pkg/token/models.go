package token

import (
	"time"

	"github.com/google/uuid"
)

// Token is a persisted access token record. Only the SHA-256 hex digest of
// the secret is stored; the plaintext form is handed to the client once at
// issuance and never kept.
type Token struct {
	ID         uuid.UUID  `json:"id"`
	UserID     int64      `json:"user_id"`
	Name       string     `json:"name"`
	TokenHash  string     `json:"-"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}
