package token

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/redcore/yabutech-api/pkg/utils"
)

const secretLength = 40

var (
	// ErrTokenInvalid is returned for malformed, unknown or mismatched tokens
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenExpired is returned when a token's expiry window has passed
	ErrTokenExpired = errors.New("token expired")
)

// TokenService issues and verifies opaque bearer tokens. The plaintext form
// is "<record-id>|<secret>"; lookup goes by record id and the secret is
// compared in constant time against the stored digest.
type TokenService struct {
	repo   TokenRepository
	expiry time.Duration
}

// Option configures a TokenService
type Option func(*TokenService)

// WithExpiry sets the validity window for issued tokens. Zero (the default)
// means tokens never expire.
func WithExpiry(d time.Duration) Option {
	return func(s *TokenService) {
		s.expiry = d
	}
}

// NewTokenService creates a new token service
func NewTokenService(repo TokenRepository, opts ...Option) *TokenService {
	s := &TokenService{
		repo: repo,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue creates a token bound to the given user and returns its plaintext
// form along with the persisted record
func (s *TokenService) Issue(ctx context.Context, userID int64, name string) (string, Token, error) {
	secret := utils.GenerateRandomString(secretLength)

	t := Token{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		TokenHash: hashSecret(secret),
	}
	if s.expiry > 0 {
		expiresAt := time.Now().UTC().Add(s.expiry)
		t.ExpiresAt = &expiresAt
	}

	created, err := s.repo.CreateToken(ctx, t)
	if err != nil {
		slog.Error("Failed to store token", "user_id", userID, "err", err)
		return "", Token{}, err
	}

	return created.ID.String() + "|" + secret, created, nil
}

// Verify resolves a plaintext token to its record. It fails with
// ErrTokenInvalid for malformed or unknown tokens and secret mismatches, and
// with ErrTokenExpired past the configured window. Successful verification
// records the use time.
func (s *TokenService) Verify(ctx context.Context, plaintext string) (Token, error) {
	idPart, secret, found := strings.Cut(plaintext, "|")
	if !found {
		return Token{}, ErrTokenInvalid
	}

	id, err := uuid.Parse(idPart)
	if err != nil {
		return Token{}, ErrTokenInvalid
	}

	t, err := s.repo.GetTokenById(ctx, id)
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return Token{}, ErrTokenInvalid
		}
		slog.Error("Failed to look up token", "token_id", id, "err", err)
		return Token{}, err
	}

	if subtle.ConstantTimeCompare([]byte(hashSecret(secret)), []byte(t.TokenHash)) != 1 {
		return Token{}, ErrTokenInvalid
	}

	if t.ExpiresAt != nil && time.Now().UTC().After(*t.ExpiresAt) {
		return Token{}, ErrTokenExpired
	}

	now := time.Now().UTC()
	if err := s.repo.TouchToken(ctx, t.ID, now); err != nil {
		slog.Warn("Failed to record token use", "token_id", t.ID, "err", err)
	}
	t.LastUsedAt = &now

	return t, nil
}

// Revoke deletes a single token
func (s *TokenService) Revoke(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteToken(ctx, id)
}

// RevokeAll deletes every token bound to a user
func (s *TokenService) RevokeAll(ctx context.Context, userID int64) error {
	return s.repo.DeleteTokensByUser(ctx, userID)
}

func hashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
