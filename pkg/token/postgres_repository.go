package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresTokenRepository implements TokenRepository using PostgreSQL
type PostgresTokenRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresTokenRepository creates a new PostgreSQL token repository
func NewPostgresTokenRepository(pool *pgxpool.Pool) *PostgresTokenRepository {
	return &PostgresTokenRepository{
		pool: pool,
	}
}

// CreateToken persists a new access token record
func (r *PostgresTokenRepository) CreateToken(ctx context.Context, arg Token) (Token, error) {
	query := `
		INSERT INTO personal_access_tokens (id, user_id, name, token_hash, created_at, expires_at)
		VALUES ($1, $2, $3, $4, NOW(), $5)
		RETURNING id, user_id, name, token_hash, created_at, last_used_at, expires_at
	`

	var t Token
	err := r.pool.QueryRow(ctx, query, arg.ID, arg.UserID, arg.Name, arg.TokenHash, arg.ExpiresAt).
		Scan(&t.ID, &t.UserID, &t.Name, &t.TokenHash, &t.CreatedAt, &t.LastUsedAt, &t.ExpiresAt)
	if err != nil {
		return Token{}, fmt.Errorf("failed to create token: %w", err)
	}
	return t, nil
}

// GetTokenById retrieves a token record by id
func (r *PostgresTokenRepository) GetTokenById(ctx context.Context, id uuid.UUID) (Token, error) {
	query := `
		SELECT id, user_id, name, token_hash, created_at, last_used_at, expires_at
		FROM personal_access_tokens
		WHERE id = $1
	`

	var t Token
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&t.ID, &t.UserID, &t.Name, &t.TokenHash, &t.CreatedAt, &t.LastUsedAt, &t.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Token{}, ErrTokenNotFound
		}
		return Token{}, fmt.Errorf("failed to get token: %w", err)
	}
	return t, nil
}

// TouchToken records when the token was last presented
func (r *PostgresTokenRepository) TouchToken(ctx context.Context, id uuid.UUID, usedAt time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE personal_access_tokens SET last_used_at = $2 WHERE id = $1`, id, usedAt)
	if err != nil {
		return fmt.Errorf("failed to touch token: %w", err)
	}
	return nil
}

// DeleteToken removes a token record
func (r *PostgresTokenRepository) DeleteToken(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM personal_access_tokens WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTokenNotFound
	}
	return nil
}

// DeleteTokensByUser removes all token records for a user
func (r *PostgresTokenRepository) DeleteTokensByUser(ctx context.Context, userID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM personal_access_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete tokens for user: %w", err)
	}
	return nil
}
