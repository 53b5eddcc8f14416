package token

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryTokenRepository implements TokenRepository using in-memory storage
type InMemoryTokenRepository struct {
	mu     sync.RWMutex
	tokens map[uuid.UUID]Token
}

// NewInMemoryTokenRepository creates a new in-memory token repository
func NewInMemoryTokenRepository() *InMemoryTokenRepository {
	return &InMemoryTokenRepository{
		tokens: make(map[uuid.UUID]Token),
	}
}

// CreateToken stores a new token record
func (r *InMemoryTokenRepository) CreateToken(ctx context.Context, arg Token) (Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	arg.CreatedAt = time.Now().UTC()
	r.tokens[arg.ID] = arg
	return arg, nil
}

// GetTokenById retrieves a token record by id
func (r *InMemoryTokenRepository) GetTokenById(ctx context.Context, id uuid.UUID) (Token, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tokens[id]
	if !ok {
		return Token{}, ErrTokenNotFound
	}
	return t, nil
}

// TouchToken records when the token was last presented
func (r *InMemoryTokenRepository) TouchToken(ctx context.Context, id uuid.UUID, usedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tokens[id]
	if !ok {
		return ErrTokenNotFound
	}
	t.LastUsedAt = &usedAt
	r.tokens[id] = t
	return nil
}

// DeleteToken removes a token record
func (r *InMemoryTokenRepository) DeleteToken(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tokens[id]; !ok {
		return ErrTokenNotFound
	}
	delete(r.tokens, id)
	return nil
}

// DeleteTokensByUser removes all token records for a user
func (r *InMemoryTokenRepository) DeleteTokensByUser(ctx context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, t := range r.tokens {
		if t.UserID == userID {
			delete(r.tokens, id)
		}
	}
	return nil
}
