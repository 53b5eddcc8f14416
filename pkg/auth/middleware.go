package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"github.com/redcore/yabutech-api/pkg/token"
	"github.com/redcore/yabutech-api/pkg/user"
)

// Middleware returns a guard that requires a valid bearer token resolving to
// an existing user. Requests without one are rejected with 401 before any
// handler logic runs; on success the AuthUser is stored in the request
// context.
func Middleware(tokens *token.TokenService, users user.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			plaintext, ok := bearerToken(r)
			if !ok {
				unauthenticated(w, r)
				return
			}

			t, err := tokens.Verify(r.Context(), plaintext)
			if err != nil {
				if !errors.Is(err, token.ErrTokenInvalid) && !errors.Is(err, token.ErrTokenExpired) {
					slog.Error("Token verification failed", "err", err)
				}
				unauthenticated(w, r)
				return
			}

			// The token must still resolve to an existing user
			u, err := users.GetUserById(r.Context(), t.UserID)
			if err != nil {
				if !errors.Is(err, user.ErrUserNotFound) {
					slog.Error("Failed to resolve token user", "user_id", t.UserID, "err", err)
				}
				unauthenticated(w, r)
				return
			}

			authUser := AuthUser{
				UserID:  u.ID,
				Email:   u.Email,
				TokenID: t.ID,
			}
			if u.Role != nil {
				authUser.Role = u.Role.Name
			}

			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), authUser)))
		})
	}
}

// bearerToken extracts the credential from an "Authorization: Bearer" header
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return header[len(prefix):], true
}

func unauthenticated(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, map[string]string{"message": "Unauthenticated."})
}
