package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redcore/yabutech-api/pkg/role"
	"github.com/redcore/yabutech-api/pkg/token"
	"github.com/redcore/yabutech-api/pkg/user"
)

type fixture struct {
	tokens  *token.TokenService
	users   *user.InMemoryUserRepository
	handler http.Handler
	seen    *AuthUser
}

func setup(t *testing.T) *fixture {
	t.Helper()

	roles := role.NewInMemoryRoleRepository()
	roles.SeedRole(role.Role{ID: 1, Name: "Admin", Description: "Administrator role"})
	users := user.NewInMemoryUserRepository(roles)
	tokens := token.NewTokenService(token.NewInMemoryTokenRepository())

	f := &fixture{tokens: tokens, users: users}
	f.handler = Middleware(tokens, users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u, ok := FromContext(r.Context()); ok {
			f.seen = &u
		}
		w.WriteHeader(http.StatusOK)
	}))
	return f
}

func (f *fixture) request(t *testing.T, authorization string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestMiddlewareAllowsValidToken(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.users.CreateUser(ctx, user.CreateUserRow{
		FullName: "Alice", Email: "alice@example.com", PasswordHash: "hash", RoleID: 1,
	})
	require.NoError(t, err)

	plaintext, _, err := f.tokens.Issue(ctx, created.ID, "auth_token")
	require.NoError(t, err)

	rec := f.request(t, "Bearer "+plaintext)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, f.seen)
	assert.Equal(t, created.ID, f.seen.UserID)
	assert.Equal(t, "alice@example.com", f.seen.Email)
	assert.Equal(t, "Admin", f.seen.Role)
}

func TestMiddlewareRejectsMissingHeader(t *testing.T) {
	f := setup(t)

	rec := f.request(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Unauthenticated."}`, rec.Body.String())
	assert.Nil(t, f.seen)
}

func TestMiddlewareRejectsInvalidToken(t *testing.T) {
	f := setup(t)

	rec := f.request(t, "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.request(t, "Basic dXNlcjpwd2Q=")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareRejectsTokenOfDeletedUser(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	created, err := f.users.CreateUser(ctx, user.CreateUserRow{
		FullName: "Bob", Email: "bob@example.com", PasswordHash: "hash", RoleID: 1,
	})
	require.NoError(t, err)

	plaintext, _, err := f.tokens.Issue(ctx, created.ID, "auth_token")
	require.NoError(t, err)

	require.NoError(t, f.users.DeleteUser(ctx, created.ID))

	rec := f.request(t, "Bearer "+plaintext)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
