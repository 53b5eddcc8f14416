package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redcore/yabutech-api/pkg/role"
)

func setupRouter() (*chi.Mux, *role.InMemoryRoleRepository) {
	repo := role.NewInMemoryRoleRepository()
	handle := NewHandle(role.NewRoleService(repo))

	r := chi.NewRouter()
	handle.RegisterPublicRoutes(r)
	handle.RegisterRoutes(r)
	return r, repo
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestListRoles(t *testing.T) {
	r, repo := setupRouter()
	repo.SeedRole(role.Role{ID: 1, Name: "Admin", Description: "Administrator role"})
	repo.SeedRole(role.Role{ID: 2, Name: "User", Description: "Regular user role"})

	rec := doJSON(t, r, http.MethodGet, "/roles", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var roles []role.Role
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &roles))
	require.Len(t, roles, 2)
	assert.Equal(t, "Admin", roles[0].Name)
}

func TestCreateRole(t *testing.T) {
	r, _ := setupRouter()

	rec := doJSON(t, r, http.MethodPost, "/roles", map[string]string{
		"name":        "Support",
		"description": "Support staff",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created role.Role
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Support", created.Name)
}

func TestCreateRoleValidationError(t *testing.T) {
	r, _ := setupRouter()

	rec := doJSON(t, r, http.MethodPost, "/roles", map[string]string{"name": ""})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "The name field is required.", body.Message)
	assert.Contains(t, body.Errors, "name")
	assert.Contains(t, body.Errors, "description")
}

func TestGetRoleNotFound(t *testing.T) {
	r, _ := setupRouter()

	rec := doJSON(t, r, http.MethodGet, "/roles/99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Non-numeric ids behave like missing records
	rec = doJSON(t, r, http.MethodGet, "/roles/abc", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateRole(t *testing.T) {
	r, repo := setupRouter()
	repo.SeedRole(role.Role{ID: 1, Name: "Admin", Description: "Administrator role"})

	rec := doJSON(t, r, http.MethodPut, "/roles/1", map[string]string{
		"name":        "Admin",
		"description": "Full access",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated role.Role
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Full access", updated.Description)
}

func TestDeleteRole(t *testing.T) {
	r, repo := setupRouter()
	repo.SeedRole(role.Role{ID: 1, Name: "Temp", Description: "temp"})

	rec := doJSON(t, r, http.MethodDelete, "/roles/1", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/roles/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
