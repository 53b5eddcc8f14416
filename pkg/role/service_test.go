package role

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/redcore/yabutech-api/pkg/errors"
)

func setupService() (*RoleService, *InMemoryRoleRepository) {
	repo := NewInMemoryRoleRepository()
	return NewRoleService(repo), repo
}

func TestCreateRole(t *testing.T) {
	svc, _ := setupService()
	ctx := context.Background()

	created, err := svc.CreateRole(ctx, CreateRoleParams{Name: "Admin", Description: "Administrator role"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Admin", created.Name)
	assert.Equal(t, "Administrator role", created.Description)

	roles, err := svc.FindRoles(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 1)
}

func TestCreateRoleValidation(t *testing.T) {
	svc, _ := setupService()
	ctx := context.Background()

	_, err := svc.CreateRole(ctx, CreateRoleParams{})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidationFailed))

	fields := apperrors.GetFields(err)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "description")
}

func TestCreateRoleDuplicateName(t *testing.T) {
	svc, _ := setupService()
	ctx := context.Background()

	_, err := svc.CreateRole(ctx, CreateRoleParams{Name: "Admin", Description: "Administrator role"})
	require.NoError(t, err)

	_, err = svc.CreateRole(ctx, CreateRoleParams{Name: "Admin", Description: "another"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidationFailed))
	assert.Equal(t, []string{"The name has already been taken."}, apperrors.GetFields(err)["name"])

	roles, err := svc.FindRoles(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 1)
}

func TestUpdateRoleKeepOwnName(t *testing.T) {
	svc, _ := setupService()
	ctx := context.Background()

	created, err := svc.CreateRole(ctx, CreateRoleParams{Name: "User", Description: "Regular user role"})
	require.NoError(t, err)

	// Updating a role with its own name is not a uniqueness violation
	updated, err := svc.UpdateRole(ctx, UpdateRoleParams{ID: created.ID, Name: "User", Description: "updated"})
	require.NoError(t, err)
	assert.Equal(t, "updated", updated.Description)
}

func TestUpdateRoleDuplicateName(t *testing.T) {
	svc, _ := setupService()
	ctx := context.Background()

	_, err := svc.CreateRole(ctx, CreateRoleParams{Name: "Admin", Description: "Administrator role"})
	require.NoError(t, err)
	other, err := svc.CreateRole(ctx, CreateRoleParams{Name: "User", Description: "Regular user role"})
	require.NoError(t, err)

	_, err = svc.UpdateRole(ctx, UpdateRoleParams{ID: other.ID, Name: "Admin", Description: "x"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidationFailed))
}

func TestUpdateRoleNotFound(t *testing.T) {
	svc, _ := setupService()

	_, err := svc.UpdateRole(context.Background(), UpdateRoleParams{ID: 42, Name: "x", Description: "y"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeRoleNotFound))
}

func TestGetRoleNotFound(t *testing.T) {
	svc, _ := setupService()

	_, err := svc.GetRole(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeRoleNotFound))
}

func TestDeleteRole(t *testing.T) {
	svc, _ := setupService()
	ctx := context.Background()

	created, err := svc.CreateRole(ctx, CreateRoleParams{Name: "Temp", Description: "temp"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRole(ctx, created.ID))

	_, err = svc.GetRole(ctx, created.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeRoleNotFound))

	err = svc.DeleteRole(ctx, created.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeRoleNotFound))
}
