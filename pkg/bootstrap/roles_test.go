package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redcore/yabutech-api/pkg/login"
	"github.com/redcore/yabutech-api/pkg/role"
	"github.com/redcore/yabutech-api/pkg/user"
)

func TestSeedRoles(t *testing.T) {
	repo := role.NewInMemoryRoleRepository()
	ctx := context.Background()

	infos, err := SeedRoles(ctx, repo)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "Admin", infos[0].Name)
	assert.True(t, infos[0].Created)
	assert.Equal(t, "User", infos[1].Name)

	// Seeding again finds the existing roles instead of duplicating them
	again, err := SeedRoles(ctx, repo)
	require.NoError(t, err)
	require.Len(t, again, 2)
	assert.False(t, again[0].Created)
	assert.Equal(t, infos[0].ID, again[0].ID)

	roles, err := repo.FindRoles(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 2)
}

func TestSeedAdminUser(t *testing.T) {
	roles := role.NewInMemoryRoleRepository()
	users := user.NewInMemoryUserRepository(roles)
	hasher := &login.BcryptHasher{}
	ctx := context.Background()

	_, err := SeedRoles(ctx, roles)
	require.NoError(t, err)

	info, err := SeedAdminUser(ctx, users, roles, hasher)
	require.NoError(t, err)
	assert.True(t, info.Created)
	assert.Equal(t, "test@example.com", info.Email)

	seeded, err := users.GetUserByEmail(ctx, "test@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "password", seeded.PasswordHash)

	match, err := hasher.Verify("password", seeded.PasswordHash)
	require.NoError(t, err)
	assert.True(t, match)

	joined, err := users.GetUserById(ctx, seeded.ID)
	require.NoError(t, err)
	require.NotNil(t, joined.Role)
	assert.Equal(t, "Admin", joined.Role.Name)

	// Seeding again finds the existing account instead of duplicating it
	again, err := SeedAdminUser(ctx, users, roles, hasher)
	require.NoError(t, err)
	assert.False(t, again.Created)
	assert.Equal(t, info.ID, again.ID)
}
