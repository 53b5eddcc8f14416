package login

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/redcore/yabutech-api/pkg/errors"
	"github.com/redcore/yabutech-api/pkg/role"
	"github.com/redcore/yabutech-api/pkg/token"
	"github.com/redcore/yabutech-api/pkg/user"
)

type testEnv struct {
	loginService *LoginService
	userService  *user.UserService
	users        *user.InMemoryUserRepository
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	roles := role.NewInMemoryRoleRepository()
	roles.SeedRole(role.Role{ID: 1, Name: "Admin", Description: "Administrator role"})
	roles.SeedRole(role.Role{ID: 2, Name: "User", Description: "Regular user role"})

	users := user.NewInMemoryUserRepository(roles)
	hasher := &BcryptHasher{}
	userService := user.NewUserService(users, roles, hasher)
	tokens := token.NewTokenService(token.NewInMemoryTokenRepository())

	return &testEnv{
		loginService: NewLoginService(users, userService, tokens, hasher),
		userService:  userService,
		users:        users,
	}
}

func registerParams() user.CreateUserParams {
	return user.CreateUserParams{
		FullName:             "A",
		Email:                "a@x.com",
		Password:             "password1",
		PasswordConfirmation: "password1",
		RoleID:               2,
	}
}

func TestRegisterNeverStoresPlaintext(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	result, err := env.loginService.Register(ctx, registerParams())
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	require.NotNil(t, result.User.Role)
	assert.Equal(t, "User", result.User.Role.Name)

	stored, err := env.users.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "password1", stored.PasswordHash)

	// The same plaintext logs in afterwards
	login, err := env.loginService.Login(ctx, LoginParams{Email: "a@x.com", Password: "password1"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, "a@x.com", login.User.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	_, err := env.loginService.Register(ctx, registerParams())
	require.NoError(t, err)

	_, err = env.loginService.Register(ctx, registerParams())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidationFailed))

	users, err := env.users.FindUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestLoginFailureMessageDoesNotEnumerate(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	_, err := env.loginService.Register(ctx, registerParams())
	require.NoError(t, err)

	_, unknownErr := env.loginService.Login(ctx, LoginParams{Email: "nobody@x.com", Password: "password1"})
	require.Error(t, unknownErr)
	_, wrongErr := env.loginService.Login(ctx, LoginParams{Email: "a@x.com", Password: "wrongpass1"})
	require.Error(t, wrongErr)

	var unknown, wrong *apperrors.Error
	require.ErrorAs(t, unknownErr, &unknown)
	require.ErrorAs(t, wrongErr, &wrong)
	assert.Equal(t, "The provided credentials are incorrect.", unknown.Message)
	assert.Equal(t, unknown.Message, wrong.Message)
	assert.Equal(t, unknown.Code, wrong.Code)
}

func TestLoginValidation(t *testing.T) {
	env := setupEnv(t)

	_, err := env.loginService.Login(context.Background(), LoginParams{})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidationFailed))
}

func TestUpdateWithoutPasswordKeepsHash(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	result, err := env.loginService.Register(ctx, registerParams())
	require.NoError(t, err)
	before, err := env.users.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)

	_, err = env.userService.UpdateUser(ctx, user.UpdateUserParams{
		ID:       result.User.ID,
		FullName: "A Updated",
		Email:    "a@x.com",
		RoleID:   2,
	})
	require.NoError(t, err)

	after, err := env.users.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)

	_, err = env.loginService.Login(ctx, LoginParams{Email: "a@x.com", Password: "password1"})
	assert.NoError(t, err)
}

func TestUpdateWithPasswordRehashes(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	result, err := env.loginService.Register(ctx, registerParams())
	require.NoError(t, err)

	newPassword := "newpassword1"
	_, err = env.userService.UpdateUser(ctx, user.UpdateUserParams{
		ID:                   result.User.ID,
		FullName:             "A",
		Email:                "a@x.com",
		Password:             &newPassword,
		PasswordConfirmation: &newPassword,
		RoleID:               2,
	})
	require.NoError(t, err)

	// Old plaintext is invalidated, new one works
	_, err = env.loginService.Login(ctx, LoginParams{Email: "a@x.com", Password: "password1"})
	require.Error(t, err)
	_, err = env.loginService.Login(ctx, LoginParams{Email: "a@x.com", Password: "newpassword1"})
	assert.NoError(t, err)
}

func TestLogoutRevokesTokens(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	result, err := env.loginService.Register(ctx, registerParams())
	require.NoError(t, err)

	require.NoError(t, env.loginService.Logout(ctx, result.User.ID))

	again, err := env.loginService.Login(ctx, LoginParams{Email: "a@x.com", Password: "password1"})
	require.NoError(t, err)
	assert.NotEqual(t, result.Token, again.Token)
}
