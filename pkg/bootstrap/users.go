package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redcore/yabutech-api/pkg/role"
	"github.com/redcore/yabutech-api/pkg/user"
)

const (
	adminFullName = "Test Admin"
	adminEmail    = "test@example.com"
	adminPassword = "password"
)

// SeedUserInfo describes the ensured admin account
type SeedUserInfo struct {
	ID      int64
	Email   string
	Created bool // true if created, false if already existed
}

// SeedAdminUser ensures the initial admin account exists, creating it with
// the Admin role when missing. Idempotent on email; an existing account is
// left untouched. Call after SeedRoles.
func SeedAdminUser(ctx context.Context, users user.UserRepository, roles role.RoleRepository, hasher user.PasswordHasher) (SeedUserInfo, error) {
	existing, err := users.GetUserByEmail(ctx, adminEmail)
	if err == nil {
		return SeedUserInfo{ID: existing.ID, Email: existing.Email}, nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return SeedUserInfo{}, fmt.Errorf("failed to check admin user: %w", err)
	}

	adminRole, err := roles.GetRoleByName(ctx, "Admin")
	if err != nil {
		return SeedUserInfo{}, fmt.Errorf("failed to resolve admin role: %w", err)
	}

	hash, err := hasher.Hash(adminPassword)
	if err != nil {
		return SeedUserInfo{}, fmt.Errorf("failed to hash admin password: %w", err)
	}

	created, err := users.CreateUser(ctx, user.CreateUserRow{
		FullName:     adminFullName,
		Email:        adminEmail,
		PasswordHash: hash,
		RoleID:       adminRole.ID,
	})
	if err != nil {
		return SeedUserInfo{}, fmt.Errorf("failed to seed admin user: %w", err)
	}
	slog.Info("Seeded admin user", "id", created.ID, "email", created.Email)

	return SeedUserInfo{ID: created.ID, Email: created.Email, Created: true}, nil
}
