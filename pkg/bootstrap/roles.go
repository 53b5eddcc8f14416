package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redcore/yabutech-api/pkg/role"
)

// SeedRoleInfo describes one ensured role
type SeedRoleInfo struct {
	ID      int64
	Name    string
	Created bool // true if created, false if already existed
}

// defaultRoles mirror the database seeder the front-end expects:
// Admin first, then User.
var defaultRoles = []role.CreateRoleParams{
	{Name: "Admin", Description: "Administrator role"},
	{Name: "User", Description: "Regular user role"},
}

// SeedRoles ensures the default roles exist, creating any that are missing.
// Existing roles are left untouched.
func SeedRoles(ctx context.Context, repo role.RoleRepository) ([]SeedRoleInfo, error) {
	infos := make([]SeedRoleInfo, 0, len(defaultRoles))

	for _, params := range defaultRoles {
		existing, err := repo.GetRoleByName(ctx, params.Name)
		if err == nil {
			infos = append(infos, SeedRoleInfo{ID: existing.ID, Name: existing.Name})
			continue
		}
		if !errors.Is(err, role.ErrRoleNotFound) {
			return nil, fmt.Errorf("failed to check role %q: %w", params.Name, err)
		}

		created, err := repo.CreateRole(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("failed to seed role %q: %w", params.Name, err)
		}
		slog.Info("Seeded role", "id", created.ID, "name", created.Name)
		infos = append(infos, SeedRoleInfo{ID: created.ID, Name: created.Name, Created: true})
	}

	return infos, nil
}
