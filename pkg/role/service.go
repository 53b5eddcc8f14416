package role

import (
	"context"
	"errors"
	"log/slog"

	apperrors "github.com/redcore/yabutech-api/pkg/errors"
)

// RoleService provides methods for role management
type RoleService struct {
	repo RoleRepository
}

// NewRoleService creates a new role service
func NewRoleService(repo RoleRepository) *RoleService {
	return &RoleService{
		repo: repo,
	}
}

// FindRoles returns all roles
func (s *RoleService) FindRoles(ctx context.Context) ([]Role, error) {
	roles, err := s.repo.FindRoles(ctx)
	if err != nil {
		slog.Error("Failed to find roles", "err", err)
		return nil, apperrors.Internal(err, "failed to fetch roles")
	}
	return roles, nil
}

// CreateRole validates and adds a new role
func (s *RoleService) CreateRole(ctx context.Context, params CreateRoleParams) (Role, error) {
	if err := s.validate(ctx, params.Name, params.Description, 0); err != nil {
		return Role{}, err
	}

	role, err := s.repo.CreateRole(ctx, params)
	if err != nil {
		// Concurrent create with the same name loses to the unique index
		if errors.Is(err, ErrRoleNameTaken) {
			return Role{}, nameTakenError()
		}
		slog.Error("Failed to create role", "name", params.Name, "err", err)
		return Role{}, apperrors.Internal(err, "failed to create role")
	}
	return role, nil
}

// GetRole retrieves a role by id
func (s *RoleService) GetRole(ctx context.Context, id int64) (Role, error) {
	role, err := s.repo.GetRoleById(ctx, id)
	if err != nil {
		if errors.Is(err, ErrRoleNotFound) {
			return Role{}, apperrors.New(apperrors.ErrCodeRoleNotFound, "role not found")
		}
		slog.Error("Failed to get role", "id", id, "err", err)
		return Role{}, apperrors.Internal(err, "failed to get role")
	}
	return role, nil
}

// UpdateRole validates and modifies an existing role. The name uniqueness
// check excludes the record being updated.
func (s *RoleService) UpdateRole(ctx context.Context, params UpdateRoleParams) (Role, error) {
	if _, err := s.repo.GetRoleById(ctx, params.ID); err != nil {
		if errors.Is(err, ErrRoleNotFound) {
			return Role{}, apperrors.New(apperrors.ErrCodeRoleNotFound, "role not found")
		}
		slog.Error("Failed to get role", "id", params.ID, "err", err)
		return Role{}, apperrors.Internal(err, "failed to get role")
	}

	if err := s.validate(ctx, params.Name, params.Description, params.ID); err != nil {
		return Role{}, err
	}

	role, err := s.repo.UpdateRole(ctx, params)
	if err != nil {
		if errors.Is(err, ErrRoleNameTaken) {
			return Role{}, nameTakenError()
		}
		slog.Error("Failed to update role", "id", params.ID, "err", err)
		return Role{}, apperrors.Internal(err, "failed to update role")
	}
	return role, nil
}

// DeleteRole removes a role. Users still referencing the role are not
// checked; they keep the stale role_id and are served with a null role.
func (s *RoleService) DeleteRole(ctx context.Context, id int64) error {
	err := s.repo.DeleteRole(ctx, id)
	if err != nil {
		if errors.Is(err, ErrRoleNotFound) {
			return apperrors.New(apperrors.ErrCodeRoleNotFound, "role not found")
		}
		slog.Error("Failed to delete role", "id", id, "err", err)
		return apperrors.Internal(err, "failed to delete role")
	}
	return nil
}

// validate checks name/description presence and name uniqueness. A non-zero
// excludeID skips the record being updated in the uniqueness check.
func (s *RoleService) validate(ctx context.Context, name, description string, excludeID int64) error {
	v := apperrors.NewValidation()
	if name == "" {
		v.Add("name", "The name field is required.")
	}
	if description == "" {
		v.Add("description", "The description field is required.")
	}

	if name != "" {
		existing, err := s.repo.GetRoleByName(ctx, name)
		if err == nil && existing.ID != excludeID {
			v.Add("name", "The name has already been taken.")
		} else if err != nil && !errors.Is(err, ErrRoleNotFound) {
			slog.Error("Failed checking role name uniqueness", "name", name, "err", err)
			return apperrors.Internal(err, "failed to validate role")
		}
	}

	return v.Err()
}

func nameTakenError() error {
	v := apperrors.NewValidation()
	v.Add("name", "The name has already been taken.")
	return v.Err()
}
