package role

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations
const uniqueViolation = "23505"

// PostgresRoleRepository implements RoleRepository using PostgreSQL
type PostgresRoleRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRoleRepository creates a new PostgreSQL role repository
func NewPostgresRoleRepository(pool *pgxpool.Pool) *PostgresRoleRepository {
	return &PostgresRoleRepository{
		pool: pool,
	}
}

// FindRoles returns all roles
func (r *PostgresRoleRepository) FindRoles(ctx context.Context) ([]Role, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM roles
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to find roles: %w", err)
	}
	defer rows.Close()

	roles := []Role{}
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// CreateRole inserts a new role. The unique index on name resolves races
// between concurrent creates; the second writer gets ErrRoleNameTaken.
func (r *PostgresRoleRepository) CreateRole(ctx context.Context, arg CreateRoleParams) (Role, error) {
	query := `
		INSERT INTO roles (name, description, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id, name, description, created_at, updated_at
	`

	var role Role
	err := r.pool.QueryRow(ctx, query, arg.Name, arg.Description).
		Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Role{}, ErrRoleNameTaken
		}
		return Role{}, fmt.Errorf("failed to create role: %w", err)
	}
	return role, nil
}

// GetRoleById retrieves a role by id
func (r *PostgresRoleRepository) GetRoleById(ctx context.Context, id int64) (Role, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM roles
		WHERE id = $1
	`

	var role Role
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Role{}, ErrRoleNotFound
		}
		return Role{}, fmt.Errorf("failed to get role: %w", err)
	}
	return role, nil
}

// GetRoleByName retrieves a role by its unique name
func (r *PostgresRoleRepository) GetRoleByName(ctx context.Context, name string) (Role, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM roles
		WHERE name = $1
	`

	var role Role
	err := r.pool.QueryRow(ctx, query, name).
		Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Role{}, ErrRoleNotFound
		}
		return Role{}, fmt.Errorf("failed to get role by name: %w", err)
	}
	return role, nil
}

// UpdateRole updates an existing role
func (r *PostgresRoleRepository) UpdateRole(ctx context.Context, arg UpdateRoleParams) (Role, error) {
	query := `
		UPDATE roles
		SET name = $2, description = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, description, created_at, updated_at
	`

	var role Role
	err := r.pool.QueryRow(ctx, query, arg.ID, arg.Name, arg.Description).
		Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Role{}, ErrRoleNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Role{}, ErrRoleNameTaken
		}
		return Role{}, fmt.Errorf("failed to update role: %w", err)
	}
	return role, nil
}

// DeleteRole removes a role. Users referencing the role are left dangling;
// there is no guard and no cascade.
func (r *PostgresRoleRepository) DeleteRole(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRoleNotFound
	}
	return nil
}
