package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/redcore/yabutech-api/pkg/role"
)

const uniqueViolation = "23505"

// PostgresUserRepository implements UserRepository using PostgreSQL
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRepository creates a new PostgreSQL user repository
func NewPostgresUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{
		pool: pool,
	}
}

// joinedQuery selects users left-joined with roles so a user whose role was
// deleted still comes back, with a null role.
const joinedQuery = `
	SELECT u.id, u.full_name, u.email, u.password, u.role_id, u.created_at, u.updated_at,
	       r.id, r.name, r.description, r.created_at, r.updated_at
	FROM users u
	LEFT JOIN roles r ON r.id = u.role_id
`

func scanUserWithRole(row pgx.Row) (UserWithRole, error) {
	var u UserWithRole
	var roleID sql.NullInt64
	var roleName, roleDescription sql.NullString
	var roleCreatedAt, roleUpdatedAt sql.NullTime

	err := row.Scan(
		&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.RoleID, &u.CreatedAt, &u.UpdatedAt,
		&roleID, &roleName, &roleDescription, &roleCreatedAt, &roleUpdatedAt,
	)
	if err != nil {
		return UserWithRole{}, err
	}

	if roleID.Valid {
		u.Role = &role.Role{
			ID:          roleID.Int64,
			Name:        roleName.String,
			Description: roleDescription.String,
			CreatedAt:   roleCreatedAt.Time,
			UpdatedAt:   roleUpdatedAt.Time,
		}
	}
	return u, nil
}

// FindUsers returns all users joined with their roles
func (r *PostgresUserRepository) FindUsers(ctx context.Context) ([]UserWithRole, error) {
	rows, err := r.pool.Query(ctx, joinedQuery+` ORDER BY u.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}
	defer rows.Close()

	users := []UserWithRole{}
	for rows.Next() {
		u, err := scanUserWithRole(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// CreateUser inserts a new user. The unique index on email resolves races
// between concurrent creates; the second writer gets ErrEmailTaken.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, arg CreateUserRow) (User, error) {
	query := `
		INSERT INTO users (full_name, email, password, role_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, full_name, email, password, role_id, created_at, updated_at
	`

	var u User
	err := r.pool.QueryRow(ctx, query, arg.FullName, arg.Email, arg.PasswordHash, arg.RoleID).
		Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.RoleID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return User{}, ErrEmailTaken
		}
		return User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

// GetUserById retrieves a user with role by id
func (r *PostgresUserRepository) GetUserById(ctx context.Context, id int64) (UserWithRole, error) {
	u, err := scanUserWithRole(r.pool.QueryRow(ctx, joinedQuery+` WHERE u.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return UserWithRole{}, ErrUserNotFound
		}
		return UserWithRole{}, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// GetUserByEmail retrieves a user by their unique email
func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	query := `
		SELECT id, full_name, email, password, role_id, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var u User
	err := r.pool.QueryRow(ctx, query, email).
		Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.RoleID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

// UpdateUser updates an existing user, always writing the full row. The
// caller passes the stored hash unchanged when no new password was supplied.
func (r *PostgresUserRepository) UpdateUser(ctx context.Context, arg UpdateUserRow) (User, error) {
	query := `
		UPDATE users
		SET full_name = $2, email = $3, password = $4, role_id = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING id, full_name, email, password, role_id, created_at, updated_at
	`

	var u User
	err := r.pool.QueryRow(ctx, query, arg.ID, arg.FullName, arg.Email, arg.PasswordHash, arg.RoleID).
		Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.RoleID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return User{}, ErrEmailTaken
		}
		return User{}, fmt.Errorf("failed to update user: %w", err)
	}
	return u, nil
}

// DeleteUser removes a user
func (r *PostgresUserRepository) DeleteUser(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
