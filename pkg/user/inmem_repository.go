package user

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/redcore/yabutech-api/pkg/role"
)

// InMemoryUserRepository implements UserRepository using in-memory storage.
// It joins against an in-memory role repository the same way the SQL
// repository left-joins the roles table.
type InMemoryUserRepository struct {
	mu     sync.RWMutex
	users  map[int64]User
	roles  *role.InMemoryRoleRepository
	nextID int64
}

// NewInMemoryUserRepository creates a new in-memory user repository joined
// with the given role repository
func NewInMemoryUserRepository(roles *role.InMemoryRoleRepository) *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users:  make(map[int64]User),
		roles:  roles,
		nextID: 1,
	}
}

func (r *InMemoryUserRepository) withRole(ctx context.Context, u User) UserWithRole {
	joined := UserWithRole{User: u}
	if rec, err := r.roles.GetRoleById(ctx, u.RoleID); err == nil {
		joined.Role = &rec
	}
	return joined
}

// FindUsers returns all users joined with their roles, ordered by id
func (r *InMemoryUserRepository) FindUsers(ctx context.Context) ([]UserWithRole, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]UserWithRole, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, r.withRole(ctx, u))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// CreateUser creates a new user, enforcing email uniqueness like the
// database unique index does
func (r *InMemoryUserRepository) CreateUser(ctx context.Context, arg CreateUserRow) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == arg.Email {
			return User{}, ErrEmailTaken
		}
	}

	now := time.Now().UTC()
	u := User{
		ID:           r.nextID,
		FullName:     arg.FullName,
		Email:        arg.Email,
		PasswordHash: arg.PasswordHash,
		RoleID:       arg.RoleID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.users[u.ID] = u
	r.nextID++
	return u, nil
}

// GetUserById retrieves a user with role by id
func (r *InMemoryUserRepository) GetUserById(ctx context.Context, id int64) (UserWithRole, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return UserWithRole{}, ErrUserNotFound
	}
	return r.withRole(ctx, u), nil
}

// GetUserByEmail retrieves a user by email
func (r *InMemoryUserRepository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

// UpdateUser updates an existing user
func (r *InMemoryUserRepository) UpdateUser(ctx context.Context, arg UpdateUserRow) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[arg.ID]
	if !ok {
		return User{}, ErrUserNotFound
	}

	for _, existing := range r.users {
		if existing.ID != arg.ID && existing.Email == arg.Email {
			return User{}, ErrEmailTaken
		}
	}

	u.FullName = arg.FullName
	u.Email = arg.Email
	u.PasswordHash = arg.PasswordHash
	u.RoleID = arg.RoleID
	u.UpdatedAt = time.Now().UTC()
	r.users[arg.ID] = u
	return u, nil
}

// DeleteUser deletes a user
func (r *InMemoryUserRepository) DeleteUser(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}
