package role

import (
	"context"
	"sort"
	"sync"
	"time"
)

// InMemoryRoleRepository implements RoleRepository using in-memory storage
type InMemoryRoleRepository struct {
	mu     sync.RWMutex
	roles  map[int64]Role
	nextID int64
}

// NewInMemoryRoleRepository creates a new in-memory role repository
func NewInMemoryRoleRepository() *InMemoryRoleRepository {
	return &InMemoryRoleRepository{
		roles:  make(map[int64]Role),
		nextID: 1,
	}
}

// FindRoles returns all roles ordered by id
func (r *InMemoryRoleRepository) FindRoles(ctx context.Context) ([]Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	roles := make([]Role, 0, len(r.roles))
	for _, role := range r.roles {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].ID < roles[j].ID })
	return roles, nil
}

// CreateRole creates a new role, enforcing name uniqueness like the
// database unique index does
func (r *InMemoryRoleRepository) CreateRole(ctx context.Context, arg CreateRoleParams) (Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.roles {
		if existing.Name == arg.Name {
			return Role{}, ErrRoleNameTaken
		}
	}

	now := time.Now().UTC()
	role := Role{
		ID:          r.nextID,
		Name:        arg.Name,
		Description: arg.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.roles[role.ID] = role
	r.nextID++
	return role, nil
}

// GetRoleById retrieves a role by id
func (r *InMemoryRoleRepository) GetRoleById(ctx context.Context, id int64) (Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	role, ok := r.roles[id]
	if !ok {
		return Role{}, ErrRoleNotFound
	}
	return role, nil
}

// GetRoleByName retrieves a role by name
func (r *InMemoryRoleRepository) GetRoleByName(ctx context.Context, name string) (Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, role := range r.roles {
		if role.Name == name {
			return role, nil
		}
	}
	return Role{}, ErrRoleNotFound
}

// UpdateRole updates an existing role
func (r *InMemoryRoleRepository) UpdateRole(ctx context.Context, arg UpdateRoleParams) (Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	role, ok := r.roles[arg.ID]
	if !ok {
		return Role{}, ErrRoleNotFound
	}

	for _, existing := range r.roles {
		if existing.ID != arg.ID && existing.Name == arg.Name {
			return Role{}, ErrRoleNameTaken
		}
	}

	role.Name = arg.Name
	role.Description = arg.Description
	role.UpdatedAt = time.Now().UTC()
	r.roles[arg.ID] = role
	return role, nil
}

// DeleteRole deletes a role
func (r *InMemoryRoleRepository) DeleteRole(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.roles[id]; !ok {
		return ErrRoleNotFound
	}
	delete(r.roles, id)
	return nil
}

// SeedRole adds a role directly (for testing/initialization)
func (r *InMemoryRoleRepository) SeedRole(role Role) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roles[role.ID] = role
	if role.ID >= r.nextID {
		r.nextID = role.ID + 1
	}
}
