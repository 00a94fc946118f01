package httpapi

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"skladr.dev/internal/auth"
)

// memStore is an in-memory auth.Store for wiring full request flows
// without Postgres.
type memStore struct {
	mu     sync.Mutex
	seq    int
	users  map[string]auth.User       // by id
	roles  map[string]auth.Role       // by name
	perms  map[string]auth.Permission // by name
	grants map[string]map[string]bool // roleID -> permissionID set
}

func newMemStore() *memStore {
	return &memStore{
		users:  make(map[string]auth.User),
		roles:  make(map[string]auth.Role),
		perms:  make(map[string]auth.Permission),
		grants: make(map[string]map[string]bool),
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *memStore) addRole(name string, permNames ...string) auth.Role {
	m.mu.Lock()
	defer m.mu.Unlock()
	role := auth.Role{ID: m.nextID("role"), Name: name}
	m.grants[role.ID] = make(map[string]bool)
	for _, pn := range permNames {
		p, ok := m.perms[pn]
		if !ok {
			p = auth.Permission{ID: m.nextID("perm"), Name: pn, CreatedAt: time.Now()}
			m.perms[pn] = p
		}
		m.grants[role.ID][p.ID] = true
	}
	m.roles[name] = role
	return role
}

func (m *memStore) materialize(role auth.Role) auth.Role {
	var perms []auth.Permission
	for _, p := range m.perms {
		if m.grants[role.ID][p.ID] {
			perms = append(perms, p)
		}
	}
	sort.Slice(perms, func(i, j int) bool { return perms[i].Name < perms[j].Name })
	role.Permissions = perms
	return role
}

func (m *memStore) roleByID(id string) (auth.Role, bool) {
	for _, role := range m.roles {
		if role.ID == id {
			return role, true
		}
	}
	return auth.Role{}, false
}

func (m *memStore) CreateUser(ctx context.Context, email, fullName, passwordHash, roleID string) (auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return auth.User{}, auth.AlreadyExists("user with this email already exists")
		}
	}
	role, ok := m.roleByID(roleID)
	if !ok {
		return auth.User{}, auth.NotFound("role not found")
	}
	now := time.Now()
	u := auth.User{
		ID: m.nextID("user"), Email: email, FullName: fullName,
		PasswordHash: passwordHash, Active: true,
		Role: m.materialize(role), CreatedAt: now, UpdatedAt: now,
	}
	m.users[u.ID] = u
	return u, nil
}

func (m *memStore) FindUserByID(ctx context.Context, id string) (auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return auth.User{}, auth.NotFound("user not found")
	}
	return u, nil
}

func (m *memStore) FindUserByEmail(ctx context.Context, email string) (auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return auth.User{}, auth.NotFound("user not found")
}

func (m *memStore) ListUsers(ctx context.Context) ([]auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]auth.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *memStore) UpdateUser(ctx context.Context, id string, upd auth.UserUpdate) (auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return auth.User{}, auth.NotFound("user not found")
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.FullName != nil {
		u.FullName = *upd.FullName
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	u.UpdatedAt = time.Now()
	m.users[id] = u
	return u, nil
}

func (m *memStore) SetUserRole(ctx context.Context, userID, roleID string) (auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return auth.User{}, auth.NotFound("user not found")
	}
	role, ok := m.roleByID(roleID)
	if !ok {
		return auth.User{}, auth.NotFound("role not found")
	}
	u.Role = m.materialize(role)
	m.users[userID] = u
	return u, nil
}

func (m *memStore) DeactivateUser(ctx context.Context, id string) (auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return auth.User{}, auth.NotFound("user not found")
	}
	u.Active = false
	m.users[id] = u
	return u, nil
}

func (m *memStore) FindRoleByName(ctx context.Context, name string) (auth.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	role, ok := m.roles[name]
	if !ok {
		return auth.Role{}, auth.NotFound("role not found")
	}
	return m.materialize(role), nil
}

func (m *memStore) ListRoles(ctx context.Context) ([]auth.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	roles := make([]auth.Role, 0, len(m.roles))
	for _, role := range m.roles {
		roles = append(roles, m.materialize(role))
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].Name < roles[j].Name })
	return roles, nil
}

func (m *memStore) CreatePermission(ctx context.Context, name, description string) (auth.Permission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.perms[name]; ok {
		return auth.Permission{}, auth.AlreadyExists("permission with this name already exists")
	}
	p := auth.Permission{ID: m.nextID("perm"), Name: name, Description: description, CreatedAt: time.Now()}
	m.perms[name] = p
	return p, nil
}

func (m *memStore) DeletePermission(ctx context.Context, name string) (auth.Permission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.perms[name]
	if !ok {
		return auth.Permission{}, auth.NotFound("permission not found")
	}
	delete(m.perms, name)
	for _, set := range m.grants {
		delete(set, p.ID)
	}
	return p, nil
}

func (m *memStore) FindPermissionByName(ctx context.Context, name string) (auth.Permission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.perms[name]
	if !ok {
		return auth.Permission{}, auth.NotFound("permission not found")
	}
	return p, nil
}

func (m *memStore) ListPermissions(ctx context.Context) ([]auth.Permission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	perms := make([]auth.Permission, 0, len(m.perms))
	for _, p := range m.perms {
		perms = append(perms, p)
	}
	sort.Slice(perms, func(i, j int) bool { return perms[i].Name < perms[j].Name })
	return perms, nil
}

func (m *memStore) GrantPermission(ctx context.Context, roleID, permissionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.grants[roleID]
	if !ok {
		return auth.NotFound("role or permission not found")
	}
	set[permissionID] = true
	return nil
}

func (m *memStore) RevokePermission(ctx context.Context, roleID, permissionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if set, ok := m.grants[roleID]; ok {
		delete(set, permissionID)
	}
	return nil
}

var _ auth.Store = (*memStore)(nil)
