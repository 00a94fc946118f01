package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Permissions administers the permission catalog and the role↔permission
// graph.
type Permissions struct {
	store Store
}

// NewPermissions constructs Permissions.
func NewPermissions(store Store) (*Permissions, error) {
	if store == nil {
		return nil, errors.New("auth: store is required")
	}
	return &Permissions{store: store}, nil
}

// List returns the full permission catalog.
func (s *Permissions) List(ctx context.Context) ([]Permission, error) {
	return s.store.ListPermissions(ctx)
}

// ListRoles returns every role with its granted permissions materialized.
func (s *Permissions) ListRoles(ctx context.Context) ([]Role, error) {
	return s.store.ListRoles(ctx)
}

// ListForRole returns the permissions granted to the named role.
func (s *Permissions) ListForRole(ctx context.Context, roleName string) ([]Permission, error) {
	roleName = strings.TrimSpace(roleName)
	if roleName == "" {
		return nil, Invalid("role name is required")
	}
	role, err := s.store.FindRoleByName(ctx, roleName)
	if err != nil {
		return nil, err
	}
	return role.Permissions, nil
}

// Create adds a permission with a globally unique name.
func (s *Permissions) Create(ctx context.Context, name, description string) (Permission, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Permission{}, Invalid("permission name is required")
	}
	if _, err := s.store.FindPermissionByName(ctx, name); err == nil {
		return Permission{}, AlreadyExists(fmt.Sprintf("permission %s already exists", name))
	} else if KindOf(err) != KindNotFound {
		return Permission{}, err
	}
	return s.store.CreatePermission(ctx, name, strings.TrimSpace(description))
}

// Delete removes a permission from the catalog; grants referencing it are
// dropped with it.
func (s *Permissions) Delete(ctx context.Context, name string) (Permission, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Permission{}, Invalid("permission name is required")
	}
	return s.store.DeletePermission(ctx, name)
}

// Assign grants the permission to the role. Granting an already-granted
// permission is a no-op. Returns the role's updated permission set.
func (s *Permissions) Assign(ctx context.Context, roleName, permissionName string) ([]Permission, error) {
	role, perm, err := s.resolvePair(ctx, roleName, permissionName)
	if err != nil {
		return nil, err
	}
	for _, granted := range role.Permissions {
		if granted.ID == perm.ID {
			return role.Permissions, nil
		}
	}
	if err := s.store.GrantPermission(ctx, role.ID, perm.ID); err != nil {
		return nil, err
	}
	return append(role.Permissions, perm), nil
}

// Revoke removes the permission from the role. Revoking a permission that
// was never granted is a silent no-op. Returns the role's updated set.
func (s *Permissions) Revoke(ctx context.Context, roleName, permissionName string) ([]Permission, error) {
	role, perm, err := s.resolvePair(ctx, roleName, permissionName)
	if err != nil {
		return nil, err
	}
	remaining := role.Permissions[:0:0]
	var granted bool
	for _, p := range role.Permissions {
		if p.ID == perm.ID {
			granted = true
			continue
		}
		remaining = append(remaining, p)
	}
	if !granted {
		return role.Permissions, nil
	}
	if err := s.store.RevokePermission(ctx, role.ID, perm.ID); err != nil {
		return nil, err
	}
	return remaining, nil
}

func (s *Permissions) resolvePair(ctx context.Context, roleName, permissionName string) (Role, Permission, error) {
	roleName = strings.TrimSpace(roleName)
	permissionName = strings.TrimSpace(permissionName)
	if roleName == "" || permissionName == "" {
		return Role{}, Permission{}, Invalid("role and permission names are required")
	}
	role, err := s.store.FindRoleByName(ctx, roleName)
	if err != nil {
		if KindOf(err) == KindNotFound {
			return Role{}, Permission{}, NotFound("role or permission not found")
		}
		return Role{}, Permission{}, err
	}
	perm, err := s.store.FindPermissionByName(ctx, permissionName)
	if err != nil {
		if KindOf(err) == KindNotFound {
			return Role{}, Permission{}, NotFound("role or permission not found")
		}
		return Role{}, Permission{}, err
	}
	return role, perm, nil
}
