package auth

import "context"

// Store describes persistence required by the auth subsystem. Implementations
// return fully-materialized aggregates: users carry their role, roles carry
// their permission set. Lookups that miss return a NotFound domain error,
// unique-key collisions return AlreadyExists.
type Store interface {
	CreateUser(ctx context.Context, email, fullName, passwordHash, roleID string) (User, error)
	FindUserByID(ctx context.Context, id string) (User, error)
	FindUserByEmail(ctx context.Context, email string) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
	UpdateUser(ctx context.Context, id string, upd UserUpdate) (User, error)
	SetUserRole(ctx context.Context, userID, roleID string) (User, error)
	DeactivateUser(ctx context.Context, id string) (User, error)

	FindRoleByName(ctx context.Context, name string) (Role, error)
	ListRoles(ctx context.Context) ([]Role, error)

	CreatePermission(ctx context.Context, name, description string) (Permission, error)
	DeletePermission(ctx context.Context, name string) (Permission, error)
	FindPermissionByName(ctx context.Context, name string) (Permission, error)
	ListPermissions(ctx context.Context) ([]Permission, error)

	GrantPermission(ctx context.Context, roleID, permissionID string) error
	RevokePermission(ctx context.Context, roleID, permissionID string) error
}
