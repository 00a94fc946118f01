package auth

import "context"

// stubStore implements Store through optional function fields; unset fields
// report NotFound or succeed with zero values.
type stubStore struct {
	createUserFn       func(ctx context.Context, email, fullName, passwordHash, roleID string) (User, error)
	findUserByIDFn     func(ctx context.Context, id string) (User, error)
	findUserByEmailFn  func(ctx context.Context, email string) (User, error)
	listUsersFn        func(ctx context.Context) ([]User, error)
	updateUserFn       func(ctx context.Context, id string, upd UserUpdate) (User, error)
	setUserRoleFn      func(ctx context.Context, userID, roleID string) (User, error)
	deactivateUserFn   func(ctx context.Context, id string) (User, error)
	findRoleByNameFn   func(ctx context.Context, name string) (Role, error)
	listRolesFn        func(ctx context.Context) ([]Role, error)
	createPermFn       func(ctx context.Context, name, description string) (Permission, error)
	deletePermFn       func(ctx context.Context, name string) (Permission, error)
	findPermByNameFn   func(ctx context.Context, name string) (Permission, error)
	listPermsFn        func(ctx context.Context) ([]Permission, error)
	grantPermissionFn  func(ctx context.Context, roleID, permissionID string) error
	revokePermissionFn func(ctx context.Context, roleID, permissionID string) error
}

func (s *stubStore) CreateUser(ctx context.Context, email, fullName, passwordHash, roleID string) (User, error) {
	if s.createUserFn != nil {
		return s.createUserFn(ctx, email, fullName, passwordHash, roleID)
	}
	return User{}, nil
}

func (s *stubStore) FindUserByID(ctx context.Context, id string) (User, error) {
	if s.findUserByIDFn != nil {
		return s.findUserByIDFn(ctx, id)
	}
	return User{}, NotFound("user not found")
}

func (s *stubStore) FindUserByEmail(ctx context.Context, email string) (User, error) {
	if s.findUserByEmailFn != nil {
		return s.findUserByEmailFn(ctx, email)
	}
	return User{}, NotFound("user not found")
}

func (s *stubStore) ListUsers(ctx context.Context) ([]User, error) {
	if s.listUsersFn != nil {
		return s.listUsersFn(ctx)
	}
	return nil, nil
}

func (s *stubStore) UpdateUser(ctx context.Context, id string, upd UserUpdate) (User, error) {
	if s.updateUserFn != nil {
		return s.updateUserFn(ctx, id, upd)
	}
	return User{}, nil
}

func (s *stubStore) SetUserRole(ctx context.Context, userID, roleID string) (User, error) {
	if s.setUserRoleFn != nil {
		return s.setUserRoleFn(ctx, userID, roleID)
	}
	return User{}, nil
}

func (s *stubStore) DeactivateUser(ctx context.Context, id string) (User, error) {
	if s.deactivateUserFn != nil {
		return s.deactivateUserFn(ctx, id)
	}
	return User{}, nil
}

func (s *stubStore) FindRoleByName(ctx context.Context, name string) (Role, error) {
	if s.findRoleByNameFn != nil {
		return s.findRoleByNameFn(ctx, name)
	}
	return Role{}, NotFound("role not found")
}

func (s *stubStore) ListRoles(ctx context.Context) ([]Role, error) {
	if s.listRolesFn != nil {
		return s.listRolesFn(ctx)
	}
	return nil, nil
}

func (s *stubStore) CreatePermission(ctx context.Context, name, description string) (Permission, error) {
	if s.createPermFn != nil {
		return s.createPermFn(ctx, name, description)
	}
	return Permission{}, nil
}

func (s *stubStore) DeletePermission(ctx context.Context, name string) (Permission, error) {
	if s.deletePermFn != nil {
		return s.deletePermFn(ctx, name)
	}
	return Permission{}, NotFound("permission not found")
}

func (s *stubStore) FindPermissionByName(ctx context.Context, name string) (Permission, error) {
	if s.findPermByNameFn != nil {
		return s.findPermByNameFn(ctx, name)
	}
	return Permission{}, NotFound("permission not found")
}

func (s *stubStore) ListPermissions(ctx context.Context) ([]Permission, error) {
	if s.listPermsFn != nil {
		return s.listPermsFn(ctx)
	}
	return nil, nil
}

func (s *stubStore) GrantPermission(ctx context.Context, roleID, permissionID string) error {
	if s.grantPermissionFn != nil {
		return s.grantPermissionFn(ctx, roleID, permissionID)
	}
	return nil
}

func (s *stubStore) RevokePermission(ctx context.Context, roleID, permissionID string) error {
	if s.revokePermissionFn != nil {
		return s.revokePermissionFn(ctx, roleID, permissionID)
	}
	return nil
}

var _ Store = (*stubStore)(nil)
