package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"skladr.dev/internal/auth"
	"skladr.dev/internal/ids"
)

const userColumns = `u.id, u.email, u.full_name, u.password_hash, u.is_active, u.created_at, u.updated_at,
       r.id, r.name, r.description`

func (s *Store) CreateUser(ctx context.Context, email, fullName, passwordHash, roleID string) (auth.User, error) {
	id := ids.New()
	_, err := s.db.ExecContext(ctx, `
		insert into users (id, email, full_name, password_hash, is_active, role_id)
		values ($1, $2, $3, $4, true, $5)`,
		id, email, fullName, passwordHash, roleID)
	if err != nil {
		if pgErr, ok := maybePgError(err); ok {
			switch pgErr.Code {
			case pgErrUniqueViolation:
				return auth.User{}, auth.AlreadyExists("user with this email already exists")
			case pgErrForeignKeyViolation:
				return auth.User{}, auth.NotFound("role not found")
			}
		}
		return auth.User{}, fmt.Errorf("create user: %w", err)
	}
	return s.FindUserByID(ctx, id)
}

func (s *Store) FindUserByID(ctx context.Context, id string) (auth.User, error) {
	row := s.db.QueryRowContext(ctx, `
		select `+userColumns+`
		from users u
		join roles r on r.id = u.role_id
		where u.id = $1`, id)
	return s.scanUser(ctx, row)
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (auth.User, error) {
	row := s.db.QueryRowContext(ctx, `
		select `+userColumns+`
		from users u
		join roles r on r.id = u.role_id
		where u.email = $1`, email)
	return s.scanUser(ctx, row)
}

func (s *Store) scanUser(ctx context.Context, row *sql.Row) (auth.User, error) {
	var u auth.User
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &u.Active, &u.CreatedAt, &u.UpdatedAt,
		&u.Role.ID, &u.Role.Name, &u.Role.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.User{}, auth.NotFound("user not found")
	}
	if err != nil {
		return auth.User{}, fmt.Errorf("scan user: %w", err)
	}
	perms, err := s.rolePermissions(ctx, u.Role.ID)
	if err != nil {
		return auth.User{}, err
	}
	u.Role.Permissions = perms
	return u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]auth.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		select `+userColumns+`
		from users u
		join roles r on r.id = u.role_id
		order by u.created_at, u.id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]auth.User, 0)
	for rows.Next() {
		var u auth.User
		if err := rows.Scan(&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &u.Active, &u.CreatedAt, &u.UpdatedAt,
			&u.Role.ID, &u.Role.Name, &u.Role.Description); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	byRole, err := s.allRolePermissions(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Role.Permissions = byRole[users[i].Role.ID]
	}
	return users, nil
}

func (s *Store) UpdateUser(ctx context.Context, id string, upd auth.UserUpdate) (auth.User, error) {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 4)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if upd.Email != nil {
		add("email", *upd.Email)
	}
	if upd.FullName != nil {
		add("full_name", *upd.FullName)
	}
	if upd.PasswordHash != nil {
		add("password_hash", *upd.PasswordHash)
	}
	if len(sets) == 0 {
		return s.FindUserByID(ctx, id)
	}
	sets = append(sets, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf("update users set %s where id = $%d", strings.Join(sets, ", "), len(args))
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		if pgErr, ok := maybePgError(err); ok && pgErr.Code == pgErrUniqueViolation {
			return auth.User{}, auth.AlreadyExists("user with this email already exists")
		}
		return auth.User{}, fmt.Errorf("update user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return auth.User{}, auth.NotFound("user not found")
	}
	return s.FindUserByID(ctx, id)
}

func (s *Store) SetUserRole(ctx context.Context, id, roleID string) (auth.User, error) {
	res, err := s.db.ExecContext(ctx,
		`update users set role_id = $1, updated_at = now() where id = $2`, roleID, id)
	if err != nil {
		if pgErr, ok := maybePgError(err); ok && pgErr.Code == pgErrForeignKeyViolation {
			return auth.User{}, auth.NotFound("role not found")
		}
		return auth.User{}, fmt.Errorf("set user role: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return auth.User{}, auth.NotFound("user not found")
	}
	return s.FindUserByID(ctx, id)
}

func (s *Store) DeactivateUser(ctx context.Context, id string) (auth.User, error) {
	res, err := s.db.ExecContext(ctx,
		`update users set is_active = false, updated_at = now() where id = $1`, id)
	if err != nil {
		return auth.User{}, fmt.Errorf("deactivate user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return auth.User{}, auth.NotFound("user not found")
	}
	return s.FindUserByID(ctx, id)
}

func (s *Store) FindRoleByName(ctx context.Context, name string) (auth.Role, error) {
	var role auth.Role
	err := s.db.QueryRowContext(ctx,
		`select id, name, description from roles where name = $1`, name).
		Scan(&role.ID, &role.Name, &role.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.Role{}, auth.NotFound("role not found")
	}
	if err != nil {
		return auth.Role{}, fmt.Errorf("find role: %w", err)
	}
	perms, err := s.rolePermissions(ctx, role.ID)
	if err != nil {
		return auth.Role{}, err
	}
	role.Permissions = perms
	return role, nil
}

func (s *Store) ListRoles(ctx context.Context) ([]auth.Role, error) {
	rows, err := s.db.QueryContext(ctx, `select id, name, description from roles order by name`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	roles := make([]auth.Role, 0)
	for rows.Next() {
		var role auth.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	byRole, err := s.allRolePermissions(ctx)
	if err != nil {
		return nil, err
	}
	for i := range roles {
		roles[i].Permissions = byRole[roles[i].ID]
	}
	return roles, nil
}

func (s *Store) CreatePermission(ctx context.Context, name, description string) (auth.Permission, error) {
	p := auth.Permission{ID: ids.New(), Name: name, Description: description}
	err := s.db.QueryRowContext(ctx, `
		insert into permissions (id, name, description)
		values ($1, $2, $3)
		returning created_at`, p.ID, p.Name, p.Description).Scan(&p.CreatedAt)
	if err != nil {
		if pgErr, ok := maybePgError(err); ok && pgErr.Code == pgErrUniqueViolation {
			return auth.Permission{}, auth.AlreadyExists("permission with this name already exists")
		}
		return auth.Permission{}, fmt.Errorf("create permission: %w", err)
	}
	return p, nil
}

func (s *Store) DeletePermission(ctx context.Context, name string) (auth.Permission, error) {
	var p auth.Permission
	err := s.db.QueryRowContext(ctx, `
		delete from permissions where name = $1
		returning id, name, description, created_at`, name).
		Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.Permission{}, auth.NotFound("permission not found")
	}
	if err != nil {
		return auth.Permission{}, fmt.Errorf("delete permission: %w", err)
	}
	return p, nil
}

func (s *Store) FindPermissionByName(ctx context.Context, name string) (auth.Permission, error) {
	var p auth.Permission
	err := s.db.QueryRowContext(ctx,
		`select id, name, description, created_at from permissions where name = $1`, name).
		Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.Permission{}, auth.NotFound("permission not found")
	}
	if err != nil {
		return auth.Permission{}, fmt.Errorf("find permission: %w", err)
	}
	return p, nil
}

func (s *Store) ListPermissions(ctx context.Context) ([]auth.Permission, error) {
	rows, err := s.db.QueryContext(ctx,
		`select id, name, description, created_at from permissions order by name`)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	defer rows.Close()
	return scanPermissions(rows)
}

// GrantPermission is idempotent: re-granting an existing pair is a no-op.
func (s *Store) GrantPermission(ctx context.Context, roleID, permissionID string) error {
	_, err := s.db.ExecContext(ctx, `
		insert into roles_permissions (role_id, permission_id)
		values ($1, $2)
		on conflict (role_id, permission_id) do nothing`, roleID, permissionID)
	if err != nil {
		if pgErr, ok := maybePgError(err); ok && pgErr.Code == pgErrForeignKeyViolation {
			return auth.NotFound("role or permission not found")
		}
		return fmt.Errorf("grant permission: %w", err)
	}
	return nil
}

func (s *Store) RevokePermission(ctx context.Context, roleID, permissionID string) error {
	_, err := s.db.ExecContext(ctx,
		`delete from roles_permissions where role_id = $1 and permission_id = $2`,
		roleID, permissionID)
	if err != nil {
		return fmt.Errorf("revoke permission: %w", err)
	}
	return nil
}

func (s *Store) rolePermissions(ctx context.Context, roleID string) ([]auth.Permission, error) {
	rows, err := s.db.QueryContext(ctx, `
		select p.id, p.name, p.description, p.created_at
		from roles_permissions rp
		join permissions p on p.id = rp.permission_id
		where rp.role_id = $1
		order by p.name`, roleID)
	if err != nil {
		return nil, fmt.Errorf("role permissions: %w", err)
	}
	defer rows.Close()
	return scanPermissions(rows)
}

func (s *Store) allRolePermissions(ctx context.Context) (map[string][]auth.Permission, error) {
	rows, err := s.db.QueryContext(ctx, `
		select rp.role_id, p.id, p.name, p.description, p.created_at
		from roles_permissions rp
		join permissions p on p.id = rp.permission_id
		order by p.name`)
	if err != nil {
		return nil, fmt.Errorf("role permissions: %w", err)
	}
	defer rows.Close()

	byRole := make(map[string][]auth.Permission)
	for rows.Next() {
		var roleID string
		var p auth.Permission
		if err := rows.Scan(&roleID, &p.ID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		byRole[roleID] = append(byRole[roleID], p)
	}
	return byRole, rows.Err()
}

func scanPermissions(rows *sql.Rows) ([]auth.Permission, error) {
	perms := make([]auth.Permission, 0)
	for rows.Next() {
		var p auth.Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

var _ auth.Store = (*Store)(nil)
