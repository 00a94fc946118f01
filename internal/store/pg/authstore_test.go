package pg

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"skladr.dev/internal/auth"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db), mock
}

func TestFindUserByEmail(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectQuery("select u.id, u.email, u.full_name, u.password_hash.*from users u").
		WithArgs("worker@example.com").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "full_name", "password_hash", "is_active", "created_at", "updated_at",
			"role_id", "role_name", "role_description",
		}).AddRow("user-1", "worker@example.com", "Worker", "hash", true, now, now,
			"role-1", "seller", "sells things"))
	mock.ExpectQuery("select p.id, p.name, p.description, p.created_at.*from roles_permissions rp").
		WithArgs("role-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "created_at"}).
			AddRow("perm-1", "products:read", "", now).
			AddRow("perm-2", "supplies:create", "", now))

	u, err := store.FindUserByEmail(context.Background(), "worker@example.com")
	if err != nil {
		t.Fatalf("FindUserByEmail: %v", err)
	}
	if u.ID != "user-1" || u.Role.Name != "seller" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if len(u.Role.Permissions) != 2 || u.Role.Permissions[0].Name != "products:read" {
		t.Fatalf("expected materialized permissions, got %+v", u.Role.Permissions)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFindUserByEmailNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("select u.id, u.email").
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := store.FindUserByEmail(context.Background(), "ghost@example.com")
	if auth.KindOf(err) != auth.KindNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("insert into users").
		WithArgs(sqlmock.AnyArg(), "worker@example.com", "Worker", "hash", "role-1").
		WillReturnError(&pgconn.PgError{Code: pgErrUniqueViolation})

	_, err := store.CreateUser(context.Background(), "worker@example.com", "Worker", "hash", "role-1")
	if auth.KindOf(err) != auth.KindAlreadyExists {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateUserBuildsPartialSet(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now()
	email := "new@example.com"

	mock.ExpectExec(`update users set email = \$1, updated_at = now\(\) where id = \$2`).
		WithArgs(email, "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("select u.id, u.email").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "full_name", "password_hash", "is_active", "created_at", "updated_at",
			"role_id", "role_name", "role_description",
		}).AddRow("user-1", email, "Worker", "hash", true, now, now, "role-1", "seller", ""))
	mock.ExpectQuery("select p.id, p.name").
		WithArgs("role-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "created_at"}))

	u, err := store.UpdateUser(context.Background(), "user-1", auth.UserUpdate{Email: &email})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if u.Email != email {
		t.Fatalf("unexpected email: %s", u.Email)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGrantPermissionUnknownPair(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("insert into roles_permissions").
		WithArgs("role-x", "perm-x").
		WillReturnError(&pgconn.PgError{Code: pgErrForeignKeyViolation})

	err := store.GrantPermission(context.Background(), "role-x", "perm-x")
	if auth.KindOf(err) != auth.KindNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestDeletePermissionMissing(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("delete from permissions where name").
		WithArgs("nope:read").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := store.DeletePermission(context.Background(), "nope:read")
	if auth.KindOf(err) != auth.KindNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestListRolesMaterializesPermissions(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectQuery("select id, name, description from roles").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}).
			AddRow("role-1", "admin", "").
			AddRow("role-2", "consumer", ""))
	mock.ExpectQuery("select rp.role_id, p.id, p.name").
		WillReturnRows(sqlmock.NewRows([]string{"role_id", "id", "name", "description", "created_at"}).
			AddRow("role-1", "perm-1", "users:full_access", "", now))

	roles, err := store.ListRoles(context.Background())
	if err != nil {
		t.Fatalf("ListRoles: %v", err)
	}
	if len(roles) != 2 {
		t.Fatalf("expected 2 roles, got %d", len(roles))
	}
	if len(roles[0].Permissions) != 1 || roles[0].Permissions[0].Name != "users:full_access" {
		t.Fatalf("expected admin permissions, got %+v", roles[0].Permissions)
	}
	if len(roles[1].Permissions) != 0 {
		t.Fatalf("expected consumer to have no permissions, got %+v", roles[1].Permissions)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
