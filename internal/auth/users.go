package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Users provides account lifecycle operations: registration, lookups, profile
// updates, role reassignment and soft deactivation.
type Users struct {
	store       Store
	defaultRole string
}

// ProfileUpdate carries optional self-service profile changes.
type ProfileUpdate struct {
	Email    *string
	FullName *string
	Password *string
}

// NewUsers constructs Users. defaultRole names the role granted to new
// registrations and must exist in the store.
func NewUsers(store Store, defaultRole string) (*Users, error) {
	if store == nil {
		return nil, errors.New("auth: store is required")
	}
	defaultRole = strings.TrimSpace(defaultRole)
	if defaultRole == "" {
		return nil, errors.New("auth: default role is required")
	}
	return &Users{store: store, defaultRole: defaultRole}, nil
}

// Register creates an account with the default role.
func (s *Users) Register(ctx context.Context, email, fullName, password string) (User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return User{}, Invalid("valid email is required")
	}
	if strings.TrimSpace(password) == "" {
		return User{}, Invalid("password is required")
	}
	if _, err := s.store.FindUserByEmail(ctx, email); err == nil {
		return User{}, AlreadyExists(fmt.Sprintf("user with email %s already exists", email))
	} else if KindOf(err) != KindNotFound {
		return User{}, err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return User{}, err
	}
	role, err := s.store.FindRoleByName(ctx, s.defaultRole)
	if err != nil {
		return User{}, fmt.Errorf("default role %q: %w", s.defaultRole, err)
	}
	return s.store.CreateUser(ctx, email, strings.TrimSpace(fullName), hash, role.ID)
}

// GetByID loads a user with role and permissions materialized.
func (s *Users) GetByID(ctx context.Context, id string) (User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, Invalid("user id is required")
	}
	return s.store.FindUserByID(ctx, id)
}

// GetByEmail loads a user by unique email.
func (s *Users) GetByEmail(ctx context.Context, email string) (User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return User{}, Invalid("email is required")
	}
	return s.store.FindUserByEmail(ctx, email)
}

// List returns all users.
func (s *Users) List(ctx context.Context) ([]User, error) {
	return s.store.ListUsers(ctx)
}

// AssignRole moves the user identified by email onto the named role. The
// previous role is replaced: a user holds exactly one role at all times.
func (s *Users) AssignRole(ctx context.Context, email, roleName string) (User, error) {
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		return User{}, err
	}
	roleName = strings.TrimSpace(roleName)
	if roleName == "" {
		return User{}, Invalid("role name is required")
	}
	role, err := s.store.FindRoleByName(ctx, roleName)
	if err != nil {
		return User{}, err
	}
	return s.store.SetUserRole(ctx, user.ID, role.ID)
}

// Update applies a partial or full profile update to the user.
func (s *Users) Update(ctx context.Context, userID string, upd ProfileUpdate) (User, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return User{}, Invalid("user id is required")
	}
	var stored UserUpdate
	if upd.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*upd.Email))
		if email == "" || !strings.Contains(email, "@") {
			return User{}, Invalid("valid email is required")
		}
		existing, err := s.store.FindUserByEmail(ctx, email)
		if err == nil && existing.ID != userID {
			return User{}, AlreadyExists(fmt.Sprintf("email %s is already in use", email))
		} else if err != nil && KindOf(err) != KindNotFound {
			return User{}, err
		}
		stored.Email = &email
	}
	if upd.FullName != nil {
		name := strings.TrimSpace(*upd.FullName)
		stored.FullName = &name
	}
	if upd.Password != nil {
		if strings.TrimSpace(*upd.Password) == "" {
			return User{}, Invalid("password is required")
		}
		hash, err := HashPassword(*upd.Password)
		if err != nil {
			return User{}, err
		}
		stored.PasswordHash = &hash
	}
	return s.store.UpdateUser(ctx, userID, stored)
}

// Deactivate clears the active flag; the row is kept and the email stays
// reserved.
func (s *Users) Deactivate(ctx context.Context, userID string) (User, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return User{}, Invalid("user id is required")
	}
	return s.store.DeactivateUser(ctx, userID)
}
