package auth

import "time"

// User is a human account. Accounts are never hard-deleted; deactivation
// clears the Active flag and the account stops authorizing.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name,omitempty"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"is_active"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Role groups permissions. Every user holds exactly one role. The permission
// set is always fully loaded by the store, never traversed lazily.
type Role struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Permissions []Permission `json:"permissions,omitempty"`
}

// Permission is a fine-grained capability named resource:action.
type Permission struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserUpdate carries optional user mutations; nil fields are left untouched.
type UserUpdate struct {
	Email        *string
	FullName     *string
	PasswordHash *string
}
