package models

import (
	"fmt"
	"time"
)

// Role is the access level of a user.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole decodes a stored role name.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleUser, RoleAdmin:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// User is an account able to own diary entries.
//
// PasswordHash is a bcrypt hash and never the plaintext. KeySalt seeds the
// derivation of the per-user key used for encrypted entries.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Email        string
	Role         Role
	KeySalt      []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user may run administrative operations.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// NewUser builds a user with the default role.
func NewUser(username, passwordHash, email string) *User {
	return &User{
		Username:     username,
		PasswordHash: passwordHash,
		Email:        email,
		Role:         RoleUser,
	}
}
