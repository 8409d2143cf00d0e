package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Role represents the authorization role carried in the session token
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User represents a registered customer or administrator.
// PasswordHash is the bcrypt hash of the login password; it is never the
// 6-digit card PIN, which lives on Account.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Role         Role
	IsActive     bool
}

// Validate ensures the user adheres to domain rules
func (u *User) Validate() error {
	if u.Name == "" {
		return errors.New("user name cannot be empty")
	}
	if u.Email == "" {
		return errors.New("user email cannot be empty")
	}
	if u.PasswordHash == "" {
		return errors.New("user password hash cannot be empty")
	}
	if u.Role != RoleUser && u.Role != RoleAdmin {
		return errors.New("user role must be USER or ADMIN")
	}
	return nil
}
