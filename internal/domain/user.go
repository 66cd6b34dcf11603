package domain

import (
	"fmt"
	"strings"
	"time"
)

// UserStatus represents lifecycle states for an account.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// ParseUserStatus accepts canonical values and the legacy "ativo"/"inativo".
func ParseUserStatus(raw string) (UserStatus, error) {
	switch foldLabel(raw) {
	case "active", "ativo":
		return UserStatusActive, nil
	case "inactive", "inativo":
		return UserStatusInactive, nil
	}
	return "", fmt.Errorf("unknown user status %q", raw)
}

// User is an account that opens or works tickets.
type User struct {
	ID            int64
	Name          string
	Email         string
	PasswordHash  string
	Role          Role
	Status        UserStatus
	CPF           *string
	Phone         *string
	AdmissionDate *time.Time
	Position      *string
	Department    *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Actor returns the identity used for authorization decisions.
func (u *User) Actor() Actor {
	return Actor{ID: u.ID, Role: u.Role}
}

// Active reports whether the account may authenticate.
func (u *User) Active() bool {
	return u.Status == UserStatusActive
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
