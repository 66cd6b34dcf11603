package dto

import (
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest payload.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// CreateUserRequest lists the fields an admin may set.
type CreateUserRequest struct {
	Name          string  `json:"name" validate:"required,max=120"`
	Email         string  `json:"email" validate:"required,email"`
	Password      string  `json:"password" validate:"required,min=6,max=72"`
	Role          string  `json:"role" validate:"omitempty"`
	Status        string  `json:"status" validate:"omitempty"`
	CPF           *string `json:"cpf" validate:"omitempty,max=14"`
	Phone         *string `json:"phone" validate:"omitempty,max=20"`
	AdmissionDate *Date   `json:"admission_date"`
	Position      *string `json:"position" validate:"omitempty,max=120"`
	Department    *string `json:"department" validate:"omitempty,max=120"`
}

// UpdateUserRequest is a partial patch over the allow-listed fields.
type UpdateUserRequest struct {
	Name          *string `json:"name" validate:"omitempty,max=120"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Role          *string `json:"role"`
	Status        *string `json:"status"`
	CPF           *string `json:"cpf" validate:"omitempty,max=14"`
	Phone         *string `json:"phone" validate:"omitempty,max=20"`
	AdmissionDate *Date   `json:"admission_date"`
	Position      *string `json:"position" validate:"omitempty,max=120"`
	Department    *string `json:"department" validate:"omitempty,max=120"`
}

// UserResponse omits the password hash.
type UserResponse struct {
	ID            int64             `json:"id"`
	Name          string            `json:"name"`
	Email         string            `json:"email"`
	Role          domain.Role       `json:"role"`
	Status        domain.UserStatus `json:"status"`
	CPF           *string           `json:"cpf"`
	Phone         *string           `json:"phone"`
	AdmissionDate *Date             `json:"admission_date"`
	Position      *string           `json:"position"`
	Department    *string           `json:"department"`
	CreatedAt     time.Time         `json:"created_at"`
}

// SessionResponse is returned by login and registration.
type SessionResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}
