package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/policy"
	"github.com/spec-kit/helpdesk/internal/repository"
	apperrors "github.com/spec-kit/helpdesk/pkg/util"
)

// UserService implements admin account management.
type UserService struct {
	users  repository.UserRepository
	hasher *auth.PasswordHasher
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, hasher *auth.PasswordHasher) *UserService {
	return &UserService{users: users, hasher: hasher}
}

// UserCreateInput lists the fields an admin may set on a new account.
type UserCreateInput struct {
	Name          string
	Email         string
	Password      string
	Role          string
	Status        string
	CPF           *string
	Phone         *string
	AdmissionDate *time.Time
	Position      *string
	Department    *string
}

// UserUpdateInput is a partial patch; nil fields keep their value.
type UserUpdateInput struct {
	Name          *string
	Email         *string
	Role          *string
	Status        *string
	CPF           *string
	Phone         *string
	AdmissionDate *time.Time
	Position      *string
	Department    *string
}

// List returns every account ordered by name.
func (s *UserService) List(ctx context.Context, actor domain.Actor) ([]domain.User, error) {
	if err := policy.CanManageUsers(actor); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

// Create adds an account on behalf of an admin.
func (s *UserService) Create(ctx context.Context, actor domain.Actor, input UserCreateInput) (*domain.User, error) {
	if err := policy.CanManageUsers(actor); err != nil {
		return nil, err
	}
	user, err := s.buildUser(input)
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, mapUserWriteError(err)
	}
	return user, nil
}

// Update patches an account. Demoting the last admin fails with Conflict.
func (s *UserService) Update(ctx context.Context, actor domain.Actor, id int64, input UserUpdateInput) (*domain.User, error) {
	if err := policy.CanManageUsers(actor); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return nil, err
	}

	details := map[string]any{}
	if input.Name != nil {
		if name := strings.TrimSpace(*input.Name); name == "" {
			details["name"] = "is required"
		} else {
			user.Name = name
		}
	}
	if input.Email != nil {
		if email, ok := validEmail(*input.Email); !ok {
			details["email"] = "must be a valid email address"
		} else {
			user.Email = email
		}
	}
	newRole := user.Role
	if input.Role != nil {
		if role, err := domain.ParseRole(*input.Role); err != nil {
			details["role"] = "must be one of admin, technician, user"
		} else {
			newRole = role
		}
	}
	if input.Status != nil {
		if status, err := domain.ParseUserStatus(*input.Status); err != nil {
			details["status"] = "must be active or inactive"
		} else {
			user.Status = status
		}
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid user", details)
	}

	if newRole != user.Role {
		admins, err := s.users.CountByRole(ctx, domain.RoleAdmin)
		if err != nil {
			return nil, err
		}
		if err := policy.CheckRoleChange(user, newRole, admins); err != nil {
			return nil, err
		}
		user.Role = newRole
	}

	if input.CPF != nil {
		user.CPF = optionalString(*input.CPF)
	}
	if input.Phone != nil {
		user.Phone = optionalString(*input.Phone)
	}
	if input.AdmissionDate != nil {
		user.AdmissionDate = input.AdmissionDate
	}
	if input.Position != nil {
		user.Position = optionalString(*input.Position)
	}
	if input.Department != nil {
		user.Department = optionalString(*input.Department)
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return nil, mapUserWriteError(err)
	}
	return user, nil
}

// Delete removes an account. Admins cannot delete themselves, and accounts
// that still own tickets or comments are kept.
func (s *UserService) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if err := policy.CanManageUsers(actor); err != nil {
		return err
	}
	if err := policy.CheckUserDelete(actor, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		if errors.Is(err, repository.ErrReferenced) {
			return apperrors.NewConflict("user still owns tickets or comments", map[string]any{"user_id": id})
		}
		return err
	}
	return nil
}

func (s *UserService) buildUser(input UserCreateInput) (*domain.User, error) {
	details := map[string]any{}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		details["name"] = "is required"
	}
	email, ok := validEmail(input.Email)
	if !ok {
		details["email"] = "must be a valid email address"
	}
	if len(input.Password) < auth.MinPasswordLength {
		details["password"] = "is too short"
	}
	role := domain.RoleUser
	if strings.TrimSpace(input.Role) != "" {
		parsed, err := domain.ParseRole(input.Role)
		if err != nil {
			details["role"] = "must be one of admin, technician, user"
		}
		role = parsed
	}
	status := domain.UserStatusActive
	if strings.TrimSpace(input.Status) != "" {
		parsed, err := domain.ParseUserStatus(input.Status)
		if err != nil {
			details["status"] = "must be active or inactive"
		}
		status = parsed
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid user", details)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Name:          name,
		Email:         email,
		PasswordHash:  hash,
		Role:          role,
		Status:        status,
		AdmissionDate: input.AdmissionDate,
	}
	if input.CPF != nil {
		user.CPF = optionalString(*input.CPF)
	}
	if input.Phone != nil {
		user.Phone = optionalString(*input.Phone)
	}
	if input.Position != nil {
		user.Position = optionalString(*input.Position)
	}
	if input.Department != nil {
		user.Department = optionalString(*input.Department)
	}
	return user, nil
}

func validEmail(raw string) (string, bool) {
	email := domain.NormalizeEmail(raw)
	if email == "" {
		return "", false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", false
	}
	return email, true
}

func optionalString(raw string) *string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil
	}
	return &v
}

func mapUserWriteError(err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return apperrors.NewConflict("email or cpf already in use", nil)
	}
	return err
}
