package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/config"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/repository"
	apperrors "github.com/spec-kit/helpdesk/pkg/util"
)

// LoginLimiter throttles repeated failed logins.
type LoginLimiter interface {
	Check(ctx context.Context, email string) error
	RecordFailure(ctx context.Context, email string)
	Reset(ctx context.Context, email string)
}

// Session is the result of a successful login or registration.
type Session struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// RegisterInput is the self-registration payload.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users             repository.UserRepository
	accounts          *UserService
	tokenMgr          *auth.TokenManager
	hasher            *auth.PasswordHasher
	limiter           LoginLimiter
	allowRegistration bool
	logger            *zap.Logger
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	Tokens   *auth.TokenManager
	Hasher   *auth.PasswordHasher
	Limiter  LoginLimiter
	Logger   *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:             deps.UserRepo,
		accounts:          NewUserService(deps.UserRepo, deps.Hasher),
		tokenMgr:          deps.Tokens,
		hasher:            deps.Hasher,
		limiter:           deps.Limiter,
		allowRegistration: cfg.AllowRegistration,
		logger:            logger,
	}
}

// Login authenticates an active user by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("email and password are required", nil)
	}
	if s.limiter != nil {
		if err := s.limiter.Check(ctx, email); err != nil {
			return nil, err
		}
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.recordFailure(ctx, email)
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}
	if !s.hasher.Matches(user.PasswordHash, password) {
		s.recordFailure(ctx, email)
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if !user.Active() {
		return nil, apperrors.NewUnauthorized("user is inactive")
	}
	if s.limiter != nil {
		s.limiter.Reset(ctx, email)
	}
	return s.issue(user)
}

// Register creates an account for the caller. The first account ever created
// becomes an admin; later ones are ordinary users.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	if !s.allowRegistration {
		return nil, apperrors.NewForbidden("self-registration is disabled")
	}

	existing, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	role := domain.RoleUser
	if existing == 0 {
		role = domain.RoleAdmin
	}

	user, err := s.accounts.buildUser(UserCreateInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Role:     string(role),
	})
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, mapUserWriteError(err)
	}
	if role == domain.RoleAdmin {
		s.logger.Info("first account registered as admin", zap.Int64("user_id", user.ID))
	}
	return s.issue(user)
}

// CreateAdmin provisions an admin account outside the HTTP surface.
func (s *AuthService) CreateAdmin(ctx context.Context, name, email, password string) (*domain.User, error) {
	user, err := s.accounts.buildUser(UserCreateInput{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     string(domain.RoleAdmin),
	})
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, mapUserWriteError(err)
	}
	return user, nil
}

func (s *AuthService) issue(user *domain.User) (*Session, error) {
	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &Session{User: user, Token: token, ExpiresAt: exp}, nil
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.limiter != nil {
		s.limiter.RecordFailure(ctx, email)
	}
}
