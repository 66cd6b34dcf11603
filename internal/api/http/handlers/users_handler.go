package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/dto"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/service"
)

// Authenticator issues sessions.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*service.Session, error)
	Register(ctx context.Context, input service.RegisterInput) (*service.Session, error)
}

// UserDirectory is the admin account surface.
type UserDirectory interface {
	List(ctx context.Context, actor domain.Actor) ([]domain.User, error)
	Create(ctx context.Context, actor domain.Actor, input service.UserCreateInput) (*domain.User, error)
	Update(ctx context.Context, actor domain.Actor, id int64, input service.UserUpdateInput) (*domain.User, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
}

// SessionsHandler exposes login and self-registration.
type SessionsHandler struct {
	auth Authenticator
}

// NewSessionsHandler constructs handler.
func NewSessionsHandler(auth Authenticator) *SessionsHandler {
	return &SessionsHandler{auth: auth}
}

// Login handles POST /sessions.
func (h *SessionsHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	session, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": sessionResponse(session)})
}

// Register handles POST /register.
func (h *SessionsHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	session, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": sessionResponse(session)})
}

// Me handles GET /me.
func (h *SessionsHandler) Me(c *fiber.Ctx) error {
	principal, err := principal(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(principal.User)})
}

func sessionResponse(s *service.Session) dto.SessionResponse {
	return dto.SessionResponse{
		User:      userResponse(s.User),
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt.UTC(),
	}
}

// UsersHandler manages accounts for admins.
type UsersHandler struct {
	users UserDirectory
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users UserDirectory) *UsersHandler {
	return &UsersHandler{users: users}
}

// ListUsers GET /users.
func (h *UsersHandler) ListUsers(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	users, err := h.users.List(c.UserContext(), actor)
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, userResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateUser POST /users.
func (h *UsersHandler) CreateUser(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req dto.CreateUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.users.Create(c.UserContext(), actor, service.UserCreateInput{
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		Role:          req.Role,
		Status:        req.Status,
		CPF:           req.CPF,
		Phone:         req.Phone,
		AdmissionDate: req.AdmissionDate.Ptr(),
		Position:      req.Position,
		Department:    req.Department,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": userResponse(user)})
}

// UpdateUser PUT /users/:id.
func (h *UsersHandler) UpdateUser(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "user_id")
	if err != nil {
		return err
	}
	var req dto.UpdateUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.users.Update(c.UserContext(), actor, id, service.UserUpdateInput{
		Name:          req.Name,
		Email:         req.Email,
		Role:          req.Role,
		Status:        req.Status,
		CPF:           req.CPF,
		Phone:         req.Phone,
		AdmissionDate: req.AdmissionDate.Ptr(),
		Position:      req.Position,
		Department:    req.Department,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// DeleteUser DELETE /users/:id.
func (h *UsersHandler) DeleteUser(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "user_id")
	if err != nil {
		return err
	}
	if err := h.users.Delete(c.UserContext(), actor, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
