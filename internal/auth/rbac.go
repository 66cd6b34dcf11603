package auth

import (
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/domain"
	apperrors "github.com/spec-kit/helpdesk/pkg/util"
)

// Route resources guarded by the enforcer.
const (
	ResourceTickets   = "tickets"
	ResourceComments  = "comments"
	ResourceReports   = "reports"
	ResourceUsers     = "users"
	ResourceInventory = "inventory"

	ActionRead   = "read"
	ActionWrite  = "write"
	ActionDelete = "delete"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && (r.act == p.act || p.act == "*")
`

// admin inherits technician, technician inherits user.
var rbacRoles = [][]string{
	{string(domain.RoleAdmin), string(domain.RoleTechnician)},
	{string(domain.RoleTechnician), string(domain.RoleUser)},
}

var rbacPolicies = [][]string{
	{string(domain.RoleUser), ResourceTickets, ActionRead},
	{string(domain.RoleUser), ResourceTickets, ActionWrite},
	{string(domain.RoleUser), ResourceComments, ActionWrite},
	{string(domain.RoleUser), ResourceReports, ActionRead},
	{string(domain.RoleUser), ResourceInventory, ActionRead},
	{string(domain.RoleTechnician), ResourceInventory, "*"},
	{string(domain.RoleAdmin), ResourceTickets, ActionDelete},
	{string(domain.RoleAdmin), ResourceUsers, "*"},
}

// Enforcer gates routes by role.
type Enforcer struct {
	mu       sync.RWMutex
	enforcer *casbin.Enforcer
}

// NewEnforcer loads the built-in role model and policy set.
func NewEnforcer() (*Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rbac model: %w", err)
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}
	if _, err := e.AddGroupingPolicies(rbacRoles); err != nil {
		return nil, fmt.Errorf("failed to load role hierarchy: %w", err)
	}
	if _, err := e.AddPolicies(rbacPolicies); err != nil {
		return nil, fmt.Errorf("failed to load policies: %w", err)
	}
	return &Enforcer{enforcer: e}, nil
}

// Allowed reports whether role may perform act on obj.
func (e *Enforcer) Allowed(role domain.Role, obj, act string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(string(role), obj, act)
	if err != nil {
		return false, fmt.Errorf("permission check failed: %w", err)
	}
	return allowed, nil
}

// RequirePermission rejects callers whose role lacks act on obj.
func (e *Enforcer) RequirePermission(obj, act string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := ActorFromContext(c)
		if err != nil {
			return err
		}
		allowed, err := e.Allowed(actor.Role, obj, act)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		if !allowed {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
