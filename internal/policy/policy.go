// Package policy decides which tickets, comments and accounts an actor may
// see or change. Every function is pure: callers pass the actor explicitly.
package policy

import (
	"github.com/spec-kit/helpdesk/internal/domain"
	apperrors "github.com/spec-kit/helpdesk/pkg/util"
)

// Scope restricts a ticket listing. A nil CreatorID means every ticket.
type Scope struct {
	CreatorID *int64
}

// Matches reports whether ticket falls inside the scope.
func (s Scope) Matches(ticket *domain.Ticket) bool {
	return s.CreatorID == nil || ticket.CreatorID == *s.CreatorID
}

// IsPrivileged reports whether actor is an admin or technician.
func IsPrivileged(actor domain.Actor) bool {
	return actor.Role.Privileged()
}

// ScopeFilter returns the tickets actor may list.
func ScopeFilter(actor domain.Actor) Scope {
	if IsPrivileged(actor) {
		return Scope{}
	}
	id := actor.ID
	return Scope{CreatorID: &id}
}

// Owns reports whether actor created the ticket.
func Owns(actor domain.Actor, ticket *domain.Ticket) bool {
	return ticket != nil && ticket.CreatorID == actor.ID
}

// CanView allows privileged actors and the ticket's creator.
func CanView(actor domain.Actor, ticket *domain.Ticket) error {
	if IsPrivileged(actor) || Owns(actor, ticket) {
		return nil
	}
	return apperrors.NewForbidden("access to ticket denied")
}

// CanMutate uses the same predicate as CanView.
func CanMutate(actor domain.Actor, ticket *domain.Ticket) error {
	if IsPrivileged(actor) || Owns(actor, ticket) {
		return nil
	}
	return apperrors.NewForbidden("not allowed to change this ticket")
}

// CanComment uses the ticket ownership predicate.
func CanComment(actor domain.Actor, ticket *domain.Ticket) error {
	if IsPrivileged(actor) || Owns(actor, ticket) {
		return nil
	}
	return apperrors.NewForbidden("not allowed to comment on this ticket")
}

// CanDelete allows admins only.
func CanDelete(actor domain.Actor) error {
	if actor.Role == domain.RoleAdmin {
		return nil
	}
	return apperrors.NewForbidden("only administrators can delete tickets")
}

// CanManageUsers allows admins only.
func CanManageUsers(actor domain.Actor) error {
	if actor.Role == domain.RoleAdmin {
		return nil
	}
	return apperrors.NewForbidden("admin role required")
}

// CanManageInventory allows admins and technicians.
func CanManageInventory(actor domain.Actor) error {
	if IsPrivileged(actor) {
		return nil
	}
	return apperrors.NewForbidden("technician or admin role required")
}

// CheckRoleChange rejects stripping the admin role from the last admin.
// adminCount is the number of admins before the change.
func CheckRoleChange(target *domain.User, newRole domain.Role, adminCount int64) error {
	if target.Role != domain.RoleAdmin || newRole == domain.RoleAdmin {
		return nil
	}
	if adminCount <= 1 {
		return apperrors.NewConflict("cannot remove the last administrator", map[string]any{
			"user_id": target.ID,
		})
	}
	return nil
}

// CheckUserDelete rejects deleting one's own account.
func CheckUserDelete(actor domain.Actor, targetID int64) error {
	if actor.ID == targetID {
		return apperrors.NewForbidden("you cannot delete your own account")
	}
	return nil
}
