package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/policy"
	"github.com/spec-kit/helpdesk/internal/repository"
	apperrors "github.com/spec-kit/helpdesk/pkg/util"
)

// TicketService coordinates the ticket lifecycle.
type TicketService struct {
	tickets  repository.TicketRepository
	comments repository.CommentRepository
	users    repository.UserRepository
	events   publisher
	logger   *zap.Logger
	now      Clock
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo  repository.TicketRepository
	CommentRepo repository.CommentRepository
	UserRepo    repository.UserRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
	Clock       Clock
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Priority    string
}

// TicketUpdateInput is a partial patch. Nil fields keep their current value.
// AssigneeSet distinguishes an explicit unassign (AssigneeID nil) from an
// absent assignee. BodyErr carries a payload that could not be decoded; it is
// reported only once the caller is allowed to change the ticket.
type TicketUpdateInput struct {
	Status      *string
	Priority    *string
	AssigneeSet bool
	AssigneeID  *int64
	BodyErr     error
}

// TicketDetail is a ticket with its comment thread.
type TicketDetail struct {
	Ticket   *domain.Ticket
	Comments []domain.Comment
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := deps.Clock
	if clock == nil {
		clock = systemClock
	}
	return &TicketService{
		tickets:  deps.TicketRepo,
		comments: deps.CommentRepo,
		users:    deps.UserRepo,
		events:   publisher{dispatcher: deps.Dispatcher, logger: logger, now: clock},
		logger:   logger,
		now:      clock,
	}
}

// Create opens a ticket owned by actor. The insert and the joined read-back
// run as one unit; a failure is reported and never retried.
func (s *TicketService) Create(ctx context.Context, actor domain.Actor, input TicketCreateInput) (*domain.Ticket, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)

	details := map[string]any{}
	if title == "" {
		details["title"] = "is required"
	}
	if description == "" {
		details["description"] = "is required"
	}
	var priority domain.TicketPriority
	if strings.TrimSpace(input.Priority) == "" {
		details["priority"] = "is required"
	} else if p, err := domain.ParseTicketPriority(input.Priority); err != nil {
		details["priority"] = "must be one of LOW, MEDIUM, HIGH, CRITICAL"
	} else {
		priority = p
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid ticket", details)
	}

	ticket := domain.NewTicket(actor, title, description, priority)
	created, err := s.tickets.Create(ctx, ticket)
	if err != nil {
		s.logger.Error("failed to create ticket", zap.Int64("actor_id", actor.ID), zap.Error(err))
		return nil, err
	}

	s.events.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: created.ID,
		Actor:    actor,
		Payload: events.TicketCreatedPayload{
			Title:      created.Title,
			Priority:   created.Priority,
			CreatorID:  created.CreatorID,
			AssigneeID: created.AssigneeID,
		},
	})
	return created, nil
}

// Show returns a ticket visible to actor together with its comments, oldest first.
func (s *TicketService) Show(ctx context.Context, actor domain.Actor, id int64) (*TicketDetail, error) {
	ticket, err := loadTicket(ctx, s.tickets, actor, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanView(actor, ticket); err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, err
	}
	return &TicketDetail{Ticket: ticket, Comments: comments}, nil
}

// List returns the tickets in actor's scope, newest first.
func (s *TicketService) List(ctx context.Context, actor domain.Actor) ([]domain.Ticket, error) {
	scope := policy.ScopeFilter(actor)
	return s.tickets.List(ctx, repository.TicketFilter{CreatorID: scope.CreatorID})
}

// Update applies a partial patch of status, priority and assignee. ClosedAt
// follows the resulting status.
func (s *TicketService) Update(ctx context.Context, actor domain.Actor, id int64, input TicketUpdateInput) (*domain.Ticket, error) {
	ticket, err := loadTicket(ctx, s.tickets, actor, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanMutate(actor, ticket); err != nil {
		return nil, err
	}
	if input.BodyErr != nil {
		return nil, input.BodyErr
	}

	before := *ticket
	status := ticket.Status
	priority := ticket.Priority

	details := map[string]any{}
	if input.Status != nil {
		parsed, err := domain.ParseTicketStatus(*input.Status)
		if err != nil {
			details["status"] = "must be one of OPEN, IN_PROGRESS, PENDING, RESOLVED, CLOSED"
		} else {
			status = parsed
		}
	}
	if input.Priority != nil {
		parsed, err := domain.ParseTicketPriority(*input.Priority)
		if err != nil {
			details["priority"] = "must be one of LOW, MEDIUM, HIGH, CRITICAL"
		} else {
			priority = parsed
		}
	}
	if input.AssigneeSet && input.AssigneeID != nil {
		if err := s.ensureAssignee(ctx, *input.AssigneeID); err != nil {
			if !apperrors.IsCode(err, apperrors.CodeValidation) {
				return nil, err
			}
			details["assignee_id"] = "must reference an existing user"
		}
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid ticket update", details)
	}

	ticket.Priority = priority
	if input.AssigneeSet {
		if input.AssigneeID == nil {
			ticket.Unassign()
		} else {
			assignee := *input.AssigneeID
			ticket.AssigneeID = &assignee
		}
	}
	ticket.ApplyStatus(status, s.now())

	if err := s.tickets.Update(ctx, ticket); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return nil, err
	}

	refreshed, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.events.publish(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		TicketID: refreshed.ID,
		Actor:    actor,
		Payload: events.TicketUpdatedPayload{
			CreatorID:     refreshed.CreatorID,
			Title:         refreshed.Title,
			OldStatus:     before.Status,
			NewStatus:     refreshed.Status,
			OldPriority:   before.Priority,
			NewPriority:   refreshed.Priority,
			OldAssigneeID: before.AssigneeID,
			NewAssigneeID: refreshed.AssigneeID,
		},
	})
	return refreshed, nil
}

// Delete hard-deletes a ticket and its comments. Only admins may delete.
func (s *TicketService) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if err := policy.CanDelete(actor); err != nil {
		return err
	}
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return err
	}
	if err := s.tickets.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return err
	}

	s.events.publish(ctx, events.Event{
		Type:     events.EventTicketDeleted,
		TicketID: id,
		Actor:    actor,
		Payload:  events.TicketDeletedPayload{Title: ticket.Title},
	})
	return nil
}

// PersonalQueue lists unresolved tickets assigned to actor, most urgent first
// and oldest first within a priority.
func (s *TicketService) PersonalQueue(ctx context.Context, actor domain.Actor) ([]domain.Ticket, error) {
	assignee := actor.ID
	tickets, err := s.tickets.List(ctx, repository.TicketFilter{
		AssigneeID:      &assignee,
		ExcludeStatuses: []domain.TicketStatus{domain.TicketStatusResolved, domain.TicketStatusClosed},
	})
	if err != nil {
		return nil, err
	}
	domain.SortWorkQueue(tickets)
	return tickets, nil
}

func (s *TicketService) ensureAssignee(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewValidationError("invalid assignee", nil)
	}
	if _, err := s.users.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewValidationError("invalid assignee", nil)
		}
		return err
	}
	return nil
}
