package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/dto"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/render"
	"github.com/spec-kit/helpdesk/internal/service"
	apperrors "github.com/spec-kit/helpdesk/pkg/util"
)

// TicketLifecycle is the ticket workflow the handler drives.
type TicketLifecycle interface {
	Create(ctx context.Context, actor domain.Actor, input service.TicketCreateInput) (*domain.Ticket, error)
	Show(ctx context.Context, actor domain.Actor, id int64) (*service.TicketDetail, error)
	List(ctx context.Context, actor domain.Actor) ([]domain.Ticket, error)
	Update(ctx context.Context, actor domain.Actor, id int64, input service.TicketUpdateInput) (*domain.Ticket, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
	PersonalQueue(ctx context.Context, actor domain.Actor) ([]domain.Ticket, error)
}

// CommentThread appends comments.
type CommentThread interface {
	AddComment(ctx context.Context, actor domain.Actor, ticketID int64, content string) (*domain.Comment, error)
}

// TicketStats computes scoped counts.
type TicketStats interface {
	Stats(ctx context.Context, actor domain.Actor, consistent bool) (domain.TicketStats, error)
}

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	tickets  TicketLifecycle
	comments CommentThread
	stats    TicketStats
	renderer render.Renderer
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(tickets TicketLifecycle, comments CommentThread, stats TicketStats, renderer render.Renderer) *TicketsHandler {
	return &TicketsHandler{tickets: tickets, comments: comments, stats: stats, renderer: renderer}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req dto.CreateTicketRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	ticket, err := h.tickets.Create(c.UserContext(), actor, service.TicketCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketResponse(ticket, h.renderer)})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	tickets, err := h.tickets.List(c.UserContext(), actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketList(tickets)})
}

// PersonalQueue GET /tickets/personal.
func (h *TicketsHandler) PersonalQueue(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	tickets, err := h.tickets.PersonalQueue(c.UserContext(), actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketList(tickets)})
}

// Stats GET /tickets/stats. ?consistent=true counts from a single snapshot.
func (h *TicketsHandler) Stats(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	consistent := c.QueryBool("consistent", false)
	stats, err := h.stats.Stats(c.UserContext(), actor, consistent)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.StatsResponse{
		Total:      stats.Total,
		Open:       stats.Open,
		InProgress: stats.InProgress,
		Pending:    stats.Pending,
		Resolved:   stats.Resolved,
		Consistent: consistent,
	}})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "ticket_id")
	if err != nil {
		return err
	}
	detail, err := h.tickets.Show(c.UserContext(), actor, id)
	if err != nil {
		return err
	}

	comments := make([]dto.CommentResponse, 0, len(detail.Comments))
	for i := range detail.Comments {
		comments = append(comments, commentResponse(&detail.Comments[i], h.renderer))
	}
	return c.JSON(fiber.Map{"data": dto.TicketDetailResponse{
		TicketResponse: ticketResponse(detail.Ticket, h.renderer),
		Comments:       comments,
	}})
}

// UpdateTicket PUT /tickets/:id. A malformed body is handed to the service
// so that ownership is decided before the payload is judged.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "ticket_id")
	if err != nil {
		return err
	}

	var input service.TicketUpdateInput
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		input.BodyErr = apperrors.NewValidationError("invalid payload", map[string]any{"body": err.Error()})
	} else {
		input = service.TicketUpdateInput{
			Status:      req.Status,
			Priority:    req.Priority,
			AssigneeSet: req.AssigneeID.Set,
			AssigneeID:  req.AssigneeID.Value,
		}
	}

	ticket, err := h.tickets.Update(c.UserContext(), actor, id, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket, h.renderer)})
}

// DeleteTicket DELETE /tickets/:id.
func (h *TicketsHandler) DeleteTicket(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "ticket_id")
	if err != nil {
		return err
	}
	if err := h.tickets.Delete(c.UserContext(), actor, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// AddComment POST /tickets/:id/comments.
func (h *TicketsHandler) AddComment(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "ticket_id")
	if err != nil {
		return err
	}
	var req dto.CreateCommentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	comment, err := h.comments.AddComment(c.UserContext(), actor, id, req.Content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": commentResponse(comment, h.renderer)})
}
