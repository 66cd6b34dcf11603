package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/policy"
	"github.com/spec-kit/helpdesk/internal/repository"
	apperrors "github.com/spec-kit/helpdesk/pkg/util"
)

const commentPreviewLength = 140

// CommentService appends to ticket discussion threads.
type CommentService struct {
	tickets  repository.TicketRepository
	comments repository.CommentRepository
	events   publisher
}

// NewCommentService constructs the service.
func NewCommentService(tickets repository.TicketRepository, comments repository.CommentRepository, dispatcher events.Dispatcher, logger *zap.Logger) *CommentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommentService{
		tickets:  tickets,
		comments: comments,
		events:   publisher{dispatcher: dispatcher, logger: logger, now: systemClock},
	}
}

// AddComment appends content to the ticket's thread as actor.
func (s *CommentService) AddComment(ctx context.Context, actor domain.Actor, ticketID int64, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("invalid comment", map[string]any{
			"content": "is required",
		})
	}

	ticket, err := loadTicket(ctx, s.tickets, actor, ticketID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanComment(actor, ticket); err != nil {
		return nil, err
	}

	comment, err := s.comments.Create(ctx, &domain.Comment{
		TicketID: ticket.ID,
		AuthorID: actor.ID,
		Content:  content,
	})
	if err != nil {
		return nil, err
	}

	s.events.publish(ctx, events.Event{
		Type:     events.EventTicketCommentAdded,
		TicketID: ticket.ID,
		Actor:    actor,
		Payload: events.TicketCommentAddedPayload{
			CommentID:   comment.ID,
			CreatorID:   ticket.CreatorID,
			Title:       ticket.Title,
			AuthorID:    comment.AuthorID,
			AuthorName:  comment.AuthorName,
			BodyPreview: preview(comment.Content),
		},
	})
	return comment, nil
}

func preview(body string) string {
	runes := []rune(body)
	if len(runes) <= commentPreviewLength {
		return body
	}
	return string(runes[:commentPreviewLength]) + "..."
}
