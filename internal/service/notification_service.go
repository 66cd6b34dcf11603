package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/repository"
	"github.com/spec-kit/helpdesk/internal/worker"
)

// Mailer queues outgoing mail.
type Mailer interface {
	Enqueue(mail worker.Mail) bool
}

// NotificationService turns ticket events into log lines and emails.
type NotificationService struct {
	dispatcher events.Dispatcher
	users      repository.UserRepository
	mailer     Mailer
	logger     *zap.Logger
}

// NewNotificationService creates the service. A nil mailer only logs.
func NewNotificationService(dispatcher events.Dispatcher, users repository.UserRepository, mailer Mailer, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		users:      users,
		mailer:     mailer,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketUpdated, n.handleTicketUpdated)
	n.dispatcher.Subscribe(events.EventTicketDeleted, n.handleTicketDeleted)
	n.dispatcher.Subscribe(events.EventTicketCommentAdded, n.handleCommentAdded)
}

func (n *NotificationService) handleTicketCreated(_ context.Context, event events.Event) error {
	n.logger.Info("TicketCreated", zap.Int64("ticket_id", event.TicketID), zap.Int64("actor_id", event.Actor.ID))
	return nil
}

func (n *NotificationService) handleTicketDeleted(_ context.Context, event events.Event) error {
	n.logger.Info("TicketDeleted", zap.Int64("ticket_id", event.TicketID), zap.Int64("actor_id", event.Actor.ID))
	return nil
}

func (n *NotificationService) handleTicketUpdated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketUpdatedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	n.logger.Info("TicketUpdated",
		zap.Int64("ticket_id", event.TicketID),
		zap.String("old_status", string(payload.OldStatus)),
		zap.String("new_status", string(payload.NewStatus)),
		zap.String("new_priority", string(payload.NewPriority)))

	if payload.StatusChanged() && payload.CreatorID != event.Actor.ID {
		n.notify(ctx, payload.CreatorID,
			fmt.Sprintf("Ticket #%d is now %s", event.TicketID, payload.NewStatus),
			fmt.Sprintf("Your ticket %q moved from %s to %s.", payload.Title, payload.OldStatus, payload.NewStatus))
	}
	if payload.Reassigned() && *payload.NewAssigneeID != event.Actor.ID {
		n.notify(ctx, *payload.NewAssigneeID,
			fmt.Sprintf("Ticket #%d assigned to you", event.TicketID),
			fmt.Sprintf("Ticket %q (%s) was assigned to you.", payload.Title, payload.NewPriority))
	}
	return nil
}

func (n *NotificationService) handleCommentAdded(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCommentAddedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	n.logger.Info("TicketCommentAdded",
		zap.Int64("ticket_id", event.TicketID),
		zap.Int64("comment_id", payload.CommentID))

	if payload.AuthorID != payload.CreatorID {
		n.notify(ctx, payload.CreatorID,
			fmt.Sprintf("New comment on ticket #%d", event.TicketID),
			fmt.Sprintf("%s commented on %q:\n\n%s", payload.AuthorName, payload.Title, payload.BodyPreview))
	}
	return nil
}

func (n *NotificationService) notify(ctx context.Context, userID int64, subject, body string) {
	if n.mailer == nil || n.users == nil {
		return
	}
	user, err := n.users.GetByID(ctx, userID)
	if err != nil {
		n.logger.Warn("notification recipient lookup failed", zap.Int64("user_id", userID), zap.Error(err))
		return
	}
	n.mailer.Enqueue(worker.Mail{To: user.Email, Subject: subject, Body: body})
}
