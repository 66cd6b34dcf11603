package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/repository"
	apperrors "github.com/spec-kit/helpdesk/pkg/util"
)

// Clock returns the current time. Services take one so tests can pin it.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC()
}

// ParseID validates a path identifier.
func ParseID(raw, field string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid identifier", map[string]any{
			field: "must be a positive integer",
		})
	}
	return id, nil
}

// loadTicket fetches a ticket for actor. Ordinary callers get Forbidden for a
// missing ticket so that existence of other users' tickets is not disclosed.
func loadTicket(ctx context.Context, tickets repository.TicketRepository, actor domain.Actor, id int64) (*domain.Ticket, error) {
	ticket, err := tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if actor.Role.Privileged() {
				return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
			}
			return nil, apperrors.NewForbidden("access to ticket denied")
		}
		return nil, err
	}
	return ticket, nil
}

type publisher struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        Clock
}

func (p publisher) publish(ctx context.Context, event events.Event) {
	if p.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = p.now()
	}
	if err := p.dispatcher.Publish(ctx, event); err != nil && p.logger != nil {
		p.logger.Warn("event handler failed",
			zap.String("event_type", string(event.Type)),
			zap.Int64("ticket_id", event.TicketID),
			zap.Error(err))
	}
}
