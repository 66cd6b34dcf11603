package events

import (
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated      EventType = "ticket_created"
	EventTicketUpdated      EventType = "ticket_updated"
	EventTicketDeleted      EventType = "ticket_deleted"
	EventTicketCommentAdded EventType = "ticket_comment_added"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string       `json:"id"`
	Type      EventType    `json:"type"`
	TicketID  int64        `json:"ticket_id"`
	Actor     domain.Actor `json:"actor"`
	Timestamp time.Time    `json:"timestamp"`
	Payload   interface{}  `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Title      string                `json:"title"`
	Priority   domain.TicketPriority `json:"priority"`
	CreatorID  int64                 `json:"creator_id"`
	AssigneeID *int64                `json:"assignee_id,omitempty"`
}

// TicketUpdatedPayload carries before and after values of the mutable fields.
type TicketUpdatedPayload struct {
	CreatorID     int64                 `json:"creator_id"`
	Title         string                `json:"title"`
	OldStatus     domain.TicketStatus   `json:"old_status"`
	NewStatus     domain.TicketStatus   `json:"new_status"`
	OldPriority   domain.TicketPriority `json:"old_priority"`
	NewPriority   domain.TicketPriority `json:"new_priority"`
	OldAssigneeID *int64                `json:"old_assignee_id,omitempty"`
	NewAssigneeID *int64                `json:"new_assignee_id,omitempty"`
}

// StatusChanged reports whether the update moved the ticket to another status.
func (p TicketUpdatedPayload) StatusChanged() bool {
	return p.OldStatus != p.NewStatus
}

// Reassigned reports whether the update handed the ticket to a different user.
func (p TicketUpdatedPayload) Reassigned() bool {
	if p.NewAssigneeID == nil {
		return false
	}
	return p.OldAssigneeID == nil || *p.OldAssigneeID != *p.NewAssigneeID
}

// TicketDeletedPayload payload.
type TicketDeletedPayload struct {
	Title string `json:"title"`
}

// TicketCommentAddedPayload payload.
type TicketCommentAddedPayload struct {
	CommentID   int64  `json:"comment_id"`
	CreatorID   int64  `json:"creator_id"`
	Title       string `json:"title"`
	AuthorID    int64  `json:"author_id"`
	AuthorName  string `json:"author_name"`
	BodyPreview string `json:"body_preview"`
}
