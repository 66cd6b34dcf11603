package dto

import (
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=10000"`
	Priority    string `json:"priority" validate:"required"`
}

// UpdateTicketRequest is a partial patch. Absent fields keep their value;
// "assignee_id": null unassigns.
type UpdateTicketRequest struct {
	Status     *string    `json:"status"`
	Priority   *string    `json:"priority"`
	AssigneeID OptionalID `json:"assignee_id"`
}

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=10000"`
}

// TicketResponse is a ticket joined with creator and assignee names.
type TicketResponse struct {
	ID              int64                 `json:"id"`
	Title           string                `json:"title"`
	Description     string                `json:"description"`
	DescriptionHTML string                `json:"description_html,omitempty"`
	Status          domain.TicketStatus   `json:"status"`
	Priority        domain.TicketPriority `json:"priority"`
	CreatorID       int64                 `json:"creator_id"`
	CreatorName     string                `json:"creator_name"`
	AssigneeID      *int64                `json:"assignee_id"`
	AssigneeName    *string               `json:"assignee_name"`
	CreatedAt       time.Time             `json:"created_at"`
	ClosedAt        *time.Time            `json:"closed_at"`
}

// CommentResponse represents one thread entry.
type CommentResponse struct {
	ID          int64     `json:"id"`
	TicketID    int64     `json:"ticket_id"`
	AuthorID    int64     `json:"author_id"`
	AuthorName  string    `json:"author_name"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"content_html,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TicketDetailResponse provides a ticket and its thread, oldest comment first.
type TicketDetailResponse struct {
	TicketResponse
	Comments []CommentResponse `json:"comments"`
}
