package domain

import "time"

// Comment is an append-only entry in a ticket's discussion thread.
type Comment struct {
	ID         int64
	TicketID   int64
	AuthorID   int64
	AuthorName string
	Content    string
	CreatedAt  time.Time
}
