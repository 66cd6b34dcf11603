package domain

import (
	"fmt"
	"sort"
	"time"
)

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusPending    TicketStatus = "PENDING"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// TicketPriority enumerates ticket urgency.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "LOW"
	TicketPriorityMedium   TicketPriority = "MEDIUM"
	TicketPriorityHigh     TicketPriority = "HIGH"
	TicketPriorityCritical TicketPriority = "CRITICAL"
)

var statusLabels = map[string]TicketStatus{
	"open":          TicketStatusOpen,
	"aberto":        TicketStatusOpen,
	"inprogress":    TicketStatusInProgress,
	"emandamento":   TicketStatusInProgress,
	"ematendimento": TicketStatusInProgress,
	"pending":       TicketStatusPending,
	"pendente":      TicketStatusPending,
	"resolved":      TicketStatusResolved,
	"resolvido":     TicketStatusResolved,
	"closed":        TicketStatusClosed,
	"fechado":       TicketStatusClosed,
}

var priorityLabels = map[string]TicketPriority{
	"low":      TicketPriorityLow,
	"baixa":    TicketPriorityLow,
	"medium":   TicketPriorityMedium,
	"media":    TicketPriorityMedium,
	"high":     TicketPriorityHigh,
	"alta":     TicketPriorityHigh,
	"critical": TicketPriorityCritical,
	"critica":  TicketPriorityCritical,
}

// ParseTicketStatus accepts canonical values and the legacy Portuguese labels.
func ParseTicketStatus(raw string) (TicketStatus, error) {
	if status, ok := statusLabels[foldLabel(raw)]; ok {
		return status, nil
	}
	return "", fmt.Errorf("unknown ticket status %q", raw)
}

// ParseTicketPriority accepts canonical values and the legacy Portuguese labels.
func ParseTicketPriority(raw string) (TicketPriority, error) {
	if priority, ok := priorityLabels[foldLabel(raw)]; ok {
		return priority, nil
	}
	return "", fmt.Errorf("unknown ticket priority %q", raw)
}

// Terminal reports whether the status counts as resolved for closure and metrics.
func (s TicketStatus) Terminal() bool {
	return s == TicketStatusResolved || s == TicketStatusClosed
}

// AllTicketStatuses lists statuses in lifecycle order.
func AllTicketStatuses() []TicketStatus {
	return []TicketStatus{
		TicketStatusOpen,
		TicketStatusInProgress,
		TicketStatusPending,
		TicketStatusResolved,
		TicketStatusClosed,
	}
}

// Rank orders priorities for the work queue; lower is more urgent.
func (p TicketPriority) Rank() int {
	switch p {
	case TicketPriorityCritical:
		return 1
	case TicketPriorityHigh:
		return 2
	case TicketPriorityMedium:
		return 3
	case TicketPriorityLow:
		return 4
	default:
		return 5
	}
}

// Ticket is the aggregate for support requests.
type Ticket struct {
	ID           int64
	Title        string
	Description  string
	Status       TicketStatus
	Priority     TicketPriority
	CreatorID    int64
	CreatorName  string
	AssigneeID   *int64
	AssigneeName *string
	CreatedAt    time.Time
	ClosedAt     *time.Time
}

// NewTicket builds an open ticket owned by actor. Privileged creators are
// assigned to the ticket they open.
func NewTicket(actor Actor, title, description string, priority TicketPriority) *Ticket {
	ticket := &Ticket{
		Title:       title,
		Description: description,
		Status:      TicketStatusOpen,
		Priority:    priority,
		CreatorID:   actor.ID,
	}
	if actor.Role.Privileged() {
		assignee := actor.ID
		ticket.AssigneeID = &assignee
	}
	return ticket
}

// ApplyStatus moves the ticket to next and keeps ClosedAt consistent with it:
// entering a terminal status stamps ClosedAt once, leaving it clears ClosedAt.
func (t *Ticket) ApplyStatus(next TicketStatus, now time.Time) {
	t.Status = next
	if next.Terminal() {
		if t.ClosedAt == nil {
			closed := now.UTC()
			t.ClosedAt = &closed
		}
		return
	}
	t.ClosedAt = nil
}

// Unassign drops the assignee reference.
func (t *Ticket) Unassign() {
	t.AssigneeID = nil
	t.AssigneeName = nil
}

// SortWorkQueue orders tickets by priority rank, then oldest first.
func SortWorkQueue(tickets []Ticket) {
	sort.SliceStable(tickets, func(i, j int) bool {
		ri, rj := tickets[i].Priority.Rank(), tickets[j].Priority.Rank()
		if ri != rj {
			return ri < rj
		}
		if !tickets[i].CreatedAt.Equal(tickets[j].CreatedAt) {
			return tickets[i].CreatedAt.Before(tickets[j].CreatedAt)
		}
		return tickets[i].ID < tickets[j].ID
	})
}
