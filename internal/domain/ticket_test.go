package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTicketStatusLabels(t *testing.T) {
	cases := map[string]TicketStatus{
		"OPEN":         TicketStatusOpen,
		"Aberto":       TicketStatusOpen,
		"in_progress":  TicketStatusInProgress,
		"Em Andamento": TicketStatusInProgress,
		"pendente":     TicketStatusPending,
		"Resolvido":    TicketStatusResolved,
		"closed":       TicketStatusClosed,
		" Fechado ":    TicketStatusClosed,
	}
	for raw, want := range cases {
		got, err := ParseTicketStatus(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseTicketStatus("archived")
	assert.Error(t, err)
}

func TestParseTicketPriorityLabels(t *testing.T) {
	cases := map[string]TicketPriority{
		"low":     TicketPriorityLow,
		"Média":   TicketPriorityMedium,
		"ALTA":    TicketPriorityHigh,
		"Crítica": TicketPriorityCritical,
	}
	for raw, want := range cases {
		got, err := ParseTicketPriority(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseTicketPriority("")
	assert.Error(t, err)
}

func TestPriorityRank(t *testing.T) {
	assert.Equal(t, 1, TicketPriorityCritical.Rank())
	assert.Equal(t, 2, TicketPriorityHigh.Rank())
	assert.Equal(t, 3, TicketPriorityMedium.Rank())
	assert.Equal(t, 4, TicketPriorityLow.Rank())
	assert.Equal(t, 5, TicketPriority("Urgente").Rank())
}

func TestNewTicketAssignment(t *testing.T) {
	tech := NewTicket(NewActor(2, RoleTechnician), "t", "d", TicketPriorityLow)
	require.NotNil(t, tech.AssigneeID)
	assert.Equal(t, tech.CreatorID, *tech.AssigneeID)

	admin := NewTicket(NewActor(1, RoleAdmin), "t", "d", TicketPriorityLow)
	require.NotNil(t, admin.AssigneeID)
	assert.Equal(t, int64(1), *admin.AssigneeID)

	user := NewTicket(NewActor(3, RoleUser), "t", "d", TicketPriorityLow)
	assert.Nil(t, user.AssigneeID)
	assert.Equal(t, TicketStatusOpen, user.Status)
	assert.Nil(t, user.ClosedAt)
}

func TestApplyStatusClosedAt(t *testing.T) {
	first := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	later := first.Add(24 * time.Hour)
	ticket := &Ticket{Status: TicketStatusOpen}

	ticket.ApplyStatus(TicketStatusResolved, first)
	require.NotNil(t, ticket.ClosedAt)
	assert.Equal(t, first, *ticket.ClosedAt)

	ticket.ApplyStatus(TicketStatusClosed, later)
	assert.Equal(t, first, *ticket.ClosedAt)

	ticket.ApplyStatus(TicketStatusResolved, later)
	assert.Equal(t, first, *ticket.ClosedAt)

	ticket.ApplyStatus(TicketStatusPending, later)
	assert.Nil(t, ticket.ClosedAt)

	ticket.ApplyStatus(TicketStatusClosed, later)
	assert.Equal(t, later, *ticket.ClosedAt)
}

func TestSortWorkQueue(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tickets := []Ticket{
		{ID: 1, Priority: TicketPriorityHigh, CreatedAt: base},
		{ID: 2, Priority: TicketPriorityCritical, CreatedAt: base.Add(2 * time.Hour)},
		{ID: 3, Priority: TicketPriorityCritical, CreatedAt: base.Add(time.Hour)},
		{ID: 4, Priority: TicketPriority("legacy"), CreatedAt: base.Add(-time.Hour)},
		{ID: 5, Priority: TicketPriorityLow, CreatedAt: base},
		{ID: 6, Priority: TicketPriorityLow, CreatedAt: base},
	}

	SortWorkQueue(tickets)

	ids := []int64{}
	for _, ticket := range tickets {
		ids = append(ids, ticket.ID)
	}
	assert.Equal(t, []int64{3, 2, 1, 5, 6, 4}, ids)
}

func TestParseRole(t *testing.T) {
	for raw, want := range map[string]Role{"admin": RoleAdmin, "Technician": RoleTechnician, "tech": RoleTechnician, "user": RoleUser} {
		got, err := ParseRole(raw)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseRole("superuser")
	assert.Error(t, err)

	assert.True(t, RoleAdmin.Privileged())
	assert.True(t, RoleTechnician.Privileged())
	assert.False(t, RoleUser.Privileged())
	assert.False(t, Role("tech").Valid())
}
