package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk/internal/domain"
)

func TestBuildTicketWhere(t *testing.T) {
	creator, assignee := int64(3), int64(2)
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	before := from.AddDate(0, 0, 3)

	tests := []struct {
		name       string
		filter     TicketFilter
		wantClause string
		wantArgs   []any
	}{
		{
			name:       "unscoped",
			filter:     TicketFilter{},
			wantClause: "1=1",
			wantArgs:   []any{},
		},
		{
			name:       "ordinary user scope",
			filter:     TicketFilter{CreatorID: &creator},
			wantClause: "1=1 AND t.creator_id=$1",
			wantArgs:   []any{creator},
		},
		{
			name: "personal queue",
			filter: TicketFilter{
				AssigneeID:      &assignee,
				ExcludeStatuses: []domain.TicketStatus{domain.TicketStatusResolved, domain.TicketStatusClosed},
			},
			wantClause: "1=1 AND t.assigned_to_id=$1 AND NOT (t.status = ANY($2))",
			wantArgs:   []any{assignee, []string{"RESOLVED", "CLOSED"}},
		},
		{
			name: "scoped status bucket",
			filter: TicketFilter{
				CreatorID: &creator,
				Statuses:  []domain.TicketStatus{domain.TicketStatusResolved, domain.TicketStatusClosed},
			},
			wantClause: "1=1 AND t.creator_id=$1 AND t.status = ANY($2)",
			wantArgs:   []any{creator, []string{"RESOLVED", "CLOSED"}},
		},
		{
			name:       "day window is half open",
			filter:     TicketFilter{CreatedFrom: &from, CreatedBefore: &before},
			wantClause: "1=1 AND t.created_at >= $1 AND t.created_at < $2",
			wantArgs:   []any{from, before},
		},
		{
			name: "every filter numbers placeholders in order",
			filter: TicketFilter{
				CreatorID:       &creator,
				AssigneeID:      &assignee,
				Statuses:        []domain.TicketStatus{domain.TicketStatusOpen},
				ExcludeStatuses: []domain.TicketStatus{domain.TicketStatusClosed},
				CreatedFrom:     &from,
				CreatedBefore:   &before,
			},
			wantClause: "1=1 AND t.creator_id=$1 AND t.assigned_to_id=$2 AND t.status = ANY($3)" +
				" AND NOT (t.status = ANY($4)) AND t.created_at >= $5 AND t.created_at < $6",
			wantArgs: []any{creator, assignee, []string{"OPEN"}, []string{"CLOSED"}, from, before},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clause, args := buildTicketWhere(tc.filter)
			assert.Equal(t, tc.wantClause, clause)
			assert.Equal(t, tc.wantArgs, args)
		})
	}
}

type stubRow struct {
	values []any
}

func (r stubRow) Scan(dest ...any) error {
	for i, d := range dest {
		switch target := d.(type) {
		case *int64:
			*target = r.values[i].(int64)
		case *string:
			*target = r.values[i].(string)
		case *domain.TicketStatus:
			*target = r.values[i].(domain.TicketStatus)
		case *domain.TicketPriority:
			*target = r.values[i].(domain.TicketPriority)
		case **int64:
			*target, _ = r.values[i].(*int64)
		case **string:
			*target, _ = r.values[i].(*string)
		case *time.Time:
			*target = r.values[i].(time.Time)
		case **time.Time:
			*target, _ = r.values[i].(*time.Time)
		}
	}
	return nil
}

func TestScanTicketDropsDanglingAssignee(t *testing.T) {
	created := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	assigneeID := int64(7)
	name := "Tess Tech"

	row := func(assigneeName *string) stubRow {
		return stubRow{values: []any{
			int64(1), "Printer", "jammed", domain.TicketStatusOpen, domain.TicketPriorityHigh,
			int64(3), "Alice", &assigneeID, assigneeName, created, (*time.Time)(nil),
		}}
	}

	dangling, err := scanTicket(row(nil))
	require.NoError(t, err)
	assert.Nil(t, dangling.AssigneeID)
	assert.Nil(t, dangling.AssigneeName)

	assigned, err := scanTicket(row(&name))
	require.NoError(t, err)
	require.NotNil(t, assigned.AssigneeID)
	assert.Equal(t, assigneeID, *assigned.AssigneeID)
	assert.Equal(t, "Tess Tech", *assigned.AssigneeName)
}
