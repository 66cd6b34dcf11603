package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// TicketFilter narrows ticket queries. Zero values do not filter.
type TicketFilter struct {
	CreatorID       *int64
	AssigneeID      *int64
	Statuses        []domain.TicketStatus
	ExcludeStatuses []domain.TicketStatus
	CreatedFrom     *time.Time
	CreatedBefore   *time.Time
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error)
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	Update(ctx context.Context, ticket *domain.Ticket) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context, filter TicketFilter) (int64, error)
	CountByStatus(ctx context.Context, filter TicketFilter) (map[domain.TicketStatus]int64, error)
	CountByDay(ctx context.Context, from, before time.Time) ([]domain.DailyCount, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketSelect = `
        SELECT t.id, t.title, t.description, t.status, t.priority,
               t.creator_id, COALESCE(creator.name, ''), t.assigned_to_id, assignee.name,
               t.created_at, t.closed_at
        FROM tickets t
        LEFT JOIN users creator ON creator.id = t.creator_id
        LEFT JOIN users assignee ON assignee.id = t.assigned_to_id`

// Create inserts the ticket and reads it back joined with user names inside
// one transaction. A failure after the insert rolls it back.
func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	const insert = `
        INSERT INTO tickets (title, description, status, priority, creator_id, assigned_to_id, closed_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id`

	var created *domain.Ticket
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var id int64
		if err := tx.QueryRow(ctx, insert,
			ticket.Title,
			ticket.Description,
			ticket.Status,
			ticket.Priority,
			ticket.CreatorID,
			ticket.AssigneeID,
			ticket.ClosedAt,
		).Scan(&id); err != nil {
			return mapPgError(err)
		}
		var err error
		created, err = fetchTicket(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	return fetchTicket(ctx, r.pool, id)
}

func fetchTicket(ctx context.Context, q querier, id int64) (*domain.Ticket, error) {
	ticket, err := scanTicket(q.QueryRow(ctx, ticketSelect+` WHERE t.id=$1`, id))
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

func (r *ticketRepository) List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	where, args := buildTicketWhere(filter)
	query := fmt.Sprintf(`%s WHERE %s ORDER BY t.created_at DESC, t.id DESC`, ticketSelect, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET status=$1, priority=$2, assigned_to_id=$3, closed_at=$4
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.Status,
		ticket.Priority,
		ticket.AssigneeID,
		ticket.ClosedAt,
		ticket.ID,
	)
	if err != nil {
		return mapPgError(err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes the ticket and its comments together.
func (r *ticketRepository) Delete(ctx context.Context, id int64) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM comments WHERE ticket_id=$1`, id); err != nil {
			return err
		}
		cmd, err := tx.Exec(ctx, `DELETE FROM tickets WHERE id=$1`, id)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
}

func (r *ticketRepository) Count(ctx context.Context, filter TicketFilter) (int64, error) {
	where, args := buildTicketWhere(filter)
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tickets t WHERE `+where, args...).Scan(&count)
	return count, err
}

func (r *ticketRepository) CountByStatus(ctx context.Context, filter TicketFilter) (map[domain.TicketStatus]int64, error) {
	where, args := buildTicketWhere(filter)
	rows, err := r.pool.Query(ctx,
		`SELECT t.status, COUNT(*) FROM tickets t WHERE `+where+` GROUP BY t.status`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.TicketStatus]int64)
	for rows.Next() {
		var status domain.TicketStatus
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] += n
	}
	return counts, rows.Err()
}

// CountByDay groups tickets created in [from, before) by UTC calendar day.
// Days without tickets are absent from the result.
func (r *ticketRepository) CountByDay(ctx context.Context, from, before time.Time) ([]domain.DailyCount, error) {
	const query = `
        SELECT (created_at AT TIME ZONE 'UTC')::date AS day, COUNT(*)
        FROM tickets
        WHERE created_at >= $1 AND created_at < $2
        GROUP BY day
        ORDER BY day ASC`
	rows, err := r.pool.Query(ctx, query, from, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DailyCount
	for rows.Next() {
		var entry domain.DailyCount
		if err := rows.Scan(&entry.Date, &entry.Count); err != nil {
			return nil, err
		}
		entry.Date = entry.Date.UTC()
		result = append(result, entry)
	}
	return result, rows.Err()
}

func buildTicketWhere(filter TicketFilter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CreatorID != nil {
		args = append(args, *filter.CreatorID)
		clauses = append(clauses, fmt.Sprintf("t.creator_id=$%d", len(args)))
	}
	if filter.AssigneeID != nil {
		args = append(args, *filter.AssigneeID)
		clauses = append(clauses, fmt.Sprintf("t.assigned_to_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		args = append(args, statusStrings(filter.Statuses))
		clauses = append(clauses, fmt.Sprintf("t.status = ANY($%d)", len(args)))
	}
	if len(filter.ExcludeStatuses) > 0 {
		args = append(args, statusStrings(filter.ExcludeStatuses))
		clauses = append(clauses, fmt.Sprintf("NOT (t.status = ANY($%d))", len(args)))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("t.created_at >= $%d", len(args)))
	}
	if filter.CreatedBefore != nil {
		args = append(args, *filter.CreatedBefore)
		clauses = append(clauses, fmt.Sprintf("t.created_at < $%d", len(args)))
	}
	return strings.Join(clauses, " AND "), args
}

func statusStrings(statuses []domain.TicketStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := row.Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Status,
		&ticket.Priority,
		&ticket.CreatorID,
		&ticket.CreatorName,
		&ticket.AssigneeID,
		&ticket.AssigneeName,
		&ticket.CreatedAt,
		&ticket.ClosedAt,
	); err != nil {
		return nil, err
	}
	// An assignee id without a matching user is a dangling weak reference.
	if ticket.AssigneeID != nil && ticket.AssigneeName == nil {
		ticket.Unassign()
	}
	return &ticket, nil
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	result := []domain.Ticket{}
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ticket)
	}
	return result, rows.Err()
}
