package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// CommentRepository manages ticket discussion threads. Comments are
// append-only; there is no update or delete.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	ListByTicket(ctx context.Context, ticketID int64) ([]domain.Comment, error)
}

type commentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository builds repository.
func NewCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &commentRepository{pool: pool}
}

// Create inserts and returns the comment joined with its author's name in a
// single statement.
func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	const query = `
        WITH inserted AS (
            INSERT INTO comments (ticket_id, author_id, content)
            VALUES ($1,$2,$3)
            RETURNING id, ticket_id, author_id, content, created_at
        )
        SELECT i.id, i.ticket_id, i.author_id, COALESCE(u.name, ''), i.content, i.created_at
        FROM inserted i
        LEFT JOIN users u ON u.id = i.author_id`

	var created domain.Comment
	if err := r.pool.QueryRow(ctx, query,
		comment.TicketID,
		comment.AuthorID,
		comment.Content,
	).Scan(
		&created.ID,
		&created.TicketID,
		&created.AuthorID,
		&created.AuthorName,
		&created.Content,
		&created.CreatedAt,
	); err != nil {
		return nil, mapPgError(err)
	}
	return &created, nil
}

func (r *commentRepository) ListByTicket(ctx context.Context, ticketID int64) ([]domain.Comment, error) {
	const query = `
        SELECT c.id, c.ticket_id, c.author_id, COALESCE(u.name, ''), c.content, c.created_at
        FROM comments c
        LEFT JOIN users u ON u.id = c.author_id
        WHERE c.ticket_id=$1
        ORDER BY c.created_at ASC, c.id ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Comment{}
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(
			&c.ID,
			&c.TicketID,
			&c.AuthorID,
			&c.AuthorName,
			&c.Content,
			&c.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}
