package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// InventoryRepository persists IT assets.
type InventoryRepository interface {
	Create(ctx context.Context, item *domain.InventoryItem) (*domain.InventoryItem, error)
	Update(ctx context.Context, item *domain.InventoryItem) (*domain.InventoryItem, error)
	GetByID(ctx context.Context, id int64) (*domain.InventoryItem, error)
	List(ctx context.Context, assigneeID *int64) ([]domain.InventoryItem, error)
	Delete(ctx context.Context, id int64) error
}

type inventoryRepository struct {
	pool *pgxpool.Pool
}

// NewInventoryRepository builds repository.
func NewInventoryRepository(pool *pgxpool.Pool) InventoryRepository {
	return &inventoryRepository{pool: pool}
}

func (r *inventoryRepository) Create(ctx context.Context, item *domain.InventoryItem) (*domain.InventoryItem, error) {
	const query = `
        WITH i AS (
            INSERT INTO inventory_items (name, type, serial_number, description, purchase_date, status, assigned_to_id)
            VALUES ($1,$2,$3,$4,$5,$6,$7)
            RETURNING *
        )
        SELECT i.id, i.name, i.type, i.serial_number, i.description, i.purchase_date, i.status,
               i.assigned_to_id, u.name
        FROM i
        LEFT JOIN users u ON u.id = i.assigned_to_id`
	created, err := scanInventoryItem(r.pool.QueryRow(ctx, query,
		item.Name,
		item.Type,
		item.SerialNumber,
		item.Description,
		item.PurchaseDate,
		item.Status,
		item.AssigneeID,
	))
	if err != nil {
		return nil, mapPgError(err)
	}
	return created, nil
}

func (r *inventoryRepository) Update(ctx context.Context, item *domain.InventoryItem) (*domain.InventoryItem, error) {
	const query = `
        WITH i AS (
            UPDATE inventory_items SET name=$1, type=$2, serial_number=$3, description=$4,
                purchase_date=$5, status=$6, assigned_to_id=$7
            WHERE id=$8
            RETURNING *
        )
        SELECT i.id, i.name, i.type, i.serial_number, i.description, i.purchase_date, i.status,
               i.assigned_to_id, u.name
        FROM i
        LEFT JOIN users u ON u.id = i.assigned_to_id`
	updated, err := scanInventoryItem(r.pool.QueryRow(ctx, query,
		item.Name,
		item.Type,
		item.SerialNumber,
		item.Description,
		item.PurchaseDate,
		item.Status,
		item.AssigneeID,
		item.ID,
	))
	if err != nil {
		return nil, mapPgError(err)
	}
	return updated, nil
}

func (r *inventoryRepository) GetByID(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	const query = `
        SELECT i.id, i.name, i.type, i.serial_number, i.description, i.purchase_date, i.status,
               i.assigned_to_id, u.name
        FROM inventory_items i
        LEFT JOIN users u ON u.id = i.assigned_to_id
        WHERE i.id=$1`
	return scanInventoryItem(r.pool.QueryRow(ctx, query, id))
}

func (r *inventoryRepository) List(ctx context.Context, assigneeID *int64) ([]domain.InventoryItem, error) {
	query := `
        SELECT i.id, i.name, i.type, i.serial_number, i.description, i.purchase_date, i.status,
               i.assigned_to_id, u.name
        FROM inventory_items i
        LEFT JOIN users u ON u.id = i.assigned_to_id`
	args := []any{}
	if assigneeID != nil {
		query += ` WHERE i.assigned_to_id=$1`
		args = append(args, *assigneeID)
	}
	query += ` ORDER BY i.name ASC, i.id ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.InventoryItem{}
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *item)
	}
	return result, rows.Err()
}

func (r *inventoryRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM inventory_items WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanInventoryItem(row pgx.Row) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	if err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Type,
		&item.SerialNumber,
		&item.Description,
		&item.PurchaseDate,
		&item.Status,
		&item.AssigneeID,
		&item.AssigneeName,
	); err != nil {
		return nil, err
	}
	return &item, nil
}
