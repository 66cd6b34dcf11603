package dto

import "github.com/spec-kit/helpdesk/internal/domain"

// InventoryRequest carries every writable asset field.
type InventoryRequest struct {
	Name         string  `json:"name" validate:"required,max=120"`
	Type         string  `json:"type" validate:"required,max=60"`
	SerialNumber *string `json:"serial_number" validate:"omitempty,max=120"`
	Description  string  `json:"description" validate:"max=2000"`
	PurchaseDate *Date   `json:"purchase_date"`
	Status       string  `json:"status"`
	AssigneeID   *int64  `json:"assignee_id" validate:"omitempty,gt=0"`
}

// InventoryResponse represents an asset.
type InventoryResponse struct {
	ID           int64                  `json:"id"`
	Name         string                 `json:"name"`
	Type         string                 `json:"type"`
	SerialNumber *string                `json:"serial_number"`
	Description  string                 `json:"description"`
	PurchaseDate *Date                  `json:"purchase_date"`
	Status       domain.InventoryStatus `json:"status"`
	AssigneeID   *int64                 `json:"assignee_id"`
	AssigneeName *string                `json:"assignee_name"`
}
