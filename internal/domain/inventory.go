package domain

import (
	"fmt"
	"time"
)

// InventoryStatus tracks the availability of an asset.
type InventoryStatus string

const (
	InventoryStatusAvailable   InventoryStatus = "AVAILABLE"
	InventoryStatusInUse       InventoryStatus = "IN_USE"
	InventoryStatusMaintenance InventoryStatus = "MAINTENANCE"
)

// ParseInventoryStatus accepts canonical values and the legacy labels.
func ParseInventoryStatus(raw string) (InventoryStatus, error) {
	switch foldLabel(raw) {
	case "available", "disponivel":
		return InventoryStatusAvailable, nil
	case "inuse", "emuso":
		return InventoryStatusInUse, nil
	case "maintenance", "emmanutencao":
		return InventoryStatusMaintenance, nil
	}
	return "", fmt.Errorf("unknown inventory status %q", raw)
}

// InventoryItem is an IT asset optionally assigned to a user.
type InventoryItem struct {
	ID           int64
	Name         string
	Type         string
	SerialNumber *string
	Description  string
	PurchaseDate *time.Time
	Status       InventoryStatus
	AssigneeID   *int64
	AssigneeName *string
}
