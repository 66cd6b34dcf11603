package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/policy"
	"github.com/spec-kit/helpdesk/internal/repository"
	apperrors "github.com/spec-kit/helpdesk/pkg/util"
)

// InventoryService manages IT assets.
type InventoryService struct {
	items repository.InventoryRepository
	users repository.UserRepository
}

// NewInventoryService constructs the service.
func NewInventoryService(items repository.InventoryRepository, users repository.UserRepository) *InventoryService {
	return &InventoryService{items: items, users: users}
}

// InventoryInput is the full set of writable asset fields.
type InventoryInput struct {
	Name         string
	Type         string
	SerialNumber *string
	Description  string
	PurchaseDate *time.Time
	Status       string
	AssigneeID   *int64
}

// List returns every asset for privileged actors and the caller's own
// assets otherwise.
func (s *InventoryService) List(ctx context.Context, actor domain.Actor) ([]domain.InventoryItem, error) {
	if policy.IsPrivileged(actor) {
		return s.items.List(ctx, nil)
	}
	id := actor.ID
	return s.items.List(ctx, &id)
}

// Create registers an asset.
func (s *InventoryService) Create(ctx context.Context, actor domain.Actor, input InventoryInput) (*domain.InventoryItem, error) {
	if err := policy.CanManageInventory(actor); err != nil {
		return nil, err
	}
	item, err := s.build(ctx, input)
	if err != nil {
		return nil, err
	}
	created, err := s.items.Create(ctx, item)
	if err != nil {
		return nil, mapInventoryWriteError(err)
	}
	return created, nil
}

// Update overwrites the writable fields of an asset.
func (s *InventoryService) Update(ctx context.Context, actor domain.Actor, id int64, input InventoryInput) (*domain.InventoryItem, error) {
	if err := policy.CanManageInventory(actor); err != nil {
		return nil, err
	}
	item, err := s.build(ctx, input)
	if err != nil {
		return nil, err
	}
	item.ID = id
	updated, err := s.items.Update(ctx, item)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("inventory item", map[string]any{"item_id": id})
		}
		return nil, mapInventoryWriteError(err)
	}
	return updated, nil
}

// Delete removes an asset.
func (s *InventoryService) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if err := policy.CanManageInventory(actor); err != nil {
		return err
	}
	if err := s.items.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("inventory item", map[string]any{"item_id": id})
		}
		return err
	}
	return nil
}

func (s *InventoryService) build(ctx context.Context, input InventoryInput) (*domain.InventoryItem, error) {
	details := map[string]any{}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		details["name"] = "is required"
	}
	kind := strings.TrimSpace(input.Type)
	if kind == "" {
		details["type"] = "is required"
	}
	status := domain.InventoryStatusAvailable
	if strings.TrimSpace(input.Status) != "" {
		parsed, err := domain.ParseInventoryStatus(input.Status)
		if err != nil {
			details["status"] = "must be one of AVAILABLE, IN_USE, MAINTENANCE"
		}
		status = parsed
	}
	if input.AssigneeID != nil {
		if _, err := s.users.GetByID(ctx, *input.AssigneeID); err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return nil, err
			}
			details["assignee_id"] = "must reference an existing user"
		}
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid inventory item", details)
	}

	item := &domain.InventoryItem{
		Name:         name,
		Type:         kind,
		Description:  strings.TrimSpace(input.Description),
		PurchaseDate: input.PurchaseDate,
		Status:       status,
		AssigneeID:   input.AssigneeID,
	}
	if input.SerialNumber != nil {
		item.SerialNumber = optionalString(*input.SerialNumber)
	}
	return item, nil
}

func mapInventoryWriteError(err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return apperrors.NewConflict("serial number already registered", nil)
	}
	if errors.Is(err, repository.ErrReferenced) {
		return apperrors.NewValidationError("invalid inventory item", map[string]any{
			"assignee_id": "must reference an existing user",
		})
	}
	return err
}
