package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/dto"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/service"
)

// Inventory is the asset registry surface.
type Inventory interface {
	List(ctx context.Context, actor domain.Actor) ([]domain.InventoryItem, error)
	Create(ctx context.Context, actor domain.Actor, input service.InventoryInput) (*domain.InventoryItem, error)
	Update(ctx context.Context, actor domain.Actor, id int64, input service.InventoryInput) (*domain.InventoryItem, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
}

// InventoryHandler manages asset endpoints.
type InventoryHandler struct {
	items Inventory
}

// NewInventoryHandler constructs handler.
func NewInventoryHandler(items Inventory) *InventoryHandler {
	return &InventoryHandler{items: items}
}

// ListItems GET /inventory.
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	items, err := h.items.List(c.UserContext(), actor)
	if err != nil {
		return err
	}
	resp := make([]dto.InventoryResponse, 0, len(items))
	for i := range items {
		resp = append(resp, inventoryResponse(&items[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// CreateItem POST /inventory.
func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	var req dto.InventoryRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	item, err := h.items.Create(c.UserContext(), actor, inventoryInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": inventoryResponse(item)})
}

// UpdateItem PUT /inventory/:id.
func (h *InventoryHandler) UpdateItem(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "item_id")
	if err != nil {
		return err
	}
	var req dto.InventoryRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	item, err := h.items.Update(c.UserContext(), actor, id, inventoryInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": inventoryResponse(item)})
}

// DeleteItem DELETE /inventory/:id.
func (h *InventoryHandler) DeleteItem(c *fiber.Ctx) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "item_id")
	if err != nil {
		return err
	}
	if err := h.items.Delete(c.UserContext(), actor, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func inventoryInput(req dto.InventoryRequest) service.InventoryInput {
	return service.InventoryInput{
		Name:         req.Name,
		Type:         req.Type,
		SerialNumber: req.SerialNumber,
		Description:  req.Description,
		PurchaseDate: req.PurchaseDate.Ptr(),
		Status:       req.Status,
		AssigneeID:   req.AssigneeID,
	}
}
