package handlers

import (
	"github.com/spec-kit/helpdesk/internal/api/dto"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/render"
)

func ticketResponse(t *domain.Ticket, r render.Renderer) dto.TicketResponse {
	resp := dto.TicketResponse{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		Status:       t.Status,
		Priority:     t.Priority,
		CreatorID:    t.CreatorID,
		CreatorName:  t.CreatorName,
		AssigneeID:   t.AssigneeID,
		AssigneeName: t.AssigneeName,
		CreatedAt:    t.CreatedAt.UTC(),
	}
	if t.ClosedAt != nil {
		closed := t.ClosedAt.UTC()
		resp.ClosedAt = &closed
	}
	if r != nil {
		if html, err := r.HTML(t.Description); err == nil {
			resp.DescriptionHTML = html
		}
	}
	return resp
}

func ticketList(tickets []domain.Ticket) []dto.TicketResponse {
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i], nil))
	}
	return items
}

func commentResponse(c *domain.Comment, r render.Renderer) dto.CommentResponse {
	resp := dto.CommentResponse{
		ID:         c.ID,
		TicketID:   c.TicketID,
		AuthorID:   c.AuthorID,
		AuthorName: c.AuthorName,
		Content:    c.Content,
		CreatedAt:  c.CreatedAt.UTC(),
	}
	if r != nil {
		if html, err := r.HTML(c.Content); err == nil {
			resp.ContentHTML = html
		}
	}
	return resp
}

func userResponse(u *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		Status:        u.Status,
		CPF:           u.CPF,
		Phone:         u.Phone,
		AdmissionDate: dto.DatePtr(u.AdmissionDate),
		Position:      u.Position,
		Department:    u.Department,
		CreatedAt:     u.CreatedAt.UTC(),
	}
}

func inventoryResponse(item *domain.InventoryItem) dto.InventoryResponse {
	return dto.InventoryResponse{
		ID:           item.ID,
		Name:         item.Name,
		Type:         item.Type,
		SerialNumber: item.SerialNumber,
		Description:  item.Description,
		PurchaseDate: dto.DatePtr(item.PurchaseDate),
		Status:       item.Status,
		AssigneeID:   item.AssigneeID,
		AssigneeName: item.AssigneeName,
	}
}
