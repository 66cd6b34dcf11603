package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/dto"
	"github.com/spec-kit/helpdesk/internal/domain"
)

// Dashboard provides global KPIs and the daily creation series.
type Dashboard interface {
	KPIs(ctx context.Context) (domain.KPIs, error)
	DailySeries(ctx context.Context, startRaw, endRaw string) (domain.DateRange, []domain.DailyCount, error)
}

// DashboardHandler serves dashboard reports.
type DashboardHandler struct {
	reports Dashboard
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(reports Dashboard) *DashboardHandler {
	return &DashboardHandler{reports: reports}
}

// KPIs GET /dashboard/kpis.
func (h *DashboardHandler) KPIs(c *fiber.Ctx) error {
	kpis, err := h.reports.KPIs(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.KPIResponse{
		Open:       kpis.Open,
		InProgress: kpis.InProgress,
		Pending:    kpis.Pending,
		Resolved:   kpis.Resolved,
	}})
}

// DailyReport GET /dashboard/reports/daily?startDate=&endDate=.
func (h *DashboardHandler) DailyReport(c *fiber.Ctx) error {
	window, series, err := h.reports.DailySeries(c.UserContext(), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		return err
	}
	points := make([]dto.DailyPoint, 0, len(series))
	for _, day := range series {
		points = append(points, dto.DailyPoint{Date: dto.Date{Time: day.Date}, Count: day.Count})
	}
	return c.JSON(fiber.Map{"data": dto.DailySeriesResponse{
		StartDate: dto.Date{Time: window.Start},
		EndDate:   dto.Date{Time: window.End},
		Series:    points,
	}})
}
