package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Sessions       *handlers.SessionsHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Dashboard      *handlers.DashboardHandler
	Inventory      *handlers.InventoryHandler
	AuthMiddleware *auth.AuthMiddleware
	Enforcer       *auth.Enforcer
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	app.Post("/sessions", cfg.Sessions.Login)
	app.Post("/register", cfg.Sessions.Register)

	protected := app.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/me", cfg.Sessions.Me)

	can := cfg.Enforcer.RequirePermission

	tickets := protected.Group("/tickets")
	tickets.Get("/", can(auth.ResourceTickets, auth.ActionRead), cfg.Tickets.ListTickets)
	tickets.Post("/", can(auth.ResourceTickets, auth.ActionWrite), cfg.Tickets.CreateTicket)
	tickets.Get("/personal", can(auth.ResourceTickets, auth.ActionRead), cfg.Tickets.PersonalQueue)
	tickets.Get("/stats", can(auth.ResourceReports, auth.ActionRead), cfg.Tickets.Stats)
	tickets.Get("/:id", can(auth.ResourceTickets, auth.ActionRead), cfg.Tickets.GetTicket)
	tickets.Put("/:id", can(auth.ResourceTickets, auth.ActionWrite), cfg.Tickets.UpdateTicket)
	tickets.Patch("/:id", can(auth.ResourceTickets, auth.ActionWrite), cfg.Tickets.UpdateTicket)
	tickets.Delete("/:id", can(auth.ResourceTickets, auth.ActionDelete), cfg.Tickets.DeleteTicket)
	tickets.Post("/:id/comments", can(auth.ResourceComments, auth.ActionWrite), cfg.Tickets.AddComment)

	dashboard := protected.Group("/dashboard", can(auth.ResourceReports, auth.ActionRead))
	dashboard.Get("/kpis", cfg.Dashboard.KPIs)
	dashboard.Get("/reports/daily", cfg.Dashboard.DailyReport)

	users := protected.Group("/users")
	users.Get("/", can(auth.ResourceUsers, auth.ActionRead), cfg.Users.ListUsers)
	users.Post("/", can(auth.ResourceUsers, auth.ActionWrite), cfg.Users.CreateUser)
	users.Put("/:id", can(auth.ResourceUsers, auth.ActionWrite), cfg.Users.UpdateUser)
	users.Patch("/:id", can(auth.ResourceUsers, auth.ActionWrite), cfg.Users.UpdateUser)
	users.Delete("/:id", can(auth.ResourceUsers, auth.ActionDelete), cfg.Users.DeleteUser)

	inventory := protected.Group("/inventory")
	inventory.Get("/", can(auth.ResourceInventory, auth.ActionRead), cfg.Inventory.ListItems)
	inventory.Post("/", can(auth.ResourceInventory, auth.ActionWrite), cfg.Inventory.CreateItem)
	inventory.Put("/:id", can(auth.ResourceInventory, auth.ActionWrite), cfg.Inventory.UpdateItem)
	inventory.Delete("/:id", can(auth.ResourceInventory, auth.ActionDelete), cfg.Inventory.DeleteItem)
}
