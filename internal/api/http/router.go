package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-console/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-console/internal/auth"
	"github.com/spec-kit/helpdesk-console/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Session        *handlers.SessionHandler
	Tickets        *handlers.TicketsHandler
	Queue          *handlers.QueueHandler
	Reassign       *handlers.ReassignHandler
	MasterData     *handlers.MasterDataHandler
	AuthMiddleware fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/session", cfg.Session.Login)

	authed := app.Group("", cfg.AuthMiddleware)
	authed.Get("/session", cfg.Session.Me)
	authed.Delete("/session", cfg.Session.Logout)

	tickets := authed.Group("/tickets")
	tickets.Get("/", auth.RequireAdmin(), cfg.Tickets.List)
	tickets.Post("/", auth.RequireRole(domain.RoleStudent), cfg.Tickets.Create)
	tickets.Get("/:id", auth.RequireAdmin(), cfg.Tickets.Get)
	tickets.Patch("/:id", auth.RequireAdmin(), cfg.Tickets.Update)
	tickets.Delete("/:id", auth.RequireAdmin(), cfg.Tickets.Delete)
	tickets.Post("/:id/accept", auth.RequireAdmin(), cfg.Tickets.Accept)
	tickets.Post("/:id/deny", auth.RequireAdmin(), cfg.Tickets.Deny)
	tickets.Post("/:id/resolve", auth.RequireAdmin(), cfg.Tickets.Resolve)
	tickets.Post("/:id/assign", auth.RequireAdmin(), cfg.Tickets.Assign)
	tickets.Get("/:id/split-plan", auth.RequireAdmin(), cfg.Tickets.SplitPlan)
	tickets.Post("/:id/split", auth.RequireAdmin(), cfg.Tickets.Split)

	queue := authed.Group("/queue", auth.RequireStaff())
	queue.Get("/", cfg.Queue.List)
	queue.Get("/:id", cfg.Queue.Get)
	queue.Post("/:id/accept", cfg.Queue.Accept)
	queue.Post("/:id/deny", cfg.Queue.Deny)
	queue.Post("/:id/resolve", cfg.Queue.Resolve)

	reassign := authed.Group("/reassign-requests")
	reassign.Post("/", auth.RequireStaff(), cfg.Reassign.Create)
	reassign.Get("/", auth.RequireAdmin(), cfg.Reassign.List)
	reassign.Get("/:id/context", auth.RequireAdmin(), cfg.Reassign.Context)
	reassign.Post("/:id/review", auth.RequireAdmin(), cfg.Reassign.Review)

	authed.Get("/staff", auth.RequireStaff(), cfg.MasterData.Staff)

	masterData := authed.Group("/master-data", auth.RequireAdmin())
	masterData.Get("/:resource", cfg.MasterData.List)
	masterData.Post("/:resource", cfg.MasterData.Create)
	masterData.Get("/:resource/:id", cfg.MasterData.Get)
	masterData.Patch("/:resource/:id", cfg.MasterData.Update)
	masterData.Delete("/:resource/:id", cfg.MasterData.Delete)
}
