package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/shelfcam/shelfcam-api/internal/api/http/handlers"
	"github.com/shelfcam/shelfcam-api/internal/auth"
	"github.com/shelfcam/shelfcam-api/internal/domain"
	"github.com/shelfcam/shelfcam-api/internal/ws"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Inventory      *handlers.InventoryHandler
	Shelves        *handlers.ShelvesHandler
	Alerts         *handlers.AlertsHandler
	Assignments    *handlers.AssignmentsHandler
	Detect         *handlers.DetectHandler
	AlertHub       *ws.Hub
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Root)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)

	managerOnly := []fiber.Handler{
		cfg.AuthMiddleware.Handle,
		auth.RequireRole(domain.RoleManager, domain.RoleAdmin),
	}
	anyStaff := []fiber.Handler{
		cfg.AuthMiddleware.Handle,
		auth.RequireRole(domain.RoleStaff, domain.RoleManager, domain.RoleAdmin),
	}

	inventory := app.Group("/inventory", managerOnly...)
	inventory.Get("/", cfg.Inventory.List)
	inventory.Post("/", cfg.Inventory.Create)
	inventory.Get("/categories/list", cfg.Inventory.Categories)
	inventory.Get("/:productNumber", cfg.Inventory.Get)
	inventory.Put("/:productNumber", cfg.Inventory.Update)
	inventory.Delete("/:productNumber", cfg.Inventory.Delete)

	shelves := app.Group("/shelves", managerOnly...)
	shelves.Get("/", cfg.Shelves.List)
	shelves.Post("/", cfg.Shelves.Create)
	shelves.Get("/categories/list", cfg.Shelves.Categories)
	shelves.Get("/:name", cfg.Shelves.Get)
	shelves.Put("/:name", cfg.Shelves.Update)
	shelves.Delete("/:name", cfg.Shelves.Delete)
	shelves.Patch("/:name/toggle-status", cfg.Shelves.ToggleStatus)

	alerts := app.Group("/alerts")
	alerts.Get("/active", append(anyStaff, cfg.Alerts.Active)...)
	alerts.Post("/:id/acknowledge", append(anyStaff, cfg.Alerts.Acknowledge)...)
	alerts.Post("/:id/resolve", append(anyStaff, cfg.Alerts.Resolve)...)
	alerts.Get("/statistics", append(managerOnly, cfg.Alerts.Statistics)...)
	alerts.Get("/:id/history", append(managerOnly, cfg.Alerts.History)...)

	assignments := app.Group("/assignments")
	assignments.Get("/me",
		cfg.AuthMiddleware.Handle,
		auth.RequireRole(domain.RoleStaff),
		cfg.Assignments.Mine,
	)
	assignments.Get("/", append(managerOnly, cfg.Assignments.List)...)
	assignments.Get("/dashboard", append(managerOnly, cfg.Assignments.Dashboard)...)
	assignments.Post("/", append(managerOnly, cfg.Assignments.Assign)...)
	assignments.Delete("/:id", append(managerOnly, cfg.Assignments.Unassign)...)
	assignments.Patch("/:id/transfer", append(managerOnly, cfg.Assignments.Transfer)...)

	app.Post("/detect", append(anyStaff, cfg.Detect.Detect)...)

	// Alert stream. Browsers cannot set headers on websocket upgrades, so
	// the token travels as a query parameter.
	app.Get("/ws/alerts",
		cfg.AuthMiddleware.HandleQueryToken,
		func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return fiber.ErrUpgradeRequired
		},
		websocket.New(cfg.AlertHub.Serve),
	)
}
