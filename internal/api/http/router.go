package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/eandradeg/alltelapp/internal/api/http/handlers"
	"github.com/eandradeg/alltelapp/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Accounts       *handlers.AccountsHandler
	Clients        *handlers.ClientsHandler
	Incidents      *handlers.IncidentsHandler
	Localities     *handlers.LocalitiesHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Accounts.Register)
	authGroup.Post("/login", cfg.Accounts.Login)
	authGroup.Post("/password/reset/request", cfg.Accounts.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Accounts.ConfirmPasswordReset)
	authGroup.Post("/password/change", cfg.AuthMiddleware.Handle, auth.RequireAccount(), cfg.Accounts.ChangePassword)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAccount())

	clients := protected.Group("/clients")
	clients.Post("", cfg.Clients.CreateClient)
	clients.Get("", cfg.Clients.ListClients)
	clients.Get("/:id", cfg.Clients.GetClient)
	clients.Put("/:id", cfg.Clients.UpdateClient)
	clients.Post("/:id/toggle-status", cfg.Clients.ToggleClientStatus)
	clients.Delete("/:id", cfg.Clients.DeleteClient)

	incidents := protected.Group("/incidents")
	incidents.Post("", cfg.Incidents.RegisterIncident)
	incidents.Get("", cfg.Incidents.ListIncidents)
	incidents.Get("/claim-catalog", cfg.Incidents.ClaimCatalog)
	incidents.Get("/pending/:item", cfg.Incidents.GetPendingIncident)
	incidents.Put("/pending/:item/solution", cfg.Incidents.SaveSolution)
	incidents.Post("/pending/:item/finalize", cfg.Incidents.FinalizeIncident)

	localities := protected.Group("/localities")
	localities.Get("/provinces", cfg.Localities.Provinces)
	localities.Get("/provinces/:provincia/cantons", cfg.Localities.Cantons)

	reports := protected.Group("/reports")
	reports.Get("/incidents", cfg.Reports.Rows)
	reports.Get("/incidents/export", cfg.Reports.ExportExcel)
	reports.Get("/summary", cfg.Reports.Summary)
}
