package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/la-capital/crm-service/internal/api/http/handlers"
	"github.com/la-capital/crm-service/internal/auth"
	"github.com/la-capital/crm-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	TwoFactor      *handlers.TwoFactorHandler
	ClientAuth     *handlers.ClientAuthHandler
	Users          *handlers.UsersHandler
	Clients        *handlers.ClientsHandler
	Products       *handlers.ProductsHandler
	Campaigns      *handlers.CampaignsHandler
	Assets         *handlers.AssetsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/verify-2fa", cfg.Auth.VerifyTwoFactor)

	clientAuth := api.Group("/client-auth")
	clientAuth.Post("/register", cfg.ClientAuth.Register)
	clientAuth.Post("/login", cfg.ClientAuth.Login)

	twoFactor := api.Group("/2fa", cfg.AuthMiddleware.Handle, auth.RequireStaff())
	twoFactor.Post("/setup", cfg.TwoFactor.Setup)
	twoFactor.Post("/verify", cfg.TwoFactor.Verify)

	users := api.Group("/users", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdministrador))
	users.Get("/", cfg.Users.List)
	users.Get("/:id", cfg.Users.Get)
	users.Put("/:id", cfg.Users.Update)
	users.Delete("/:id", cfg.Users.Delete)

	clients := api.Group("/clients", cfg.AuthMiddleware.Handle, auth.RequireStaff())
	clients.Get("/", cfg.Clients.List)
	clients.Get("/:id", cfg.Clients.Get)
	clients.Put("/:id", cfg.Clients.Update)
	clients.Delete("/:id", cfg.Clients.Delete)
	clients.Post("/:id/points", cfg.Clients.AdjustPoints)

	// Catalog reads are public for the AR viewer; mutations are admin-only.
	products := api.Group("/products")
	products.Get("/", cfg.Products.List)
	products.Get("/:id", cfg.Products.Get)
	products.Post("/", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdministrador), cfg.Products.Create)
	products.Put("/:id", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdministrador), cfg.Products.Update)
	products.Delete("/:id", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdministrador), cfg.Products.Delete)

	campaigns := api.Group("/campaigns", cfg.AuthMiddleware.Handle, auth.RequireStaff())
	campaigns.Get("/", cfg.Campaigns.List)
	campaigns.Get("/:id", cfg.Campaigns.Get)
	campaigns.Post("/", cfg.Campaigns.Create)
	campaigns.Put("/:id", cfg.Campaigns.Update)
	campaigns.Delete("/:id", cfg.Campaigns.Delete)
	campaigns.Post("/:id/send", cfg.Campaigns.Send)

	assets := api.Group("/assets", cfg.AuthMiddleware.Handle, auth.RequireStaff())
	assets.Get("/", cfg.Assets.List)
	assets.Post("/", auth.RequireRole(domain.RoleAdministrador), cfg.Assets.Upload)
	assets.Delete("/:id", auth.RequireRole(domain.RoleAdministrador), cfg.Assets.Delete)
}
