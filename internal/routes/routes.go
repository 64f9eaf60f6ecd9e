package routes

import (
	"time"

	"github.com/crimpd/crimpd-backend/internal/config"
	"github.com/crimpd/crimpd-backend/internal/handlers"
	"github.com/crimpd/crimpd-backend/internal/metrics"
	"github.com/crimpd/crimpd-backend/internal/middleware"
	"github.com/crimpd/crimpd-backend/internal/models"
	"github.com/crimpd/crimpd-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	Health      *handlers.HealthHandler
	Gym         *handlers.GymHandler
	Route       *handlers.RouteHandler
	Stats       *handlers.StatsHandler
	Staff       *handlers.StaffHandler
	Interaction *handlers.InteractionHandler
}

// Setup mounts all endpoints. Gym-scoped paths declare their gate
// config here, so the permission surface of the whole app reads off
// this file. Static paths are registered before the /:gym wildcard.
func Setup(app *fiber.App, cfg *config.Config, auth *services.AuthService, gate *middleware.Gate, h *Handlers) {
	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)
	api.Post("/auth/refresh", h.Auth.Refresh)
	api.Post("/auth/logout", middleware.JWTProtected(cfg), middleware.LoadUser(auth), h.Auth.Logout)
	api.Get("/me", middleware.JWTProtected(cfg), middleware.LoadUser(auth), h.Auth.Me)

	// Gym directory and creation
	app.Get("/gyms", h.Gym.List)
	app.Post("/gyms", middleware.JWTProtected(cfg), middleware.LoadUser(auth), h.Gym.Create)

	public := middleware.GateConfig{}
	withRoute := middleware.GateConfig{ResolveRoute: true}
	staffLevel := middleware.GateConfig{Threshold: middleware.Level(models.LevelStaff)}
	setterLevel := middleware.GateConfig{Threshold: middleware.Level(models.LevelSetter)}
	ownerLevel := middleware.GateConfig{Threshold: middleware.Level(models.LevelOwner)}

	// Login is gym-scoped and rate limited harder than the rest:
	// 10 req/min per IP.
	loginLimiter := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	app.Post("/:gym/login", loginLimiter, gate.Require(public), h.Auth.Login)

	// Public gym surface
	app.Get("/:gym", gate.Require(public), h.Gym.Page)
	app.Get("/:gym/routes", gate.Require(public), h.Route.List)
	app.Get("/:gym/routes/:route", gate.Require(withRoute), h.Route.Page)
	app.Get("/:gym/routes/:route/sends", gate.Require(withRoute), h.Route.Sends)

	// Interaction mutations; authentication and tenant affinity are
	// checked in the handler, anonymous and cross-tenant both 404.
	app.Post("/:gym/action/:action", gate.Require(public), h.Interaction.GymAction)
	app.Post("/:gym/routes/:route/action/:action", gate.Require(withRoute), h.Interaction.RouteAction)

	// Staff surface
	app.Get("/:gym/dashboard", gate.Require(staffLevel), h.Gym.Dashboard)
	app.Get("/:gym/stats", gate.Require(staffLevel), h.Stats.Stats)
	app.Get("/:gym/admin/routes", gate.Require(staffLevel), h.Route.AdminList)

	// Setter surface
	app.Post("/:gym/admin/routes", gate.Require(setterLevel), h.Route.Create)
	app.Put("/:gym/admin/routes/:route", gate.Require(middleware.GateConfig{
		Threshold:    middleware.Level(models.LevelSetter),
		ResolveRoute: true,
	}), h.Route.Update)

	// Owner surface
	app.Put("/:gym/settings", gate.Require(ownerLevel), h.Gym.UpdateSettings)
	app.Get("/:gym/admin/staff", gate.Require(ownerLevel), h.Staff.List)
	app.Get("/:gym/admin/staff/levels", gate.Require(ownerLevel), h.Staff.AssignableLevels)
	app.Post("/:gym/admin/staff", gate.Require(ownerLevel), h.Staff.Create)
	app.Put("/:gym/admin/staff/:user", gate.Require(middleware.GateConfig{
		Threshold:    middleware.Level(models.LevelOwner),
		ResolveStaff: true,
	}), h.Staff.Update)
	app.Delete("/:gym/admin/staff/:user", gate.Require(middleware.GateConfig{
		Threshold:    middleware.Level(models.LevelOwner),
		ResolveStaff: true,
		NoOwner:      true,
	}), h.Staff.Delete)
}
