package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/study-match/internal/api/http/handlers"
	"github.com/spec-kit/study-match/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Profile        *handlers.ProfileHandler
	Matches        *handlers.MatchesHandler
	Requests       *handlers.RequestsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)
	api.Get("/me", cfg.Profile.Me)
	api.Put("/me", cfg.Profile.UpdateMe)
	api.Put("/me/courses", cfg.Profile.SetCourses)
	api.Put("/me/availability", cfg.Profile.SetAvailability)

	api.Get("/matches", cfg.Matches.Suggestions)
	api.Get("/classmates", cfg.Matches.Search)

	api.Post("/requests", cfg.Requests.Send)
	api.Get("/requests", cfg.Requests.List)
	api.Post("/requests/:id/accept", cfg.Requests.Accept)
	api.Post("/requests/:id/decline", cfg.Requests.Decline)
	api.Post("/requests/:id/cancel", cfg.Requests.Cancel)
}
