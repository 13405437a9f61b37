package routes

import (
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	Health *handler.HealthHandler
	Auth   *handler.AuthHandler
	Jobs   *handler.JobHandler

	AuthMiddleware *middleware.AuthMiddleware

	// JobsSocket upgrades /ws/jobs. Nil disables the route.
	JobsSocket fiber.Handler
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}
	r.registerAPI(app)
	if r.JobsSocket != nil {
		app.Get("/ws/jobs", r.JobsSocket)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")

	if r.Auth != nil {
		r.Auth.RegisterRoutes(api.Group("/auth"))
	}
	if r.Jobs != nil {
		r.Jobs.RegisterRoutes(api.Group("/jobs"), r.AuthMiddleware)
	}
}
