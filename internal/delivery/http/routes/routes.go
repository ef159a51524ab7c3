package routes

import (
	"fmt"

	"profile-api/internal/delivery/http/handler"
	"profile-api/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	users  *handler.UserHandler
}

func NewRegistry(health *handler.HealthHandler, users *handler.UserHandler) *Registry {
	return &Registry{health: health, users: users}
}

// Register installs the route table. The catch-all must come last.
func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
	r.registerFallback(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health == nil {
		return
	}
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	if r.users == nil {
		return
	}
	api := app.Group("/api")
	r.users.RegisterRoutes(api.Group("/users"))
}

func (r *Registry) registerFallback(app *fiber.App) {
	app.Use(func(c fiber.Ctx) error {
		msg := fmt.Sprintf("Route %s not found", c.OriginalURL())
		return middleware.NewAppError(fiber.StatusNotFound, msg, nil, nil)
	})
}
