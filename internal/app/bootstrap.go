package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"profile-api/internal/config"
	"profile-api/internal/delivery/http/handler"
	"profile-api/internal/delivery/http/middleware"
	"profile-api/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"go.uber.org/zap"
)

type App struct {
	Fiber *fiber.App
}

func New(cfg config.Config, log *zap.Logger, users handler.UserService) *App {
	if log == nil {
		log = zap.NewNop()
	}

	errMw := middleware.NewErrorMiddleware(log)
	f := fiber.New(fiber.Config{
		AppName:      cfg.App.AppName,
		ErrorHandler: errMw.Handler(),
	})

	registerGlobalMiddleware(f, cfg, log, errMw)
	registerRoutes(f, users)

	return &App{Fiber: f}
}

// Bootstrap wires the container into a ready-to-listen App. The returned
// cleanup releases the database.
func Bootstrap(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return New(cfg, log, c.Users), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, cfg config.Config, log *zap.Logger, errMw *middleware.ErrorMiddleware) {
	if app == nil {
		return
	}

	accessLog := middleware.NewAccessLogMiddleware(log.Named("http"), "/health")
	app.Use(accessLog.Middleware())
	app.Use(errMw.Middleware())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.App.CORSAllowOrigins}))
}

func registerRoutes(app *fiber.App, users handler.UserService) {
	if app == nil {
		return
	}

	reg := routes.NewRegistry(
		handler.NewHealthHandler(time.Now()),
		handler.NewUserHandler(users),
	)
	reg.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
