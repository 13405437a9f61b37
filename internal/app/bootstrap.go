package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/delivery/http/routes"
	"jobboard/internal/seeder"
	"jobboard/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP app over an already initialised container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)

	reg := &routes.Registry{
		Health:         handler.NewHealthHandler(c.DB, c.Cache),
		Auth:           handler.NewAuthHandler(c.AuthService),
		Jobs:           handler.NewJobHandler(c.JobService),
		AuthMiddleware: middleware.NewAuthMiddleware(c.JWT),
		JobsSocket:     ws.NewHandler(c.Hub, c.Logger).HandleJobsWS,
	}
	reg.Register(f)

	return &App{Fiber: f, Container: c}
}

// Bootstrap connects storage, applies migrations, optionally seeds, and
// starts the websocket hub. The returned cleanup stops the hub and releases
// connections.
func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("init container: %w", err)
	}

	migCtx, migCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer migCancel()
	if err := c.Migrate(migCtx); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	if cfg.Seed.OnStart {
		seedCtx, seedCancel := context.WithTimeout(context.Background(), time.Minute)
		_, err := c.Seed(seedCtx, seeder.DefaultEntries())
		seedCancel()
		if err != nil {
			stopHub()
			_ = c.Close()
			return nil, nil, fmt.Errorf("seed: %w", err)
		}
	}

	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return New(c), cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	accessLog := middleware.NewAccessLogMiddleware(logger, "/health")
	app.Use(accessLog.Middleware())

	errMw := middleware.NewErrorMiddleware(logger)
	app.Use(errMw.Middleware())
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
