package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/farmacia-api/pkg/logger"
)

// AppOptions parámetros de la app Fiber.
type AppOptions struct {
	Name           string
	MetricsEnabled bool
	Logger         *logger.Logger
	// HealthChecks dependencias consultadas por /health (ej. "database", "redis").
	HealthChecks map[string]func(context.Context) error
}

// NewApp crea la app Fiber con el stack de middlewares, /health, /metrics y las rutas de la API.
func NewApp(opts AppOptions, deps RouterDeps) *fiber.App {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	if deps.Logger == nil {
		deps.Logger = log
	}

	app := fiber.New(fiber.Config{
		AppName:      opts.Name,
		ErrorHandler: ErrorHandler,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(RequestLogger(log.Child("http")))
	app.Use(recover.New())
	if opts.MetricsEnabled {
		app.Use(Metrics())
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	app.Get("/health", healthHandler(opts.Name, opts.HealthChecks))

	Router(app, deps)
	return app
}

// healthHandler responde 200 si todas las dependencias responden; 503 en otro caso.
func healthHandler(name string, checks map[string]func(context.Context) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		status := "ok"
		deps := fiber.Map{}
		for dep, check := range checks {
			if err := check(ctx); err != nil {
				deps[dep] = "down"
				status = "degraded"
				continue
			}
			deps[dep] = "ok"
		}
		code := fiber.StatusOK
		if status != "ok" {
			code = fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{"status": status, "service": name, "checks": deps})
	}
}
