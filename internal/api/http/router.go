package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/signup-flow/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Metrics *handlers.MetricsHandler
	Proxy   *handlers.ProxyHandler
	Static  *handlers.StaticHandler
}

// RegisterRoutes wires HTTP routes. Static assets are mounted last so they never shadow the API.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics.Snapshot)
	}

	if cfg.Proxy != nil {
		prefix := cfg.Proxy.Prefix()
		app.All(prefix, cfg.Proxy.Forward)
		app.All(prefix+"/*", cfg.Proxy.Forward)
	}

	if cfg.Static != nil {
		cfg.Static.Register(app)
	}
}
