package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/signup-flow/internal/api/http"
	"github.com/spec-kit/signup-flow/internal/api/http/handlers"
	"github.com/spec-kit/signup-flow/internal/config"
	"github.com/spec-kit/signup-flow/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	metrics := observability.NewMetrics()

	proxyHandler, err := handlers.NewProxyHandler(cfg.Proxy, logger)
	if err != nil {
		logger.Fatal("invalid proxy config", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env != "development",
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Checker{
		"backend": handlers.BackendChecker(cfg.Proxy.Target),
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  healthHandler,
		Metrics: handlers.NewMetricsHandler(metrics),
		Proxy:   proxyHandler,
		Static:  handlers.NewStaticHandler(cfg.Static),
	})

	logger.Info("dev server starting",
		zap.String("addr", cfg.App.Addr()),
		zap.String("proxy_prefix", cfg.Proxy.Prefix),
		zap.String("proxy_target", cfg.Proxy.Target),
		zap.String("static_dir", cfg.Static.Dir))

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
