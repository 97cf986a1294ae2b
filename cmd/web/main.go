package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"ecommerce-backend/internal/cache"
	"ecommerce-backend/internal/config"
	"ecommerce-backend/internal/handlers"
	"ecommerce-backend/internal/middleware"
	"ecommerce-backend/internal/observability"
	"ecommerce-backend/internal/server"
	"ecommerce-backend/internal/services"
	"ecommerce-backend/internal/store"
	"ecommerce-backend/internal/ui/templates"
)

const (
	renderTimeout  = 10 * time.Second
	dashboardTitle = "Admin Dashboard"
)

func handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
	defer cancel()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Dashboard(dashboardTitle).Render(ctx, w); err != nil {
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}

// newHandler wires the services over db and returns the routed, fully
// middleware-wrapped HTTP handler.
func newHandler(cfg *config.Config, db *store.Store, logger *slog.Logger) http.Handler {
	c := cache.New(logger)

	svc := handlers.Services{
		Products: services.NewProducts(db, c, logger, cfg.Shop.ProductsPerPage),
		Orders:   services.NewOrders(db, c, logger),
		Users:    services.NewUsers(db, c, logger),
		Payments: services.NewPayments(db, services.OfflineIntents{}, cfg.Shop.Currency, logger),
		Stats:    services.NewStats(db, db, db, c, logger),
		Cache:    c,
	}

	rateLimiter := middleware.NewRateLimiter(cfg.Security)

	chain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(),
		middleware.Metrics(),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
		middleware.RateLimit(rateLimiter, logger),
	)

	templateHandlers := &server.TemplateHandlers{
		Dashboard: handleDashboard,
	}

	return server.NewServer(svc, logger, templateHandlers, chain)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"version", "1.0.0",
		"addr", cfg.Address(),
		"database", cfg.Database.Path,
	)

	ctx := context.Background()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.Tracing)
	if err != nil {
		logger.Error("failed to set up tracing", "error", err)
		os.Exit(1)
	}

	db, err := store.Open(cfg.Database, logger)
	if err != nil {
		logger.Error("failed to open document store", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      newHandler(cfg, db, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg)

	gracefulServer.RegisterShutdownHook("tracing", shutdownTracing)
	gracefulServer.RegisterShutdownHook("store", func(ctx context.Context) error {
		logger.Info("closing document store")
		return db.Close()
	})

	if err := gracefulServer.ListenAndServe(ctx); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}
