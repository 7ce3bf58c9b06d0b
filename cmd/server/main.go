package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jmcrae/attire/internal"
	"github.com/jmcrae/attire/internal/events"
	"github.com/jmcrae/attire/internal/handler/api"
	"github.com/jmcrae/attire/internal/middleware"
	"github.com/jmcrae/attire/internal/postgres"
	"github.com/jmcrae/attire/internal/router"
	"github.com/jmcrae/attire/internal/routes"
	"github.com/jmcrae/attire/internal/service"
	"github.com/jmcrae/attire/internal/telemetry"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	logger.Info("Database connection established")

	// Run migrations
	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize pgx connection pool for application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	store := postgres.NewStore(pool)

	// Initialize event publisher
	var publisher events.Publisher
	if cfg.Events.Enabled {
		logger.Info("Connecting to NATS...", "url", cfg.Events.URL)
		publisher, err = events.NewNATSPublisher(cfg.Events.URL, cfg.Events.Subject)
		if err != nil {
			return fmt.Errorf("failed to initialize event publisher: %w", err)
		}
		logger.Info("Event publisher initialized", "subject", cfg.Events.Subject)
	} else {
		publisher = events.NewNoopPublisher()
	}
	defer publisher.Close()

	// Initialize metrics
	httpMetrics := middleware.NewMetrics("attire", prometheus.DefaultRegisterer)
	businessMetrics := telemetry.NewBusinessMetrics(prometheus.DefaultRegisterer)

	// Initialize services
	productService := service.NewProductService(store, store, logger)
	cartService := service.NewCartService(store, store, businessMetrics, logger)
	customerService := service.NewCustomerService(store, businessMetrics, logger)
	orderService := service.NewOrderService(store, store, store, store, publisher, businessMetrics, logger)

	// Build route dependencies
	apiDeps := routes.APIDeps{
		ProductHandler:      api.NewProductHandler(productService, logger),
		AdminProductHandler: api.NewAdminProductHandler(productService, logger),
		CartHandler:         api.NewCartHandler(cartService, logger),
		OrderHandler:        api.NewOrderHandler(orderService, logger),
		CustomerHandler:     api.NewCustomerHandler(customerService, logger),
	}

	// Create router and register routes
	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		httpMetrics.Middleware,
		middleware.MaxBodySize(middleware.DefaultMaxBodySize),
		router.Logger(logger),
	)

	// Metrics endpoint (protect via firewall in production)
	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		httpMetrics.Handler().ServeHTTP(w, req)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if err := pool.Ping(req.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	routes.RegisterAPIRoutes(r, apiDeps)

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting server", "address", addr)

	if err := http.ListenAndServe(addr, r); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
