package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/joao-fontenele/bugstore/internal/api"
	"github.com/joao-fontenele/bugstore/internal/config"
	"github.com/joao-fontenele/bugstore/internal/customers"
	"github.com/joao-fontenele/bugstore/internal/health"
	"github.com/joao-fontenele/bugstore/internal/messaging"
	"github.com/joao-fontenele/bugstore/internal/orders"
	"github.com/joao-fontenele/bugstore/internal/products"
	"github.com/joao-fontenele/bugstore/internal/storage/memory"
	"github.com/joao-fontenele/bugstore/internal/telemetry"
)

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.LoadAPI(os.Getenv)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	svc := telemetry.Service{Name: cfg.ServiceName, Version: config.ServiceVersion}

	shutdownTracer, err := telemetry.InitTracerProvider(ctx, svc, cfg.OTLPEndpoint)
	if err != nil {
		logger.Error("failed to initialize tracer", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracer(ctx) }()

	metricsHandler, shutdownMeter, err := telemetry.InitMeterProvider(svc)
	if err != nil {
		logger.Error("failed to initialize meter", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownMeter(ctx) }()

	healthHandler := health.NewHandler(config.ServiceVersion, 2*time.Second)

	var repos api.Repositories
	switch cfg.StorageDriver {
	case config.StorageMemory:
		repos = api.Repositories{
			Customers: memory.NewCustomerRepository(),
			Products:  memory.NewProductRepository(),
			Orders:    memory.NewOrderRepository(),
		}
	default:
		db, err := telemetry.OpenDB(ctx, cfg.PostgresURL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer func(db *sql.DB) { _ = db.Close() }(db)

		repos = api.Repositories{
			Customers: customers.NewCustomerRepository(db),
			Products:  products.NewProductRepository(db),
			Orders:    orders.NewOrderRepository(db),
		}
		healthHandler.RegisterChecker("postgres", health.CheckFunc(db.PingContext))
	}

	var publisher orders.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		producer := messaging.NewProducer(cfg.KafkaBrokers, cfg.OrderCreatedTopic)
		defer func() { _ = producer.Close() }()
		publisher = producer
	}

	handlers, err := api.NewHandlers(repos, publisher, logger)
	if err != nil {
		logger.Error("failed to build handlers", "error", err)
		os.Exit(1)
	}
	handlers.Health = healthHandler
	handlers.Metrics = metricsHandler

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewRouter(handlers, cfg.ServiceName),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting bugstore api",
			"port", cfg.Port,
			"storage", cfg.StorageDriver,
			"events", publisher != nil,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
