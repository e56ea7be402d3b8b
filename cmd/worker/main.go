package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/joao-fontenele/bugstore/internal/config"
	"github.com/joao-fontenele/bugstore/internal/messaging"
	"github.com/joao-fontenele/bugstore/internal/telemetry"
	"github.com/joao-fontenele/bugstore/internal/worker"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.LoadWorker(os.Getenv)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracerProvider(ctx, telemetry.Service{
		Name:    cfg.ServiceName,
		Version: config.ServiceVersion,
	}, cfg.OTLPEndpoint)
	if err != nil {
		logger.Error("failed to initialize tracer", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracer(context.Background()) }()

	consumer := messaging.NewConsumer(cfg.KafkaBrokers, cfg.OrderCreatedTopic, cfg.GroupID, logger)
	defer func() { _ = consumer.Close() }()

	httpClient := &http.Client{
		Timeout:   10 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	notificationHandler := worker.NewNotificationHandler(cfg.APIURL, cfg.EmailServiceURL, httpClient, logger)

	logger.Info("starting notification worker",
		"brokers", cfg.KafkaBrokers,
		"topic", cfg.OrderCreatedTopic,
		"group", cfg.GroupID,
	)

	if err := consumer.Consume(ctx, notificationHandler.Handle); err != nil {
		logger.Error("consumer error", "error", err)
		os.Exit(1)
	}

	logger.Info("consumer stopped")
}
