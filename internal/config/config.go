// Package config loads the environment configuration of each BugStore binary.
package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	DefaultOrderCreatedTopic = "order.created"
	ServiceVersion           = "0.1.0"
)

// Getenv matches os.Getenv.
type Getenv func(key string) string

type API struct {
	Port              string
	StorageDriver     string
	PostgresURL       string
	KafkaBrokers      []string
	OrderCreatedTopic string
	OTLPEndpoint      string
	ServiceName       string
}

func LoadAPI(getenv Getenv) (API, error) {
	cfg := API{
		Port:              get(getenv, "PORT", "8080"),
		StorageDriver:     get(getenv, "STORAGE_DRIVER", StoragePostgres),
		PostgresURL:       getenv("POSTGRES_URL"),
		KafkaBrokers:      splitList(getenv("KAFKA_BROKERS")),
		OrderCreatedTopic: get(getenv, "ORDER_CREATED_TOPIC", DefaultOrderCreatedTopic),
		OTLPEndpoint:      getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		ServiceName:       get(getenv, "SERVICE_NAME", "bugstore-api"),
	}

	var errs []error
	switch cfg.StorageDriver {
	case StoragePostgres:
		if cfg.PostgresURL == "" {
			errs = append(errs, required("POSTGRES_URL"))
		}
	case StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StoragePostgres, StorageMemory, cfg.StorageDriver))
	}

	return cfg, errors.Join(errs...)
}

type Worker struct {
	KafkaBrokers      []string
	OrderCreatedTopic string
	GroupID           string
	APIURL            string
	EmailServiceURL   string
	OTLPEndpoint      string
	ServiceName       string
}

func LoadWorker(getenv Getenv) (Worker, error) {
	cfg := Worker{
		KafkaBrokers:      splitList(getenv("KAFKA_BROKERS")),
		OrderCreatedTopic: get(getenv, "ORDER_CREATED_TOPIC", DefaultOrderCreatedTopic),
		GroupID:           get(getenv, "CONSUMER_GROUP", "notification-worker"),
		APIURL:            getenv("API_URL"),
		EmailServiceURL:   getenv("EMAIL_SERVICE_URL"),
		OTLPEndpoint:      getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		ServiceName:       get(getenv, "SERVICE_NAME", "bugstore-worker"),
	}

	var errs []error
	if len(cfg.KafkaBrokers) == 0 {
		errs = append(errs, required("KAFKA_BROKERS"))
	}
	if cfg.APIURL == "" {
		errs = append(errs, required("API_URL"))
	}
	if cfg.EmailServiceURL == "" {
		errs = append(errs, required("EMAIL_SERVICE_URL"))
	}

	return cfg, errors.Join(errs...)
}

type Email struct {
	Port         string
	OTLPEndpoint string
	ServiceName  string
}

func LoadEmail(getenv Getenv) Email {
	return Email{
		Port:         get(getenv, "PORT", "8084"),
		OTLPEndpoint: getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		ServiceName:  get(getenv, "SERVICE_NAME", "bugstore-email"),
	}
}

type Migrate struct {
	PostgresURL    string
	MigrationsPath string
}

func LoadMigrate(getenv Getenv) (Migrate, error) {
	cfg := Migrate{
		PostgresURL:    getenv("POSTGRES_URL"),
		MigrationsPath: get(getenv, "MIGRATIONS_PATH", "file://migrations"),
	}
	if cfg.PostgresURL == "" {
		return cfg, required("POSTGRES_URL")
	}
	return cfg, nil
}

func get(getenv Getenv, key, fallback string) string {
	if value := strings.TrimSpace(getenv(key)); value != "" {
		return value
	}
	return fallback
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func required(key string) error {
	return fmt.Errorf("%s environment variable is required", key)
}
