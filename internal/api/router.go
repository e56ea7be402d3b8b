// Package api wires the feature handlers into the BugStore HTTP surface.
package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/joao-fontenele/bugstore/internal/customers"
	"github.com/joao-fontenele/bugstore/internal/domain"
	"github.com/joao-fontenele/bugstore/internal/health"
	"github.com/joao-fontenele/bugstore/internal/orders"
	"github.com/joao-fontenele/bugstore/internal/products"
	"github.com/joao-fontenele/bugstore/internal/telemetry"
	"github.com/joao-fontenele/bugstore/internal/validation"
)

type Repositories struct {
	Customers domain.CustomerRepository
	Products  domain.ProductRepository
	Orders    domain.OrderRepository
}

type Handlers struct {
	Customers *customers.Handler
	Products  *products.Handler
	Orders    *orders.Handler
	Health    *health.Handler
	// Metrics serves /metrics when set.
	Metrics http.Handler
}

// NewHandlers builds the feature handlers over repos. publisher may be nil.
func NewHandlers(repos Repositories, publisher orders.Publisher, logger *slog.Logger) (Handlers, error) {
	validator := validation.New()

	orderService, err := orders.NewService(repos.Orders, repos.Customers, repos.Products, validator, publisher, logger)
	if err != nil {
		return Handlers{}, fmt.Errorf("create order service: %w", err)
	}

	return Handlers{
		Customers: customers.NewHandler(customers.NewService(repos.Customers, validator), logger),
		Products:  products.NewHandler(products.NewService(repos.Products, validator), logger),
		Orders:    orders.NewHandler(orderService, logger),
	}, nil
}

// NewRouter maps every route and wraps the mux with otelhttp server instrumentation.
func NewRouter(h Handlers, serviceName string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/customers", telemetry.WithHTTPRoute(h.Customers.HandleCreate))
	mux.HandleFunc("GET /v1/customers", telemetry.WithHTTPRoute(h.Customers.HandleList))
	mux.HandleFunc("GET /v1/customers/{id}", telemetry.WithHTTPRoute(h.Customers.HandleGet))
	mux.HandleFunc("PUT /v1/customers/{id}", telemetry.WithHTTPRoute(h.Customers.HandleUpdate))
	mux.HandleFunc("DELETE /v1/customers/{id}", telemetry.WithHTTPRoute(h.Customers.HandleDelete))

	mux.HandleFunc("POST /v1/products", telemetry.WithHTTPRoute(h.Products.HandleCreate))
	mux.HandleFunc("GET /v1/products", telemetry.WithHTTPRoute(h.Products.HandleList))
	mux.HandleFunc("GET /v1/products/{id}", telemetry.WithHTTPRoute(h.Products.HandleGet))
	mux.HandleFunc("PUT /v1/products/{id}", telemetry.WithHTTPRoute(h.Products.HandleUpdate))
	mux.HandleFunc("DELETE /v1/products/{id}", telemetry.WithHTTPRoute(h.Products.HandleDelete))

	mux.HandleFunc("POST /v1/orders", telemetry.WithHTTPRoute(h.Orders.HandleCreate))
	mux.HandleFunc("GET /v1/orders/{id}", telemetry.WithHTTPRoute(h.Orders.HandleGet))

	mux.HandleFunc("GET /livez", health.LivenessHandler)
	if h.Health != nil {
		mux.Handle("GET /healthz", h.Health)
		mux.HandleFunc("GET /readyz", h.Health.ReadinessHandler)
	}
	if h.Metrics != nil {
		mux.Handle("GET /metrics", h.Metrics)
	}

	return otelhttp.NewHandler(mux, serviceName,
		otelhttp.WithSpanNameFormatter(telemetry.SpanName),
		otelhttp.WithFilter(func(r *http.Request) bool {
			switch r.URL.Path {
			case "/metrics", "/livez", "/readyz", "/healthz":
				return false
			}
			return true
		}),
	)
}
