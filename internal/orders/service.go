package orders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/joao-fontenele/bugstore/internal/domain"
	"github.com/joao-fontenele/bugstore/internal/validation"
)

const instrumentationName = "github.com/joao-fontenele/bugstore/internal/orders"

var tracer = otel.Tracer(instrumentationName)

// Publisher delivers order events; *messaging.Producer satisfies it.
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}

type ItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"gt=0,lte=2147483647"`
}

type CreateRequest struct {
	CustomerID string        `json:"customer_id" validate:"required,uuid"`
	Items      []ItemRequest `json:"items" validate:"required,min=1,dive"`
}

type Service struct {
	orders    domain.OrderRepository
	customers domain.CustomerRepository
	products  domain.ProductRepository
	validator *validation.Validator
	publisher Publisher
	logger    *slog.Logger
	now       func() time.Time

	ordersCreated metric.Int64Counter
	orderValue    metric.Float64Histogram
}

// NewService wires the order use cases. publisher may be nil, in which case no events are
// emitted.
func NewService(
	orders domain.OrderRepository,
	customers domain.CustomerRepository,
	products domain.ProductRepository,
	validator *validation.Validator,
	publisher Publisher,
	logger *slog.Logger,
) (*Service, error) {
	meter := otel.Meter(instrumentationName)

	ordersCreated, err := meter.Int64Counter("bugstore.orders.created",
		metric.WithDescription("Number of orders created"),
		metric.WithUnit("{order}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create orders counter: %w", err)
	}

	orderValue, err := meter.Float64Histogram("bugstore.orders.value",
		metric.WithDescription("Total value of created orders"),
	)
	if err != nil {
		return nil, fmt.Errorf("create order value histogram: %w", err)
	}

	return &Service{
		orders:        orders,
		customers:     customers,
		products:      products,
		validator:     validator,
		publisher:     publisher,
		logger:        logger,
		now:           func() time.Time { return time.Now().UTC() },
		ordersCreated: ordersCreated,
		orderValue:    orderValue,
	}, nil
}

// Create validates the request, resolves the customer and every product, prices the lines
// and stores the order in one write. Nothing is stored when any step fails.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*domain.Order, error) {
	ctx, span := tracer.Start(ctx, "orders.Create")
	defer span.End()

	req.CustomerID = domain.CanonicalID(req.CustomerID)
	req.Items = slices.Clone(req.Items)
	for i := range req.Items {
		req.Items[i].ProductID = domain.CanonicalID(req.Items[i].ProductID)
	}

	if err := s.validator.Check(req, "invalid order data"); err != nil {
		return nil, spanError(span, err)
	}

	if _, err := s.customers.GetByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return nil, spanError(span, domain.NewNotFoundError(err))
		}
		return nil, spanError(span, fmt.Errorf("load customer: %w", err))
	}

	ids := distinctProductIDs(req.Items)
	found, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, spanError(span, fmt.Errorf("load products: %w", err))
	}

	catalog := make(map[string]domain.Product, len(found))
	for _, p := range found {
		catalog[p.ID] = p
	}
	if missing := missingProductIDs(ids, catalog); len(missing) > 0 {
		return nil, spanError(span, domain.NewProductsMissingError(missing))
	}

	now := s.now()
	order := &domain.Order{
		ID:         uuid.New().String(),
		CustomerID: req.CustomerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	order.Lines, order.Total = priceLines(order.ID, req.Items, catalog)

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, spanError(span, fmt.Errorf("persist order: %w", err))
	}

	span.SetAttributes(
		attribute.String("order.id", order.ID),
		attribute.Int("order.lines", len(order.Lines)),
	)
	s.ordersCreated.Add(ctx, 1)
	s.orderValue.Record(ctx, order.Total.InexactFloat64())

	s.publishCreated(ctx, order)

	return order, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.NewNotFoundError(domain.ErrOrderNotFound)
	}

	order, err := s.orders.GetByID(ctx, domain.CanonicalID(id))
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, domain.NewNotFoundError(err)
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

func (s *Service) publishCreated(ctx context.Context, order *domain.Order) {
	if s.publisher == nil {
		return
	}

	if err := s.publisher.Publish(ctx, order.ID, domain.NewOrderCreatedEvent(order)); err != nil {
		s.logger.Error("failed to publish order created event", "error", err, "order_id", order.ID)
	}
}

func spanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
