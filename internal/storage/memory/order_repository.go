package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/joao-fontenele/bugstore/internal/domain"
)

type OrderRepository struct {
	mu    sync.RWMutex
	items map[string]domain.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{items: make(map[string]domain.Order)}
}

func (r *OrderRepository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.items[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	order.Lines = slices.Clone(order.Lines)
	return &order, nil
}

// Create stores the order and its lines under one lock, so readers never see a
// partially written order.
func (r *OrderRepository) Create(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[order.ID]; exists {
		return ErrDuplicateID
	}
	stored := *order
	stored.Lines = slices.Clone(order.Lines)
	r.items[order.ID] = stored
	return nil
}

func (r *OrderRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// LineCount returns the number of stored order lines across all orders.
func (r *OrderRepository) LineCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, order := range r.items {
		n += len(order.Lines)
	}
	return n
}

var _ domain.OrderRepository = (*OrderRepository)(nil)
