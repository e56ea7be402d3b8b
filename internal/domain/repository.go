package domain

import "context"

// CustomerRepository stores customers. Lookups of unknown ids return ErrCustomerNotFound.
type CustomerRepository interface {
	GetByID(ctx context.Context, id string) (*Customer, error)
	// List returns every customer ordered by name ascending.
	List(ctx context.Context) ([]Customer, error)
	Create(ctx context.Context, customer *Customer) error
	Update(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}

// ProductRepository stores products. Lookups of unknown ids return ErrProductNotFound.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*Product, error)
	// GetByIDs returns the products that exist among ids. Unknown ids are skipped.
	GetByIDs(ctx context.Context, ids []string) ([]Product, error)
	// List returns every product ordered by title ascending.
	List(ctx context.Context) ([]Product, error)
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}

// OrderRepository stores orders together with their lines.
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*Order, error)
	// Create writes the order header and all lines atomically.
	Create(ctx context.Context, order *Order) error
}
