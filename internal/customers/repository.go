package customers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/joao-fontenele/bugstore/internal/domain"
)

type CustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

var _ domain.CustomerRepository = (*CustomerRepository)(nil)

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	customer := &domain.Customer{}

	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, phone, birth_date, created_at, updated_at
		FROM customers
		WHERE id = $1
	`, id).Scan(&customer.ID, &customer.Name, &customer.Email, &customer.Phone,
		&customer.BirthDate, &customer.CreatedAt, &customer.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("select customer: %w", err)
	}

	return customer, nil
}

func (r *CustomerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, phone, birth_date, created_at, updated_at
		FROM customers
		ORDER BY name COLLATE "C", id
	`)
	if err != nil {
		return nil, fmt.Errorf("select customers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	customers := []domain.Customer{}
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.BirthDate, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return customers, nil
}

func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (id, name, email, phone, birth_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, customer.ID, customer.Name, customer.Email, customer.Phone,
		customer.BirthDate, customer.CreatedAt, customer.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *CustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE customers
		SET name = $2, email = $3, phone = $4, birth_date = $5, updated_at = $6
		WHERE id = $1
	`, customer.ID, customer.Name, customer.Email, customer.Phone, customer.BirthDate, customer.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}

	return requireOneRow(result)
}

func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}

	return requireOneRow(result)
}

func (r *CustomerRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("customer exists: %w", err)
	}
	return exists, nil
}

func requireOneRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}
