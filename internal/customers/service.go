package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joao-fontenele/bugstore/internal/domain"
	"github.com/joao-fontenele/bugstore/internal/validation"
)

type CreateRequest struct {
	Name      string    `json:"name" validate:"required,max=160"`
	Email     string    `json:"email" validate:"required,email,max=254"`
	Phone     string    `json:"phone" validate:"required,max=32"`
	BirthDate time.Time `json:"birth_date" validate:"required,lt"`
}

type UpdateRequest struct {
	ID        string    `json:"id" validate:"required,uuid"`
	Name      string    `json:"name" validate:"required,max=160"`
	Email     string    `json:"email" validate:"required,email,max=254"`
	Phone     string    `json:"phone" validate:"required,max=32"`
	BirthDate time.Time `json:"birth_date" validate:"required,lt"`
}

type deleteRequest struct {
	ID string `json:"id" validate:"required,uuid"`
}

// Service implements the customer use cases on top of a CustomerRepository.
type Service struct {
	repo      domain.CustomerRepository
	validator *validation.Validator
	now       func() time.Time
}

func NewService(repo domain.CustomerRepository, validator *validation.Validator) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*domain.Customer, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	if err := s.validator.Check(req, "invalid customer data"); err != nil {
		return nil, err
	}

	now := s.now()
	customer := &domain.Customer{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		BirthDate: calendarDate(req.BirthDate),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return customer, nil
}

func (s *Service) Update(ctx context.Context, req UpdateRequest) (*domain.Customer, error) {
	req.ID = domain.CanonicalID(req.ID)
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	if err := s.validator.Check(req, "invalid customer data"); err != nil {
		return nil, err
	}

	customer, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, notFoundOr(err, "load customer")
	}

	customer.Name = req.Name
	customer.Email = req.Email
	customer.Phone = req.Phone
	customer.BirthDate = calendarDate(req.BirthDate)
	customer.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, notFoundOr(err, "update customer")
	}
	return customer, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = domain.CanonicalID(id)
	if err := s.validator.Check(deleteRequest{ID: id}, "invalid customer id"); err != nil {
		return err
	}

	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check customer: %w", err)
	}
	if !exists {
		return domain.NewNotFoundError(domain.ErrCustomerNotFound)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundOr(err, "delete customer")
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Customer, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.NewNotFoundError(domain.ErrCustomerNotFound)
	}

	customer, err := s.repo.GetByID(ctx, domain.CanonicalID(id))
	if err != nil {
		return nil, notFoundOr(err, "get customer")
	}
	return customer, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Customer, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	if customers == nil {
		customers = []domain.Customer{}
	}
	return customers, nil
}

// calendarDate keeps only the UTC day; birth dates are stored as DATE.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func notFoundOr(err error, op string) error {
	if errors.Is(err, domain.ErrCustomerNotFound) {
		return domain.NewNotFoundError(err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
