package products

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/joao-fontenele/bugstore/internal/domain"
	"github.com/joao-fontenele/bugstore/internal/validation"
)

type CreateRequest struct {
	Title       string          `json:"title" validate:"required,max=200"`
	Description string          `json:"description" validate:"max=2000"`
	Slug        string          `json:"slug" validate:"required,max=200"`
	Price       decimal.Decimal `json:"price" validate:"positive"`
}

type UpdateRequest struct {
	ID          string          `json:"id" validate:"required,uuid"`
	Title       string          `json:"title" validate:"required,max=200"`
	Description string          `json:"description" validate:"max=2000"`
	Slug        string          `json:"slug" validate:"required,max=200"`
	Price       decimal.Decimal `json:"price" validate:"positive"`
}

type deleteRequest struct {
	ID string `json:"id" validate:"required,uuid"`
}

// Service implements the product use cases on top of a ProductRepository.
type Service struct {
	repo      domain.ProductRepository
	validator *validation.Validator
	now       func() time.Time
}

func NewService(repo domain.ProductRepository, validator *validation.Validator) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*domain.Product, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Slug = strings.TrimSpace(req.Slug)
	if err := s.validator.Check(req, "invalid product data"); err != nil {
		return nil, err
	}

	now := s.now()
	product := &domain.Product{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		Slug:        req.Slug,
		Price:       req.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

func (s *Service) Update(ctx context.Context, req UpdateRequest) (*domain.Product, error) {
	req.ID = domain.CanonicalID(req.ID)
	req.Title = strings.TrimSpace(req.Title)
	req.Slug = strings.TrimSpace(req.Slug)
	if err := s.validator.Check(req, "invalid product data"); err != nil {
		return nil, err
	}

	product, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, notFoundOr(err, "load product")
	}

	product.Title = req.Title
	product.Description = req.Description
	product.Slug = req.Slug
	product.Price = req.Price
	product.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, notFoundOr(err, "update product")
	}
	return product, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = domain.CanonicalID(id)
	if err := s.validator.Check(deleteRequest{ID: id}, "invalid product id"); err != nil {
		return err
	}

	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check product: %w", err)
	}
	if !exists {
		return domain.NewNotFoundError(domain.ErrProductNotFound)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundOr(err, "delete product")
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.NewNotFoundError(domain.ErrProductNotFound)
	}

	product, err := s.repo.GetByID(ctx, domain.CanonicalID(id))
	if err != nil {
		return nil, notFoundOr(err, "get product")
	}
	return product, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

func notFoundOr(err error, op string) error {
	if errors.Is(err, domain.ErrProductNotFound) {
		return domain.NewNotFoundError(err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
