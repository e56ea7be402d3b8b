package products

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joao-fontenele/bugstore/internal/domain"
	"github.com/joao-fontenele/bugstore/internal/storage/memory"
	"github.com/joao-fontenele/bugstore/internal/validation"
)

func newTestService() (*Service, *memory.ProductRepository) {
	repo := memory.NewProductRepository()
	return NewService(repo, validation.New()), repo
}

func validCreate(title string) CreateRequest {
	return CreateRequest{
		Title:       title,
		Description: "A " + title,
		Slug:        title,
		Price:       decimal.RequireFromString("19.99"),
	}
}

func TestService_Create(t *testing.T) {
	service, repo := newTestService()

	product, err := service.Create(context.Background(), validCreate("keyboard"))
	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, "keyboard", stored.Title)
	assert.True(t, stored.Price.Equal(decimal.RequireFromString("19.99")))
}

func TestService_CreateValidation(t *testing.T) {
	service, _ := newTestService()

	tests := []struct {
		name   string
		mutate func(*CreateRequest)
		field  string
	}{
		{"zero price", func(r *CreateRequest) { r.Price = decimal.Zero }, "price"},
		{"negative price", func(r *CreateRequest) { r.Price = decimal.RequireFromString("-0.01") }, "price"},
		{"missing title", func(r *CreateRequest) { r.Title = "" }, "title"},
		{"missing slug", func(r *CreateRequest) { r.Slug = " " }, "slug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreate("mouse")
			tt.mutate(&req)

			_, err := service.Create(context.Background(), req)

			var de *domain.Error
			require.True(t, errors.As(err, &de))
			assert.Equal(t, domain.KindValidation, de.Kind)
			require.Len(t, de.Fields, 1)
			assert.Equal(t, tt.field, de.Fields[0].Field)
		})
	}
}

func TestService_Update(t *testing.T) {
	service, _ := newTestService()
	created, err := service.Create(context.Background(), validCreate("monitor"))
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), UpdateRequest{
		ID:    created.ID,
		Title: "monitor 27",
		Slug:  "monitor-27",
		Price: decimal.RequireFromString("249.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "monitor 27", updated.Title)
	assert.Equal(t, "249.5", updated.Price.String())
	assert.Empty(t, updated.Description)

	_, err = service.Update(context.Background(), UpdateRequest{
		ID:    uuid.New().String(),
		Title: "ghost",
		Slug:  "ghost",
		Price: decimal.NewFromInt(1),
	})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestService_DeleteTwice(t *testing.T) {
	service, _ := newTestService()
	created, err := service.Create(context.Background(), validCreate("cable"))
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), created.ID))

	err = service.Delete(context.Background(), created.ID)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	assert.True(t, errors.Is(err, domain.ErrProductNotFound))

	err = service.Delete(context.Background(), "")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestService_ListSortedByTitle(t *testing.T) {
	service, _ := newTestService()

	for _, title := range []string{"Zebra", "Alpha", "Beta"} {
		_, err := service.Create(context.Background(), validCreate(title))
		require.NoError(t, err)
	}

	products, err := service.List(context.Background())
	require.NoError(t, err)

	var titles []string
	for _, p := range products {
		titles = append(titles, p.Title)
	}
	assert.Equal(t, []string{"Alpha", "Beta", "Zebra"}, titles)
}

func TestService_Get(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Get(context.Background(), "bogus")
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	created, err := service.Create(context.Background(), validCreate("lamp"))
	require.NoError(t, err)

	got, err := service.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}
