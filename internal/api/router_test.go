package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joao-fontenele/bugstore/internal/domain"
	"github.com/joao-fontenele/bugstore/internal/health"
	"github.com/joao-fontenele/bugstore/internal/httpx"
	"github.com/joao-fontenele/bugstore/internal/storage/memory"
)

type testAPI struct {
	server *httptest.Server
	orders *memory.OrderRepository
}

func newTestAPI(t *testing.T, healthy bool) *testAPI {
	t.Helper()

	orderRepo := memory.NewOrderRepository()
	handlers, err := NewHandlers(Repositories{
		Customers: memory.NewCustomerRepository(),
		Products:  memory.NewProductRepository(),
		Orders:    orderRepo,
	}, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	handlers.Health = health.NewHandler("test", time.Second)
	handlers.Health.RegisterChecker("store", health.CheckFunc(func(context.Context) error {
		if !healthy {
			return errors.New("store unavailable")
		}
		return nil
	}))
	handlers.Metrics = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("# metrics"))
	})

	server := httptest.NewServer(NewRouter(handlers, "bugstore-test"))
	t.Cleanup(server.Close)

	return &testAPI{server: server, orders: orderRepo}
}

func (a *testAPI) call(t *testing.T, method, path, body string) (int, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, a.server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.server.Client().Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func (a *testAPI) create(t *testing.T, path, body string) string {
	t.Helper()

	status, data := a.call(t, http.MethodPost, path, body)
	require.Equal(t, http.StatusCreated, status, string(data))

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(data, &created))
	return created.ID
}

func product(title, price string) string {
	return fmt.Sprintf(`{"title":%q,"description":"","slug":%q,"price":%s}`, title, strings.ToLower(title), price)
}

func TestRouter_OrderFlow(t *testing.T) {
	api := newTestAPI(t, true)

	customerID := api.create(t, "/v1/customers",
		`{"name":"Test Customer","email":"test@example.com","phone":"1234567890","birth_date":"1990-05-01T00:00:00Z"}`)
	productA := api.create(t, "/v1/products", product("Product A", "100"))
	productB := api.create(t, "/v1/products", product("Product B", `"200"`))

	status, data := api.call(t, http.MethodPost, "/v1/orders", fmt.Sprintf(
		`{"customer_id":%q,"items":[{"product_id":%q,"quantity":2},{"product_id":%q,"quantity":3}]}`,
		customerID, productA, productB))
	require.Equal(t, http.StatusCreated, status, string(data))

	var order domain.Order
	require.NoError(t, json.Unmarshal(data, &order))
	assert.Equal(t, "800", order.Total.String())
	require.Len(t, order.Lines, 2)
	assert.Equal(t, "200", order.Lines[0].Total.String())
	assert.Equal(t, "600", order.Lines[1].Total.String())

	status, data = api.call(t, http.MethodGet, "/v1/orders/"+order.ID, "")
	require.Equal(t, http.StatusOK, status)

	var fetched domain.Order
	require.NoError(t, json.Unmarshal(data, &fetched))
	assert.Equal(t, order.ID, fetched.ID)
	assert.Equal(t, customerID, fetched.CustomerID)

	// Orders keep their snapshot after the referenced product is removed.
	status, _ = api.call(t, http.MethodDelete, "/v1/products/"+productA, "")
	require.Equal(t, http.StatusOK, status)

	status, _ = api.call(t, http.MethodGet, "/v1/orders/"+order.ID, "")
	assert.Equal(t, http.StatusOK, status)
}

func TestRouter_OrderFailuresPersistNothing(t *testing.T) {
	api := newTestAPI(t, true)

	customerID := api.create(t, "/v1/customers",
		`{"name":"Test Customer","email":"test@example.com","phone":"1234567890","birth_date":"1990-05-01T00:00:00Z"}`)
	productID := api.create(t, "/v1/products", product("Known", "5"))
	missing := uuid.New().String()

	status, data := api.call(t, http.MethodPost, "/v1/orders", fmt.Sprintf(
		`{"customer_id":%q,"items":[{"product_id":%q,"quantity":1},{"product_id":%q,"quantity":1}]}`,
		customerID, productID, missing))
	require.Equal(t, http.StatusBadRequest, status)

	var resp httpx.ErrorResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	assert.Equal(t, []string{missing}, resp.MissingProductIDs)

	status, _ = api.call(t, http.MethodPost, "/v1/orders", fmt.Sprintf(
		`{"customer_id":%q,"items":[{"product_id":%q,"quantity":1}]}`, uuid.New().String(), productID))
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = api.call(t, http.MethodPost, "/v1/orders", fmt.Sprintf(`{"customer_id":%q,"items":[]}`, customerID))
	assert.Equal(t, http.StatusBadRequest, status)

	assert.Zero(t, api.orders.Len())
	assert.Zero(t, api.orders.LineCount())
}

func TestRouter_StatusTable(t *testing.T) {
	api := newTestAPI(t, true)
	unknown := uuid.New().String()

	tests := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{http.MethodGet, "/v1/customers", "", http.StatusOK},
		{http.MethodGet, "/v1/products", "", http.StatusOK},
		{http.MethodPost, "/v1/customers", `{}`, http.StatusBadRequest},
		{http.MethodPost, "/v1/products", product("Free", "0"), http.StatusBadRequest},
		{http.MethodPut, "/v1/products/" + unknown, product("Ghost", "1"), http.StatusNotFound},
		{http.MethodDelete, "/v1/customers/" + unknown, "", http.StatusNotFound},
		{http.MethodDelete, "/v1/products/not-a-uuid", "", http.StatusBadRequest},
		{http.MethodGet, "/v1/customers/" + unknown, "", http.StatusNotFound},
		{http.MethodGet, "/v1/products/" + unknown, "", http.StatusNotFound},
		{http.MethodGet, "/v1/orders/" + unknown, "", http.StatusNotFound},
		{http.MethodPatch, "/v1/orders/" + unknown, "", http.StatusMethodNotAllowed},
		{http.MethodGet, "/livez", "", http.StatusOK},
		{http.MethodGet, "/readyz", "", http.StatusOK},
		{http.MethodGet, "/healthz", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			status, data := api.call(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, status, string(data))
		})
	}
}

func TestRouter_ListsAreSorted(t *testing.T) {
	api := newTestAPI(t, true)

	for _, title := range []string{"Zebra", "Alpha", "Beta"} {
		api.create(t, "/v1/products", product(title, "1.5"))
	}

	status, data := api.call(t, http.MethodGet, "/v1/products", "")
	require.Equal(t, http.StatusOK, status)

	var list []domain.Product
	require.NoError(t, json.Unmarshal(data, &list))
	require.Len(t, list, 3)
	assert.Equal(t, "Alpha", list[0].Title)
	assert.Equal(t, "Beta", list[1].Title)
	assert.Equal(t, "Zebra", list[2].Title)
	assert.Equal(t, "1.5", list[0].Price.String())
}

func TestRouter_Unhealthy(t *testing.T) {
	api := newTestAPI(t, false)

	status, _ := api.call(t, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)

	status, _ = api.call(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)

	status, _ = api.call(t, http.MethodGet, "/livez", "")
	assert.Equal(t, http.StatusOK, status)
}
