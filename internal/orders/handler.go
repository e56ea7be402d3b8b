package orders

import (
	"log/slog"
	"net/http"

	"github.com/joao-fontenele/bugstore/internal/httpx"
)

type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.service.Create(r.Context(), req)
	if err != nil {
		httpx.WriteDomainError(w, h.logger, err, "create order")
		return
	}

	h.logger.Info("order created",
		"order_id", order.ID,
		"customer_id", order.CustomerID,
		"lines", len(order.Lines),
		"total", order.Total.String(),
	)
	w.Header().Set("Location", "/v1/orders/"+order.ID)
	httpx.WriteJSON(w, h.logger, http.StatusCreated, order)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.WriteDomainError(w, h.logger, err, "get order")
		return
	}

	h.logger.Info("order retrieved", "order_id", order.ID)
	httpx.WriteJSON(w, h.logger, http.StatusOK, order)
}
