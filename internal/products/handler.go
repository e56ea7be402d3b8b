package products

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

	product, err := h.service.Create(r.Context(), req)
	if err != nil {
		httpx.WriteDomainError(w, h.logger, err, "create product")
		return
	}

	h.logger.Info("product created", "product_id", product.ID)
	httpx.WriteJSON(w, h.logger, http.StatusCreated, product)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}
	req.ID = r.PathValue("id")

	product, err := h.service.Update(r.Context(), req)
	if err != nil {
		httpx.WriteDomainError(w, h.logger, err, "update product")
		return
	}

	h.logger.Info("product updated", "product_id", product.ID)
	httpx.WriteJSON(w, h.logger, http.StatusOK, product)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.WriteDomainError(w, h.logger, err, "delete product")
		return
	}

	h.logger.Info("product deleted", "product_id", id)
	httpx.WriteJSON(w, h.logger, http.StatusOK, httpx.DeletedResponse{ID: id, Message: "product deleted"})
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.WriteDomainError(w, h.logger, err, "get product")
		return
	}

	httpx.WriteJSON(w, h.logger, http.StatusOK, product)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		httpx.WriteDomainError(w, h.logger, err, "list products")
		return
	}

	h.logger.Info("products listed", "count", len(products))
	httpx.WriteJSON(w, h.logger, http.StatusOK, products)
}
