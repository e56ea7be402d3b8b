package customers

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

	customer, err := h.service.Create(r.Context(), req)
	if err != nil {
		httpx.WriteDomainError(w, h.logger, err, "create customer")
		return
	}

	h.logger.Info("customer created", "customer_id", customer.ID)
	httpx.WriteJSON(w, h.logger, http.StatusCreated, customer)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}
	req.ID = r.PathValue("id")

	customer, err := h.service.Update(r.Context(), req)
	if err != nil {
		httpx.WriteDomainError(w, h.logger, err, "update customer")
		return
	}

	h.logger.Info("customer updated", "customer_id", customer.ID)
	httpx.WriteJSON(w, h.logger, http.StatusOK, customer)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.WriteDomainError(w, h.logger, err, "delete customer")
		return
	}

	h.logger.Info("customer deleted", "customer_id", id)
	httpx.WriteJSON(w, h.logger, http.StatusOK, httpx.DeletedResponse{ID: id, Message: "customer deleted"})
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	customer, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.WriteDomainError(w, h.logger, err, "get customer")
		return
	}

	httpx.WriteJSON(w, h.logger, http.StatusOK, customer)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.List(r.Context())
	if err != nil {
		httpx.WriteDomainError(w, h.logger, err, "list customers")
		return
	}

	h.logger.Info("customers listed", "count", len(customers))
	httpx.WriteJSON(w, h.logger, http.StatusOK, customers)
}
