// Package email is a mock mail sink: it validates and logs messages instead of delivering
// them.
package email

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/joao-fontenele/bugstore/internal/httpx"
	"github.com/joao-fontenele/bugstore/internal/validation"
)

type Handler struct {
	validator *validation.Validator
	logger    *slog.Logger
	sent      atomic.Int64
}

func NewHandler(validator *validation.Validator, logger *slog.Logger) *Handler {
	return &Handler{
		validator: validator,
		logger:    logger,
	}
}

type sendRequest struct {
	To      string `json:"to" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=200"`
	Body    string `json:"body" validate:"required"`
}

type sendResponse struct {
	Status string `json:"status"`
}

func (h *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.Check(req, "invalid email"); err != nil {
		httpx.WriteDomainError(w, h.logger, err, "send email")
		return
	}

	h.sent.Add(1)
	h.logger.Info("email sent", "to", req.To, "subject", req.Subject, "bytes", len(req.Body))

	httpx.WriteJSON(w, h.logger, http.StatusOK, sendResponse{Status: "sent"})
}

// Sent returns how many emails were accepted.
func (h *Handler) Sent() int64 {
	return h.sent.Load()
}
