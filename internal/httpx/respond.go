// Package httpx holds the JSON response helpers shared by the HTTP handlers.
package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/joao-fontenele/bugstore/internal/domain"
)

type ErrorResponse struct {
	Error             string              `json:"error"`
	Fields            []domain.FieldError `json:"fields,omitempty"`
	MissingProductIDs []string            `json:"missing_product_ids,omitempty"`
}

type DeletedResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, logger *slog.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func WriteError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	WriteJSON(w, logger, status, ErrorResponse{Error: message})
}

// StatusFor maps an error kind to its HTTP status. Untagged errors are 500.
func StatusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation, domain.KindReferenceInconsistent:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WriteDomainError renders err. Tagged errors are echoed to the caller; anything else is
// logged and hidden behind a generic 500.
func WriteDomainError(w http.ResponseWriter, logger *slog.Logger, err error, op string) {
	var de *domain.Error
	if !errors.As(err, &de) {
		logger.Error("failed to "+op, "error", err)
		WriteError(w, logger, http.StatusInternalServerError, "internal server error")
		return
	}

	WriteJSON(w, logger, StatusFor(err), ErrorResponse{
		Error:             de.Message,
		Fields:            de.Fields,
		MissingProductIDs: de.Missing,
	})
}

// DecodeJSON decodes the request body into dst, rejecting unknown fields.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
