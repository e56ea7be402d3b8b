// Package worker turns order.created events into confirmation emails.
package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/joao-fontenele/bugstore/internal/domain"
	"github.com/joao-fontenele/bugstore/internal/messaging"
)

var errCustomerGone = errors.New("customer no longer exists")

type NotificationHandler struct {
	apiURL          string
	emailServiceURL string
	httpClient      *http.Client
	logger          *slog.Logger
}

func NewNotificationHandler(apiURL, emailServiceURL string, client *http.Client, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		apiURL:          strings.TrimRight(apiURL, "/"),
		emailServiceURL: strings.TrimRight(emailServiceURL, "/"),
		httpClient:      client,
		logger:          logger,
	}
}

type emailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Handle processes one order.created payload. Undecodable payloads and rejected emails are
// permanent failures; network and 5xx failures are returned for redelivery.
func (h *NotificationHandler) Handle(ctx context.Context, payload []byte) error {
	var event domain.OrderCreatedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return messaging.Permanent(fmt.Errorf("unmarshal order created event: %w", err))
	}

	h.logger.Info("processing order created event", "order_id", event.OrderID, "customer_id", event.CustomerID)

	customer, err := h.fetchCustomer(ctx, event.CustomerID)
	if errors.Is(err, errCustomerGone) {
		h.logger.Warn("skipping confirmation, customer deleted", "order_id", event.OrderID, "customer_id", event.CustomerID)
		return nil
	}
	if err != nil {
		h.logger.Error("failed to fetch customer", "error", err, "order_id", event.OrderID)
		return fmt.Errorf("fetch customer: %w", err)
	}

	if err := h.sendEmail(ctx, confirmationEmail(customer, event)); err != nil {
		h.logger.Error("failed to send confirmation email", "error", err, "order_id", event.OrderID)
		return fmt.Errorf("send confirmation email: %w", err)
	}

	h.logger.Info("order confirmation sent", "order_id", event.OrderID, "to", customer.Email)
	return nil
}

func (h *NotificationHandler) fetchCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	endpoint := h.apiURL + "/v1/customers/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errCustomerGone
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("api returned status %d", resp.StatusCode)
	}

	var customer domain.Customer
	if err := json.NewDecoder(resp.Body).Decode(&customer); err != nil {
		return nil, fmt.Errorf("decode customer: %w", err)
	}
	return &customer, nil
}

func confirmationEmail(customer *domain.Customer, event domain.OrderCreatedEvent) emailRequest {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nThanks for your order %s.\n\n", customer.Name, event.OrderID)
	for _, line := range event.Lines {
		fmt.Fprintf(&b, "%d x %s @ %s = %s\n", line.Quantity, line.ProductTitle, line.UnitPrice.StringFixed(2), line.Total.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", event.Total.StringFixed(2))

	return emailRequest{
		To:      customer.Email,
		Subject: "Order Confirmation: " + event.OrderID,
		Body:    b.String(),
	}
}

func (h *NotificationHandler) sendEmail(ctx context.Context, email emailRequest) error {
	data, err := json.Marshal(email)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.emailServiceURL+"/send", bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode >= 500:
		return fmt.Errorf("email service returned status %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return messaging.Permanent(fmt.Errorf("email service rejected message with status %d", resp.StatusCode))
	}

	return nil
}
