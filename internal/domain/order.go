package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLine is one priced line of an order. UnitPrice, ProductTitle and Total are
// snapshots taken at creation and never change afterwards.
type OrderLine struct {
	ID           string          `json:"id"`
	OrderID      string          `json:"-"`
	ProductID    string          `json:"product_id"`
	ProductTitle string          `json:"product_title"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"price"`
	Total        decimal.Decimal `json:"total"`
}

type Order struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	Total      decimal.Decimal `json:"total"`
	Lines      []OrderLine     `json:"items"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// LinesTotal sums the line totals. A well-formed order has Total == LinesTotal().
func (o *Order) LinesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.Total)
	}
	return total
}
