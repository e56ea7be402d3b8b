package orders

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/joao-fontenele/bugstore/internal/domain"
)

// distinctProductIDs returns the requested product ids without repeats, in first
// occurrence order.
func distinctProductIDs(items []ItemRequest) []string {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}

func missingProductIDs(ids []string, catalog map[string]domain.Product) []string {
	var missing []string
	for _, id := range ids {
		if _, ok := catalog[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// priceLines builds one line per item, in input order. Repeated products stay separate
// lines. Every product referenced by items must be present in catalog.
func priceLines(orderID string, items []ItemRequest, catalog map[string]domain.Product) ([]domain.OrderLine, decimal.Decimal) {
	lines := make([]domain.OrderLine, 0, len(items))
	total := decimal.Zero

	for _, item := range items {
		product := catalog[item.ProductID]
		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(lineTotal)

		lines = append(lines, domain.OrderLine{
			ID:           uuid.New().String(),
			OrderID:      orderID,
			ProductID:    product.ID,
			ProductTitle: product.Title,
			Quantity:     item.Quantity,
			UnitPrice:    product.Price,
			Total:        lineTotal,
		})
	}

	return lines, total
}
