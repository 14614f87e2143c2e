package cart

import (
	"github.com/google/uuid"

	"github.com/distrocart/backend/pkg/db/models"
	"github.com/distrocart/backend/pkg/enums"
	"github.com/distrocart/backend/pkg/money"
)

// CartSummary is the serialized cart returned by the HTTP surface.
type CartSummary struct {
	ID         uuid.UUID         `json:"id"`
	Status     enums.CartStatus  `json:"status"`
	ItemsCount int               `json:"items_count"`
	Total      string            `json:"total"`
	Items      []CartItemSummary `json:"items"`
}

// CartItemSummary is one cart line with its offering snapshot.
type CartItemSummary struct {
	ID              uuid.UUID `json:"id"`
	OfferingID      uuid.UUID `json:"offering_id"`
	ProductName     string    `json:"product_name"`
	DistributorName string    `json:"distributor_name"`
	Quantity        int       `json:"quantity"`
	UnitPrice       string    `json:"unit_price"`
	LineTotal       string    `json:"line_total"`
	IsOptimized     bool      `json:"is_optimized"`
}

// NewCartSummary flattens a hydrated cart into its response shape. Prices
// render in major units from the stored cents.
func NewCartSummary(cart *models.Cart) CartSummary {
	items := make([]CartItemSummary, 0, len(cart.Items))
	for _, item := range cart.Items {
		row := CartItemSummary{
			ID:          item.ID,
			OfferingID:  item.DistributorProductID,
			Quantity:    item.Quantity,
			UnitPrice:   money.FormatMajor(item.UnitPriceCents),
			LineTotal:   money.FormatMajor(item.Quantity * item.UnitPriceCents),
			IsOptimized: item.IsOptimized,
		}
		if offering := item.DistributorProduct; offering != nil {
			if offering.Product != nil {
				row.ProductName = offering.Product.Name
			}
			if offering.Distributor != nil {
				row.DistributorName = offering.Distributor.Name
			}
		}
		items = append(items, row)
	}

	return CartSummary{
		ID:         cart.ID,
		Status:     cart.Status,
		ItemsCount: len(items),
		Total:      money.FormatMajor(cart.TotalCents()),
		Items:      items,
	}
}
