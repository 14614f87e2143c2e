package optimizer

import (
	"github.com/google/uuid"

	"github.com/distrocart/backend/pkg/db/models"
	"github.com/distrocart/backend/pkg/enums"
	"github.com/distrocart/backend/pkg/money"
)

// Result is the serialized outcome of one optimize run.
type Result struct {
	SessionID       uuid.UUID    `json:"session_id"`
	Changes         []ChangeView `json:"changes"`
	TotalSavings    float64      `json:"total_savings"`
	ItemsOptimized  int          `json:"items_optimized"`
	ItemsAnalyzed   int          `json:"items_analyzed"`
	ExecutionTimeMs int64        `json:"execution_time_ms"`
}

// ChangeView is one suggested substitution with its rendered reasons.
type ChangeView struct {
	Original               OfferingView `json:"original"`
	Suggested              OfferingView `json:"suggested"`
	PriceDifference        float64      `json:"price_difference"`
	DeliveryDaysDifference int          `json:"delivery_days_difference"`
	Reasons                []Reason     `json:"reasons"`
}

// OfferingView is the offering snapshot embedded in a change.
type OfferingView struct {
	ID              uuid.UUID `json:"id"`
	ProductName     string    `json:"product_name"`
	DistributorName string    `json:"distributor_name"`
	Price           float64   `json:"price"`
	Quantity        int       `json:"quantity"`
	DeliveryDays    int       `json:"delivery_days"`
	InStock         bool      `json:"in_stock"`
}

// changeDraft pairs the domain objects behind one recorded change for
// rendering after the session persists.
type changeDraft struct {
	item             models.CartItem
	original         *models.DistributorProduct
	suggested        *models.DistributorProduct
	originalScore    float64
	suggestedScore   float64
	priceDiffCents   int
	deliveryDaysDiff int
	codes            []enums.ReasonCode
}

func buildResult(session *models.OptimizationSession, drafts []changeDraft) *Result {
	changes := make([]ChangeView, 0, len(drafts))
	for _, draft := range drafts {
		productName := ""
		if draft.original.Product != nil {
			productName = draft.original.Product.Name
		}

		reasons := make([]Reason, 0, len(draft.codes))
		for _, code := range draft.codes {
			reasons = append(reasons, DescribeReason(code, draft.priceDiffCents, draft.deliveryDaysDiff))
		}

		changes = append(changes, ChangeView{
			Original:               offeringView(draft.original, productName, draft.item.Quantity),
			Suggested:              offeringView(draft.suggested, productName, draft.item.Quantity),
			PriceDifference:        money.MajorFloat(draft.priceDiffCents),
			DeliveryDaysDifference: draft.deliveryDaysDiff,
			Reasons:                reasons,
		})
	}

	return &Result{
		SessionID:       session.ID,
		Changes:         changes,
		TotalSavings:    money.MajorFloat(session.TotalSavingsCents),
		ItemsOptimized:  session.ItemsOptimized,
		ItemsAnalyzed:   session.ItemsAnalyzed,
		ExecutionTimeMs: session.ExecutionTimeMs,
	}
}

func offeringView(offering *models.DistributorProduct, productName string, quantity int) OfferingView {
	view := OfferingView{
		ID:           offering.ID,
		ProductName:  productName,
		Price:        money.MajorFloat(offering.PriceCents),
		Quantity:     quantity,
		DeliveryDays: offering.DeliveryDays,
		InStock:      offering.InStock,
	}
	if offering.Distributor != nil {
		view.DistributorName = offering.Distributor.Name
	}
	return view
}
