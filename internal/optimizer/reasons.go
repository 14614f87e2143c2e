package optimizer

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/distrocart/backend/pkg/db/models"
	"github.com/distrocart/backend/pkg/enums"
	"github.com/distrocart/backend/pkg/money"
)

// Reason is one rendered justification for a suggested switch.
type Reason struct {
	Code    enums.ReasonCode `json:"code"`
	Message string           `json:"message"`
	Impact  enums.Impact     `json:"impact"`
}

// impact thresholds, in minor units and days
const (
	priceImpactHighCents     = 1000
	priceImpactMediumCents   = 500
	deliveryImpactHighDays   = 3
	deliveryImpactMediumDays = 2
)

// buildReasonCodes tests the four reason conditions in their fixed order.
// Every condition that holds contributes its code once.
func buildReasonCodes(original, suggested *models.DistributorProduct, primaryDistributorID *uuid.UUID) []enums.ReasonCode {
	var codes []enums.ReasonCode

	if suggested.PriceCents < original.PriceCents {
		codes = append(codes, enums.ReasonPriceSavings)
	}
	if suggested.DeliveryDays < original.DeliveryDays {
		codes = append(codes, enums.ReasonFasterDelivery)
	}
	if suggested.InStock && !original.InStock {
		codes = append(codes, enums.ReasonInStock)
	}
	if primaryDistributorID != nil &&
		suggested.DistributorID == *primaryDistributorID &&
		original.DistributorID != *primaryDistributorID {
		codes = append(codes, enums.ReasonConsolidation)
	}

	return codes
}

// DescribeReason renders a stored reason code against the change's deltas:
// priceDiffCents and deliveryDaysDiff as persisted (positive = savings /
// faster).
func DescribeReason(code enums.ReasonCode, priceDiffCents, deliveryDaysDiff int) Reason {
	switch code {
	case enums.ReasonPriceSavings:
		cents := abs(priceDiffCents)
		return Reason{
			Code:    code,
			Message: fmt.Sprintf("Save $%s on this item", money.FormatMajor(cents)),
			Impact:  tier(cents, priceImpactHighCents, priceImpactMediumCents),
		}
	case enums.ReasonFasterDelivery:
		days := abs(deliveryDaysDiff)
		plural := "s"
		if days == 1 {
			plural = ""
		}
		return Reason{
			Code:    code,
			Message: fmt.Sprintf("Arrives %d day%s sooner", days, plural),
			Impact:  tier(days, deliveryImpactHighDays, deliveryImpactMediumDays),
		}
	case enums.ReasonInStock:
		return Reason{Code: code, Message: "Item is in stock", Impact: enums.ImpactHigh}
	case enums.ReasonConsolidation:
		return Reason{Code: code, Message: "Consolidate with primary distributor", Impact: enums.ImpactMedium}
	}
	return Reason{Code: code, Message: code.Label(), Impact: enums.ImpactLow}
}

func tier(value, high, medium int) enums.Impact {
	switch {
	case value >= high:
		return enums.ImpactHigh
	case value >= medium:
		return enums.ImpactMedium
	default:
		return enums.ImpactLow
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
