package optimizer

import (
	"github.com/google/uuid"

	"github.com/distrocart/backend/pkg/db/models"
	"github.com/distrocart/backend/pkg/types"
)

// Score computes the weighted desirability of one offering in [0,1].
// Four normalized signals: cheaper scores higher, faster scores higher,
// in-stock scores 1, and matching the cart's primary distributor scores 1.
// A weight profile summing to zero yields 0 for every offering.
func Score(offering *models.DistributorProduct, weights types.WeightSet, sctx ScoringContext, primaryDistributorID *uuid.UUID) float64 {
	total := weights.Total()
	if total <= 0 {
		return 0
	}

	priceScore := inverseNormalized(offering.PriceCents, sctx.MinPriceCents, sctx.MaxPriceCents)
	speedScore := inverseNormalized(offering.DeliveryDays, sctx.MinDeliveryDays, sctx.MaxDeliveryDays)

	availabilityScore := 0.0
	if offering.InStock {
		availabilityScore = 1.0
	}

	consolidationScore := 0.0
	if primaryDistributorID != nil && offering.DistributorID == *primaryDistributorID {
		consolidationScore = 1.0
	}

	weighted := priceScore*weights.Price +
		speedScore*weights.Speed +
		availabilityScore*weights.Availability +
		consolidationScore*weights.Consolidation

	return weighted / total
}

// inverseNormalized maps value onto [0,1] with the minimum of the range
// scoring 1. A degenerate range carries no signal and scores 1 everywhere.
func inverseNormalized(value, min, max int) float64 {
	if max <= min {
		return 1.0
	}
	return 1 - float64(value-min)/float64(max-min)
}
