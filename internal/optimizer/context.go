package optimizer

import "github.com/distrocart/backend/pkg/db/models"

// ScoringContext carries the normalization bounds for one optimize run,
// derived from every offering under consideration: each item's current
// offering plus each item's candidate alternatives.
type ScoringContext struct {
	MinPriceCents   int
	MaxPriceCents   int
	MinDeliveryDays int
	MaxDeliveryDays int
}

// BuildScoringContext computes price and delivery bounds across the given
// offering sets. Nil entries are skipped.
func BuildScoringContext(sets ...[]*models.DistributorProduct) ScoringContext {
	var sctx ScoringContext
	seeded := false

	for _, set := range sets {
		for _, offering := range set {
			if offering == nil {
				continue
			}
			if !seeded {
				sctx = ScoringContext{
					MinPriceCents:   offering.PriceCents,
					MaxPriceCents:   offering.PriceCents,
					MinDeliveryDays: offering.DeliveryDays,
					MaxDeliveryDays: offering.DeliveryDays,
				}
				seeded = true
				continue
			}
			if offering.PriceCents < sctx.MinPriceCents {
				sctx.MinPriceCents = offering.PriceCents
			}
			if offering.PriceCents > sctx.MaxPriceCents {
				sctx.MaxPriceCents = offering.PriceCents
			}
			if offering.DeliveryDays < sctx.MinDeliveryDays {
				sctx.MinDeliveryDays = offering.DeliveryDays
			}
			if offering.DeliveryDays > sctx.MaxDeliveryDays {
				sctx.MaxDeliveryDays = offering.DeliveryDays
			}
		}
	}

	return sctx
}
