package cart

import (
	cartdto "github.com/distrocart/backend/api/controllers/cart/dto"
	"github.com/distrocart/backend/pkg/db/models"
)

func newWeightPresets(presets []models.OptimizationWeight) []cartdto.WeightPreset {
	out := make([]cartdto.WeightPreset, 0, len(presets))
	for _, preset := range presets {
		view := cartdto.WeightPreset{
			ID:                  preset.ID,
			Name:                preset.Name,
			DisplayName:         preset.Name,
			PriceWeight:         preset.PriceWeight,
			SpeedWeight:         preset.SpeedWeight,
			AvailabilityWeight:  preset.AvailabilityWeight,
			ConsolidationWeight: preset.ConsolidationWeight,
			IsDefault:           preset.IsDefault,
		}
		if preset.DisplayName != nil && *preset.DisplayName != "" {
			view.DisplayName = *preset.DisplayName
		}
		out = append(out, view)
	}
	return out
}
