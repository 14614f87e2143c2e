package cartdto

import "github.com/google/uuid"

// WeightPreset is a scoring profile exposed for client selection.
type WeightPreset struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	DisplayName         string    `json:"display_name"`
	PriceWeight         float64   `json:"price_weight"`
	SpeedWeight         float64   `json:"speed_weight"`
	AvailabilityWeight  float64   `json:"availability_weight"`
	ConsolidationWeight float64   `json:"consolidation_weight"`
	IsDefault           bool      `json:"is_default"`
}
