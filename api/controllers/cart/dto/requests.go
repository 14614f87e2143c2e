package cartdto

import "github.com/google/uuid"

// AddItemRequest is the payload for adding an offering to the active cart.
type AddItemRequest struct {
	DistributorProductID uuid.UUID `json:"distributor_product_id" validate:"required"`
	Quantity             int       `json:"quantity" validate:"required,min=1"`
}

// OptimizeRequest selects the weight preset driving an optimization run.
type OptimizeRequest struct {
	WeightPreset string `json:"weight_preset" validate:"required,max=50"`
}
