package types

// WeightSet is the four-dimensional scoring weight profile used by the cart
// optimizer. Weights are non-negative and need not sum to 1.
type WeightSet struct {
	Price         float64 `json:"price_weight"`
	Speed         float64 `json:"speed_weight"`
	Availability  float64 `json:"availability_weight"`
	Consolidation float64 `json:"consolidation_weight"`
}

// Total returns the sum of all weights. A zero total is a degenerate but
// valid profile; the scorer maps it to a zero score.
func (w WeightSet) Total() float64 {
	return w.Price + w.Speed + w.Availability + w.Consolidation
}
