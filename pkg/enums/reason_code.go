package enums

import "fmt"

// ReasonCode explains why an alternative offering was suggested.
type ReasonCode string

const (
	ReasonPriceSavings   ReasonCode = "PRICE_SAVINGS"
	ReasonFasterDelivery ReasonCode = "FASTER_DELIVERY"
	ReasonInStock        ReasonCode = "IN_STOCK"
	ReasonConsolidation  ReasonCode = "CONSOLIDATION"
)

var validReasonCodes = []ReasonCode{
	ReasonPriceSavings,
	ReasonFasterDelivery,
	ReasonInStock,
	ReasonConsolidation,
}

// String implements fmt.Stringer.
func (r ReasonCode) String() string {
	return string(r)
}

// Label returns the human-facing name of the reason.
func (r ReasonCode) Label() string {
	switch r {
	case ReasonPriceSavings:
		return "Price Savings"
	case ReasonFasterDelivery:
		return "Faster Delivery"
	case ReasonInStock:
		return "In Stock"
	case ReasonConsolidation:
		return "Distributor Consolidation"
	}
	return string(r)
}

// IsValid reports whether the value is a known ReasonCode.
func (r ReasonCode) IsValid() bool {
	for _, candidate := range validReasonCodes {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseReasonCode converts raw input into a ReasonCode.
func ParseReasonCode(value string) (ReasonCode, error) {
	for _, candidate := range validReasonCodes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid reason code %q", value)
}
