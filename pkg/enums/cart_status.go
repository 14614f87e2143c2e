package enums

import "fmt"

// CartStatus tracks a cart through its lifecycle. The optimizer never
// transitions a cart itself; the enum exists for the surrounding flows.
type CartStatus string

const (
	CartStatusActive    CartStatus = "active"
	CartStatusOptimized CartStatus = "optimized"
	CartStatusCheckout  CartStatus = "checkout"
	CartStatusCompleted CartStatus = "completed"
	CartStatusAbandoned CartStatus = "abandoned"
)

var validCartStatuses = []CartStatus{
	CartStatusActive,
	CartStatusOptimized,
	CartStatusCheckout,
	CartStatusCompleted,
	CartStatusAbandoned,
}

// String implements fmt.Stringer.
func (c CartStatus) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CartStatus.
func (c CartStatus) IsValid() bool {
	for _, candidate := range validCartStatuses {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCartStatus converts raw input into a CartStatus.
func ParseCartStatus(value string) (CartStatus, error) {
	for _, candidate := range validCartStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cart status %q", value)
}
