package money

import "github.com/shopspring/decimal"

// Major converts integer minor-currency units into a major-unit decimal.
// Prices are stored and computed in cents throughout; only serialization
// crosses into major units.
func Major(cents int) decimal.Decimal {
	return decimal.New(int64(cents), -2)
}

// MajorFloat returns the major-unit amount as a float64 for JSON payloads.
func MajorFloat(cents int) float64 {
	f, _ := Major(cents).Float64()
	return f
}

// FormatMajor renders cents as a fixed two-decimal major-unit string,
// e.g. 995 -> "9.95".
func FormatMajor(cents int) string {
	return Major(cents).StringFixed(2)
}
