package enums

// Impact tiers how strongly a reason should be surfaced to the user.
type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

// String implements fmt.Stringer.
func (i Impact) String() string {
	return string(i)
}
