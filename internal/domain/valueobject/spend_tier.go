package valueobject

import "fmt"

// SpendTier buckets the estimated spend per cover.
type SpendTier struct {
	value string
}

var (
	SpendTierBudget   = SpendTier{value: "Budget"}
	SpendTierStandard = SpendTier{value: "Standard"}
	SpendTierPremium  = SpendTier{value: "Premium"}
	SpendTierLuxury   = SpendTier{value: "Luxury"}
)

// SpendTierFromString reconstructs a SpendTier from its string representation.
func SpendTierFromString(s string) (SpendTier, error) {
	switch s {
	case "Budget":
		return SpendTierBudget, nil
	case "Standard":
		return SpendTierStandard, nil
	case "Premium":
		return SpendTierPremium, nil
	case "Luxury":
		return SpendTierLuxury, nil
	default:
		return SpendTier{}, fmt.Errorf("invalid spend tier: %s", s)
	}
}

// SpendTierFromSpend derives the tier from the raw spend per cover.
func SpendTierFromSpend(spend float64) SpendTier {
	switch {
	case spend >= 200:
		return SpendTierLuxury
	case spend >= 120:
		return SpendTierPremium
	case spend >= 60:
		return SpendTierStandard
	default:
		return SpendTierBudget
	}
}

// String returns the string representation.
func (s SpendTier) String() string {
	return s.value
}

// IsZero returns true if the tier has not been set.
func (s SpendTier) IsZero() bool {
	return s.value == ""
}

// Equal checks equality with another SpendTier.
func (s SpendTier) Equal(other SpendTier) bool {
	return s.value == other.value
}
