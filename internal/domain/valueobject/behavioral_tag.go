package valueobject

import "fmt"

// BehavioralTag is an immutable value object summarising how a guest is
// expected to behave.
type BehavioralTag struct {
	value string
}

var (
	TagLikelyNoShow       = BehavioralTag{value: "Likely No-Show"}
	TagHighSpendPotential = BehavioralTag{value: "High Spend Potential"}
	TagLoyalRegular       = BehavioralTag{value: "Loyal Regular"}
	TagWatchList          = BehavioralTag{value: "Watch List"}
	TagLowRisk            = BehavioralTag{value: "Low Risk"}
)

// BehavioralTagFromString reconstructs a tag from its string representation.
func BehavioralTagFromString(s string) (BehavioralTag, error) {
	switch s {
	case "Likely No-Show":
		return TagLikelyNoShow, nil
	case "High Spend Potential":
		return TagHighSpendPotential, nil
	case "Loyal Regular":
		return TagLoyalRegular, nil
	case "Watch List":
		return TagWatchList, nil
	case "Low Risk":
		return TagLowRisk, nil
	default:
		return BehavioralTag{}, fmt.Errorf("invalid behavioral tag: %s", s)
	}
}

// String returns the string representation.
func (t BehavioralTag) String() string {
	return t.value
}

// IsZero returns true if the tag has not been set.
func (t BehavioralTag) IsZero() bool {
	return t.value == ""
}

// Equal checks equality with another BehavioralTag.
func (t BehavioralTag) Equal(other BehavioralTag) bool {
	return t.value == other.value
}
