package valueobject

import "fmt"

// Restaurant-calibrated thresholds on no-show risk. Boundary values belong to
// the higher-risk bucket.
const (
	RiskHighThreshold   = 0.70
	RiskMediumThreshold = 0.40
)

// RiskLabel is an immutable value object representing the no-show risk bucket.
type RiskLabel struct {
	value string
}

var (
	RiskLabelLow    = RiskLabel{value: "Low Risk"}
	RiskLabelMedium = RiskLabel{value: "Medium Risk"}
	RiskLabelHigh   = RiskLabel{value: "High Risk"}
)

// RiskLabelFromString reconstructs a RiskLabel from its string representation.
func RiskLabelFromString(s string) (RiskLabel, error) {
	switch s {
	case "Low Risk":
		return RiskLabelLow, nil
	case "Medium Risk":
		return RiskLabelMedium, nil
	case "High Risk":
		return RiskLabelHigh, nil
	default:
		return RiskLabel{}, fmt.Errorf("invalid risk label: %s", s)
	}
}

// RiskLabelFromRisk derives the label from a no-show risk in [0,1].
func RiskLabelFromRisk(risk float64) RiskLabel {
	switch {
	case risk >= RiskHighThreshold:
		return RiskLabelHigh
	case risk >= RiskMediumThreshold:
		return RiskLabelMedium
	default:
		return RiskLabelLow
	}
}

// String returns the string representation.
func (r RiskLabel) String() string {
	return r.value
}

// IsZero returns true if the RiskLabel has not been set.
func (r RiskLabel) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another RiskLabel.
func (r RiskLabel) Equal(other RiskLabel) bool {
	return r.value == other.value
}

// IsHigh reports whether the label is High Risk.
func (r RiskLabel) IsHigh() bool {
	return r.value == RiskLabelHigh.value
}
