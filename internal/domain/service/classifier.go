package service

import (
	"github.com/bibbank/guestrisk/internal/domain/model"
	"github.com/bibbank/guestrisk/internal/domain/valueobject"
)

// HighSpendThreshold is the spend per cover that earns the High Spend Potential tag.
const HighSpendThreshold = 150.0

// LoyalCompletionsThreshold is the number of completed visits a repeat guest
// needs to count as a Loyal Regular.
const LoyalCompletionsThreshold = 3

// Classification holds the labels derived from a blended score.
type Classification struct {
	RiskLabel     valueobject.RiskLabel
	BehavioralTag valueobject.BehavioralTag
	SpendTier     valueobject.SpendTier
}

// Classify derives the risk label, behavioral tag and spend tier.
func Classify(r *model.Reservation, noShowRisk float64) Classification {
	return Classification{
		RiskLabel:     valueobject.RiskLabelFromRisk(noShowRisk),
		BehavioralTag: BehavioralTagFor(r, noShowRisk),
		SpendTier:     valueobject.SpendTierFromSpend(r.EstimatedSpendPerCover()),
	}
}

// BehavioralTagFor applies the tag precedence. The first match wins.
func BehavioralTagFor(r *model.Reservation, noShowRisk float64) valueobject.BehavioralTag {
	switch {
	case noShowRisk >= valueobject.RiskHighThreshold:
		return valueobject.TagLikelyNoShow
	case r.EstimatedSpendPerCover() >= HighSpendThreshold:
		return valueobject.TagHighSpendPotential
	case r.IsRepeatGuest() && r.PreviousCompletions() >= LoyalCompletionsThreshold:
		return valueobject.TagLoyalRegular
	case noShowRisk >= valueobject.RiskMediumThreshold:
		return valueobject.TagWatchList
	default:
		return valueobject.TagLowRisk
	}
}
