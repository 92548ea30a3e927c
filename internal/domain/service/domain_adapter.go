package service

import "github.com/shopspring/decimal"

// MaxAdaptedLeadTime is the upper bound of the hotel model's lead-time range.
const MaxAdaptedLeadTime = 350

// AdaptLeadTime rescales restaurant advance-booking days into the hotel
// lead-time distribution. The mapping is piecewise linear, continuous at every
// breakpoint and capped at MaxAdaptedLeadTime. Non-positive input maps to 0.
func AdaptLeadTime(days int) int {
	d := float64(days)
	var scaled float64

	switch {
	case days <= 0:
		return 0
	case days == 1:
		scaled = 15
	case days <= 3:
		scaled = 15 + (d-1)*25
	case days <= 7:
		scaled = 65 + (d-3)*6.25
	case days <= 14:
		scaled = 90 + (d-7)*10
	case days <= 30:
		scaled = 160 + (d-14)*2.5
	default:
		scaled = min(MaxAdaptedLeadTime, 200+(d-30)*2)
	}

	return int(scaled)
}

// AdaptPrice rescales the estimated spend per cover into the hotel average
// room price range. Spend below 80 is multiplied by 1.5, spend from 150 up by
// 1.2, and the multiplier tapers linearly in between. The result is rounded
// to two decimals. Non-positive spend maps to 0.
func AdaptPrice(spend float64) float64 {
	var multiplier float64

	switch {
	case spend <= 0:
		return 0
	case spend < 80:
		multiplier = 1.5
	case spend < 150:
		multiplier = 1.5 - (spend-80)*(0.3/70)
	default:
		multiplier = 1.2
	}

	return decimal.NewFromFloat(spend * multiplier).Round(2).InexactFloat64()
}
