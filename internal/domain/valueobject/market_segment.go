package valueobject

import "strings"

// MarketSegment is the hotel-model market segment a booking channel maps to.
type MarketSegment struct {
	value string
}

var (
	MarketSegmentOnline    = MarketSegment{value: "Online"}
	MarketSegmentOffline   = MarketSegment{value: "Offline"}
	MarketSegmentCorporate = MarketSegment{value: "Corporate"}
)

// MarketSegmentFromChannel maps a restaurant booking channel, case-insensitively.
// Unrecognised channels map to Online.
func MarketSegmentFromChannel(channel string) MarketSegment {
	switch strings.ToLower(strings.TrimSpace(channel)) {
	case "phone", "walk-in":
		return MarketSegmentOffline
	case "corporate":
		return MarketSegmentCorporate
	default:
		return MarketSegmentOnline
	}
}

// String returns the string representation.
func (m MarketSegment) String() string {
	return m.value
}

// Equal checks equality with another MarketSegment.
func (m MarketSegment) Equal(other MarketSegment) bool {
	return m.value == other.value
}

// RoomType is the hotel room tier used as a proxy for the restaurant service tier.
type RoomType struct {
	value string
}

var (
	RoomTypePremium  = RoomType{value: "Room_Type 4"}
	RoomTypeMid      = RoomType{value: "Room_Type 2"}
	RoomTypeStandard = RoomType{value: "Room_Type 1"}
	RoomTypeBudget   = RoomType{value: "Room_Type 6"}
)

// RoomTypeFromSpend selects the tier from the raw, unadapted spend per cover.
func RoomTypeFromSpend(spend float64) RoomType {
	switch {
	case spend >= 200:
		return RoomTypePremium
	case spend >= 120:
		return RoomTypeMid
	case spend >= 60:
		return RoomTypeStandard
	default:
		return RoomTypeBudget
	}
}

// String returns the string representation.
func (r RoomType) String() string {
	return r.value
}

// MealPlan is the hotel meal plan derived from the count of special needs.
type MealPlan struct {
	value string
}

var (
	MealPlanNotSelected = MealPlan{value: "Not Selected"}
	MealPlan1           = MealPlan{value: "Meal Plan 1"}
	MealPlan3           = MealPlan{value: "Meal Plan 3"}
)

// MealPlanFromSpecialNeeds selects the plan from the special-needs count.
func MealPlanFromSpecialNeeds(count int) MealPlan {
	switch {
	case count >= 3:
		return MealPlan3
	case count >= 1:
		return MealPlan1
	default:
		return MealPlanNotSelected
	}
}

// String returns the string representation.
func (m MealPlan) String() string {
	return m.value
}
