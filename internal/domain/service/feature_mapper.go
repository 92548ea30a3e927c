package service

import (
	"fmt"
	"time"

	"github.com/bibbank/guestrisk/internal/domain/model"
	"github.com/bibbank/guestrisk/internal/domain/valueobject"
)

// FeatureMapper translates a restaurant reservation into the hotel model's
// feature space.
type FeatureMapper struct {
	now func() time.Time
}

// NewFeatureMapper creates a FeatureMapper that falls back to today's date when
// a reservation carries none.
func NewFeatureMapper() *FeatureMapper {
	return &FeatureMapper{now: time.Now}
}

// NewFeatureMapperWithClock creates a FeatureMapper with an injectable clock.
func NewFeatureMapperWithClock(now func() time.Time) *FeatureMapper {
	return &FeatureMapper{now: now}
}

// Map builds the feature record for a reservation. The arrival year is always
// pinned to model.TrainingYear.
func (m *FeatureMapper) Map(r *model.Reservation) (model.FeatureRecord, error) {
	if r == nil {
		return model.FeatureRecord{}, fmt.Errorf("%w: reservation is required", model.ErrMalformedInput)
	}

	var weekend, week int
	arrival, hasDate := r.Date()
	if hasDate {
		switch arrival.Weekday() {
		case time.Friday, time.Saturday:
			weekend = 1
		default:
			week = 1
		}
	} else {
		arrival = m.now()
	}

	repeated := 0
	if r.IsRepeatGuest() {
		repeated = 1
	}

	rec := model.FeatureRecord{
		NoOfAdults:                      r.Adults(),
		NoOfChildren:                    r.Children(),
		NoOfWeekendNights:               weekend,
		NoOfWeekNights:                  week,
		LeadTime:                        AdaptLeadTime(r.BookingAdvanceDays()),
		ArrivalYear:                     model.TrainingYear,
		ArrivalMonth:                    int(arrival.Month()),
		ArrivalDate:                     arrival.Day(),
		RepeatedGuest:                   repeated,
		NoOfPreviousCancellations:       r.PreviousCancellations(),
		NoOfPreviousBookingsNotCanceled: r.PreviousCompletions(),
		AvgPricePerRoom:                 AdaptPrice(r.EstimatedSpendPerCover()),
		RequiredCarParkingSpace:         0,
		NoOfSpecialRequests:             r.SpecialNeedsCount(),
		TypeOfMealPlan:                  valueobject.MealPlanFromSpecialNeeds(r.SpecialNeedsCount()).String(),
		RoomTypeReserved:                valueobject.RoomTypeFromSpend(r.EstimatedSpendPerCover()).String(),
		MarketSegmentType:               valueobject.MarketSegmentFromChannel(r.BookingChannel()).String(),
	}

	if err := rec.Validate(); err != nil {
		return model.FeatureRecord{}, fmt.Errorf("mapped feature record is invalid: %w", err)
	}

	return rec, nil
}
