package model

import "fmt"

// TrainingYear is the arrival year of the hotel data the network was trained
// on. Mapped records always carry it so the standardizer stays in range.
const TrainingYear = 2018

// Column counts of the fitted preprocessing pipeline.
const (
	NumericColumnCount     = 14
	CategoricalColumnCount = 3
)

// NumericColumns lists the numeric columns in fitted order.
var NumericColumns = [NumericColumnCount]string{
	"no_of_adults",
	"no_of_children",
	"no_of_weekend_nights",
	"no_of_week_nights",
	"lead_time",
	"arrival_year",
	"arrival_month",
	"arrival_date",
	"repeated_guest",
	"no_of_previous_cancellations",
	"no_of_previous_bookings_not_canceled",
	"avg_price_per_room",
	"required_car_parking_space",
	"no_of_special_requests",
}

// CategoricalColumns lists the categorical columns in fitted order.
var CategoricalColumns = [CategoricalColumnCount]string{
	"type_of_meal_plan",
	"room_type_reserved",
	"market_segment_type",
}

// FeatureRecord is one row in the hotel model's feature space.
type FeatureRecord struct {
	TypeOfMealPlan                  string
	RoomTypeReserved                string
	MarketSegmentType               string
	AvgPricePerRoom                 float64
	NoOfAdults                      int
	NoOfChildren                    int
	NoOfWeekendNights               int
	NoOfWeekNights                  int
	LeadTime                        int
	ArrivalYear                     int
	ArrivalMonth                    int
	ArrivalDate                     int
	RepeatedGuest                   int
	NoOfPreviousCancellations       int
	NoOfPreviousBookingsNotCanceled int
	RequiredCarParkingSpace         int
	NoOfSpecialRequests             int
}

// NumericValues returns the numeric fields in NumericColumns order.
func (f FeatureRecord) NumericValues() [NumericColumnCount]float64 {
	return [NumericColumnCount]float64{
		float64(f.NoOfAdults),
		float64(f.NoOfChildren),
		float64(f.NoOfWeekendNights),
		float64(f.NoOfWeekNights),
		float64(f.LeadTime),
		float64(f.ArrivalYear),
		float64(f.ArrivalMonth),
		float64(f.ArrivalDate),
		float64(f.RepeatedGuest),
		float64(f.NoOfPreviousCancellations),
		float64(f.NoOfPreviousBookingsNotCanceled),
		f.AvgPricePerRoom,
		float64(f.RequiredCarParkingSpace),
		float64(f.NoOfSpecialRequests),
	}
}

// CategoricalValues returns the categorical fields in CategoricalColumns order.
func (f FeatureRecord) CategoricalValues() [CategoricalColumnCount]string {
	return [CategoricalColumnCount]string{
		f.TypeOfMealPlan,
		f.RoomTypeReserved,
		f.MarketSegmentType,
	}
}

// Validate checks the invariants of a record produced from a reservation.
// Reference dataset rows are not expected to pass it.
func (f FeatureRecord) Validate() error {
	if f.NoOfAdults < 1 {
		return fmt.Errorf("mapped record must have at least one adult, got %d", f.NoOfAdults)
	}
	if f.ArrivalYear != TrainingYear {
		return fmt.Errorf("mapped record arrival year must be %d, got %d", TrainingYear, f.ArrivalYear)
	}
	if f.NoOfWeekendNights+f.NoOfWeekNights > 1 {
		return fmt.Errorf("weekend and week night flags are mutually exclusive")
	}
	if f.ArrivalMonth < 1 || f.ArrivalMonth > 12 || f.ArrivalDate < 1 || f.ArrivalDate > 31 {
		return fmt.Errorf("arrival month/day out of range: %d/%d", f.ArrivalMonth, f.ArrivalDate)
	}
	for i, v := range f.CategoricalValues() {
		if v == "" {
			return fmt.Errorf("categorical column %s is empty", CategoricalColumns[i])
		}
	}
	return nil
}
