package testutil

import "github.com/bibbank/guestrisk/internal/domain/model"

// TestTenantID is the tenant used across tests.
const TestTenantID = "restaurant_001"

// ReferenceRows returns a small hotel reference dataset that covers every
// category the feature mapper can emit.
func ReferenceRows() []model.FeatureRecord {
	type variant struct {
		meal    string
		room    string
		segment string
		adults  int
		lead    int
		price   float64
	}
	variants := []variant{
		{"Not Selected", "Room_Type 1", "Online", 2, 0, 65},
		{"Meal Plan 1", "Room_Type 2", "Offline", 2, 45, 95},
		{"Meal Plan 2", "Room_Type 4", "Corporate", 1, 120, 140},
		{"Meal Plan 3", "Room_Type 6", "Aviation", 3, 210, 180},
		{"Meal Plan 1", "Room_Type 1", "Complementary", 2, 15, 0},
		{"Not Selected", "Room_Type 4", "Online", 4, 300, 220},
	}

	rows := make([]model.FeatureRecord, 0, len(variants))
	for i, v := range variants {
		rows = append(rows, model.FeatureRecord{
			NoOfAdults:                      v.adults,
			NoOfChildren:                    i % 2,
			NoOfWeekendNights:               i % 3,
			NoOfWeekNights:                  1 + i%4,
			LeadTime:                        v.lead,
			ArrivalYear:                     2017 + i%2,
			ArrivalMonth:                    1 + (i*2)%12,
			ArrivalDate:                     1 + (i*5)%28,
			RepeatedGuest:                   i % 2,
			NoOfPreviousCancellations:       i % 3,
			NoOfPreviousBookingsNotCanceled: i,
			AvgPricePerRoom:                 v.price,
			RequiredCarParkingSpace:         i % 2,
			NoOfSpecialRequests:             i % 4,
			TypeOfMealPlan:                  v.meal,
			RoomTypeReserved:                v.room,
			MarketSegmentType:               v.segment,
		})
	}
	return rows
}
