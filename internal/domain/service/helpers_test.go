package service_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bibbank/guestrisk/internal/domain/model"
)

func newReservation(t *testing.T, mutate func(p *model.ReservationParams)) *model.Reservation {
	t.Helper()
	p := model.ReservationParams{
		TenantID:               "restaurant_001",
		GuestName:              "Test Guest",
		PartySize:              2,
		BookingAdvanceDays:     3,
		EstimatedSpendPerCover: 70,
		BookingChannel:         "Online",
	}
	if mutate != nil {
		mutate(&p)
	}
	r, err := model.NewReservation(p)
	require.NoError(t, err)
	return r
}

func serialNoShow(p *model.ReservationParams) {
	p.GuestName = "Alex Petrov"
	p.PartySize = 6
	p.BookingAdvanceDays = 0
	p.EstimatedSpendPerCover = 35
	p.PreviousCancellations = 5
}

func vipAnniversary(p *model.ReservationParams) {
	p.GuestName = "James & Sarah Whitfield"
	p.IsRepeatGuest = true
	p.PreviousCompletions = 8
	p.BookingAdvanceDays = 14
	p.EstimatedSpendPerCover = 220
	p.SpecialNeedsCount = 2
	p.BookingChannel = "Phone"
}
