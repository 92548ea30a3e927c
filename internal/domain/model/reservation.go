package model

import (
	"fmt"
	"strings"
	"time"
)

// Defaults applied by callers that receive partially filled reservations.
const (
	DefaultTenantID       = "default"
	DefaultPartySize      = 2
	DefaultSpendPerCover  = 80.0
	DefaultBookingChannel = "Online"
)

var reservationDateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ReservationParams carries the raw fields of a restaurant reservation.
type ReservationParams struct {
	TableNumber            *int
	TenantID               string
	GuestName              string
	ReservationDate        string
	ReservationTime        string
	BookingChannel         string
	Notes                  string
	EstimatedSpendPerCover float64
	PartySize              int
	Children               int
	BookingAdvanceDays     int
	SpecialNeedsCount      int
	PreviousCancellations  int
	PreviousCompletions    int
	IsRepeatGuest          bool
}

// Reservation is a validated restaurant reservation awaiting a prediction.
type Reservation struct {
	date                  time.Time
	tableNumber           *int
	tenantID              string
	guestName             string
	reservationTime       string
	bookingChannel        string
	notes                 string
	spendPerCover         float64
	partySize             int
	children              int
	advanceDays           int
	specialNeeds          int
	previousCancellations int
	previousCompletions   int
	hasDate               bool
	repeatGuest           bool
}

// NewReservation validates the params and parses the optional reservation date.
// Every validation failure wraps ErrMalformedInput.
func NewReservation(p ReservationParams) (*Reservation, error) {
	if strings.TrimSpace(p.TenantID) == "" {
		return nil, fmt.Errorf("%w: tenant ID is required", ErrMalformedInput)
	}
	if p.PartySize < 1 {
		return nil, fmt.Errorf("%w: party size must be at least 1, got %d", ErrMalformedInput, p.PartySize)
	}
	if p.Children < 0 {
		return nil, fmt.Errorf("%w: children must not be negative", ErrMalformedInput)
	}
	if p.BookingAdvanceDays < 0 {
		return nil, fmt.Errorf("%w: booking advance days must not be negative", ErrMalformedInput)
	}
	if p.SpecialNeedsCount < 0 {
		return nil, fmt.Errorf("%w: special needs count must not be negative", ErrMalformedInput)
	}
	if p.PreviousCancellations < 0 || p.PreviousCompletions < 0 {
		return nil, fmt.Errorf("%w: visit history counts must not be negative", ErrMalformedInput)
	}
	if p.EstimatedSpendPerCover < 0 {
		return nil, fmt.Errorf("%w: estimated spend per cover must not be negative", ErrMalformedInput)
	}

	r := &Reservation{
		tableNumber:           p.TableNumber,
		tenantID:              p.TenantID,
		guestName:             p.GuestName,
		reservationTime:       p.ReservationTime,
		bookingChannel:        p.BookingChannel,
		notes:                 p.Notes,
		spendPerCover:         p.EstimatedSpendPerCover,
		partySize:             p.PartySize,
		children:              p.Children,
		advanceDays:           p.BookingAdvanceDays,
		specialNeeds:          p.SpecialNeedsCount,
		previousCancellations: p.PreviousCancellations,
		previousCompletions:   p.PreviousCompletions,
		repeatGuest:           p.IsRepeatGuest,
	}
	if r.bookingChannel == "" {
		r.bookingChannel = DefaultBookingChannel
	}

	if p.ReservationDate != "" {
		date, err := ParseReservationDate(p.ReservationDate)
		if err != nil {
			return nil, err
		}
		r.date = date
		r.hasDate = true
	}

	return r, nil
}

// ParseReservationDate accepts an ISO-8601 date or date-time.
func ParseReservationDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range reservationDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid reservation date %q", ErrMalformedInput, s)
}

// Adults is the party size less children, never below one.
func (r *Reservation) Adults() int {
	return max(1, r.partySize-r.children)
}

// Date returns the reservation date and whether one was supplied.
func (r *Reservation) Date() (time.Time, bool) {
	return r.date, r.hasDate
}

// --- Accessors ---

func (r *Reservation) TenantID() string                { return r.tenantID }
func (r *Reservation) GuestName() string               { return r.guestName }
func (r *Reservation) PartySize() int                  { return r.partySize }
func (r *Reservation) Children() int                   { return r.children }
func (r *Reservation) BookingAdvanceDays() int         { return r.advanceDays }
func (r *Reservation) SpecialNeedsCount() int          { return r.specialNeeds }
func (r *Reservation) IsRepeatGuest() bool             { return r.repeatGuest }
func (r *Reservation) EstimatedSpendPerCover() float64 { return r.spendPerCover }
func (r *Reservation) PreviousCancellations() int      { return r.previousCancellations }
func (r *Reservation) PreviousCompletions() int        { return r.previousCompletions }
func (r *Reservation) BookingChannel() string          { return r.bookingChannel }
func (r *Reservation) Notes() string                   { return r.notes }
func (r *Reservation) ReservationTime() string         { return r.reservationTime }
func (r *Reservation) TableNumber() *int               { return r.tableNumber }
