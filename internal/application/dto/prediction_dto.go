package dto

import (
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/bibbank/guestrisk/internal/domain/model"
)

// MaxBatchSize bounds the reservations accepted in one batch request.
const MaxBatchSize = 500

// PredictRequest is the input DTO for the PredictGuest use case. Fields left
// out of the JSON body take their defaults.
type PredictRequest struct {
	ReservationID          *string `json:"reservation_id,omitempty"`
	ReservationDate        *string `json:"reservation_date,omitempty"`
	ReservationTime        *string `json:"reservation_time,omitempty"`
	TableNumber            *int    `json:"table_number,omitempty"`
	TenantID               string  `json:"-"`
	GuestName              string  `json:"guest_name" validate:"required,min=1,max=200"`
	BookingChannel         string  `json:"booking_channel"`
	Notes                  string  `json:"notes"`
	EstimatedSpendPerCover float64 `json:"estimated_spend_per_cover" validate:"gte=0"`
	PartySize              int     `json:"party_size" validate:"min=1,max=20"`
	Children               int     `json:"children" validate:"min=0,max=10"`
	BookingAdvanceDays     int     `json:"booking_advance_days" validate:"min=0"`
	SpecialNeedsCount      int     `json:"special_needs_count" validate:"min=0"`
	PreviousCancellations  int     `json:"previous_cancellations" validate:"min=0"`
	PreviousCompletions    int     `json:"previous_completions" validate:"min=0"`
	IsRepeatGuest          bool    `json:"is_repeat_guest"`
}

// NewPredictRequest returns a request carrying every default.
func NewPredictRequest() PredictRequest {
	return PredictRequest{
		TenantID:               model.DefaultTenantID,
		PartySize:              model.DefaultPartySize,
		EstimatedSpendPerCover: model.DefaultSpendPerCover,
		BookingChannel:         model.DefaultBookingChannel,
	}
}

// UnmarshalJSON decodes over the defaults so absent fields keep them.
func (r *PredictRequest) UnmarshalJSON(data []byte) error {
	type plain PredictRequest
	p := plain(NewPredictRequest())
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = PredictRequest(p)
	return nil
}

// Validate checks field bounds. Failures wrap model.ErrMalformedInput.
func (r PredictRequest) Validate() error {
	return validateStruct(r)
}

// ReservationParams maps the request to domain params.
func (r PredictRequest) ReservationParams() model.ReservationParams {
	tenantID := strings.TrimSpace(r.TenantID)
	if tenantID == "" {
		tenantID = model.DefaultTenantID
	}
	return model.ReservationParams{
		TenantID:               tenantID,
		GuestName:              r.GuestName,
		ReservationDate:        deref(r.ReservationDate),
		ReservationTime:        deref(r.ReservationTime),
		TableNumber:            r.TableNumber,
		BookingChannel:         r.BookingChannel,
		Notes:                  r.Notes,
		EstimatedSpendPerCover: r.EstimatedSpendPerCover,
		PartySize:              r.PartySize,
		Children:               r.Children,
		BookingAdvanceDays:     r.BookingAdvanceDays,
		SpecialNeedsCount:      r.SpecialNeedsCount,
		PreviousCancellations:  r.PreviousCancellations,
		PreviousCompletions:    r.PreviousCompletions,
		IsRepeatGuest:          r.IsRepeatGuest,
	}
}

// BatchPredictRequest is the input DTO for the PredictBatch use case.
type BatchPredictRequest struct {
	TenantID     string           `json:"-"`
	Reservations []PredictRequest `json:"reservations" validate:"max=500"`
}

// Validate checks the batch size. Each reservation is validated when scored.
func (r BatchPredictRequest) Validate() error {
	return validateStruct(r)
}

// AIPrediction is the display block of a prediction.
type AIPrediction struct {
	RiskLabel   string `json:"risk_label"`
	Explanation string `json:"explanation"`
	RiskScore   int    `json:"risk_score"`
}

// SmartTagResponse is one keyword tag found in the notes.
type SmartTagResponse struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	Color    string `json:"color"`
	Matched  string `json:"matched"`
}

// SentimentResponse is the tone of the notes.
type SentimentResponse struct {
	Label string  `json:"label"`
	Emoji string  `json:"emoji"`
	Score float64 `json:"score"`
}

// PredictionResponse is the output DTO for one reservation.
type PredictionResponse struct {
	ReservationID    *string            `json:"reservation_id"`
	ReservationTime  *string            `json:"reservation_time,omitempty"`
	TableNumber      *int               `json:"table_number,omitempty"`
	GuestName        string             `json:"guest_name"`
	RiskLabel        string             `json:"risk_label"`
	AITag            string             `json:"ai_tag"`
	SpendTag         string             `json:"spend_tag"`
	Explanation      string             `json:"explanation"`
	TenantID         string             `json:"tenant_id"`
	PredictedAt      string             `json:"predicted_at"`
	Source           string             `json:"source"`
	SmartTags        []SmartTagResponse `json:"smart_tags"`
	AIPrediction     AIPrediction       `json:"ai_prediction"`
	Sentiment        SentimentResponse  `json:"sentiment"`
	ReliabilityScore float64            `json:"reliability_score"`
	NoShowRisk       float64            `json:"no_show_risk"`
	Confidence       float64            `json:"confidence"`
	PredictionID     uuid.UUID          `json:"prediction_id"`
}

// BatchPredictionResponse is the output DTO for a batch, in input order.
type BatchPredictionResponse struct {
	Predictions []PredictionResponse `json:"predictions"`
	Count       int                  `json:"count"`
}

// FromPrediction maps a domain prediction to the response DTO.
func FromPrediction(p *model.Prediction, reservationID *string) PredictionResponse {
	r := p.Reservation()

	tags := make([]SmartTagResponse, 0, len(p.SmartTags()))
	for _, t := range p.SmartTags() {
		tags = append(tags, SmartTagResponse(t))
	}

	var reservationTime *string
	if rt := r.ReservationTime(); rt != "" {
		reservationTime = &rt
	}

	return PredictionResponse{
		PredictionID:  p.ID(),
		ReservationID: reservationID,
		GuestName:     p.GuestName(),
		AIPrediction: AIPrediction{
			RiskScore:   p.DisplayRiskScore(),
			RiskLabel:   p.RiskLabel().String(),
			Explanation: p.Explanation(),
		},
		SmartTags:        tags,
		ReliabilityScore: p.Reliability(),
		NoShowRisk:       p.NoShowRisk(),
		RiskLabel:        p.RiskLabel().String(),
		AITag:            p.BehavioralTag().String(),
		SpendTag:         p.SpendTier().String(),
		Sentiment:        FromSentiment(p.Sentiment()),
		Confidence:       p.Confidence(),
		Explanation:      p.Explanation(),
		TenantID:         p.TenantID(),
		PredictedAt:      p.PredictedAt().UTC().Format(time.RFC3339Nano),
		Source:           string(p.Source()),
		ReservationTime:  reservationTime,
		TableNumber:      r.TableNumber(),
	}
}

// FromSentiment maps a sentiment to its response DTO.
func FromSentiment(s model.Sentiment) SentimentResponse {
	return SentimentResponse{
		Score: s.Score,
		Label: s.Label.String(),
		Emoji: s.Label.Emoji(),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
