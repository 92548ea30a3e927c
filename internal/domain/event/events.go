package event

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/bibbank/guestrisk/pkg/events"
)

const (
	// AggregateTypePrediction is the aggregate type of every guest risk event.
	AggregateTypePrediction = "guest_prediction"

	// EventTypePredictionCompleted is emitted for every prediction.
	EventTypePredictionCompleted = "guestrisk.prediction.completed"

	// EventTypeHighRiskGuestDetected is emitted when a prediction lands in the High Risk bucket.
	EventTypeHighRiskGuestDetected = "guestrisk.high_risk.detected"
)

var (
	_ events.DomainEvent = PredictionCompleted{}
	_ events.DomainEvent = HighRiskGuestDetected{}
)

// PredictionCompleted is published when a guest behavior prediction is made.
type PredictionCompleted struct {
	events.BaseEvent `json:"-"`
	PredictedAt      time.Time `json:"predicted_at"`
	Tenant           string    `json:"tenant_id"`
	GuestName        string    `json:"guest_name"`
	RiskLabel        string    `json:"risk_label"`
	BehavioralTag    string    `json:"ai_tag"`
	SpendTier        string    `json:"spend_tag"`
	Source           string    `json:"source"`
	Reliability      float64   `json:"reliability_score"`
	NoShowRisk       float64   `json:"no_show_risk"`
	Confidence       float64   `json:"confidence"`
	PredictionID     uuid.UUID `json:"prediction_id"`
}

// NewPredictionCompleted builds the event and serializes its payload.
func NewPredictionCompleted(
	predictionID uuid.UUID,
	tenantID, guestName string,
	reliability, noShowRisk, confidence float64,
	riskLabel, behavioralTag, spendTier, source string,
	predictedAt time.Time,
) (PredictionCompleted, error) {
	e := PredictionCompleted{
		PredictionID:  predictionID,
		Tenant:        tenantID,
		GuestName:     guestName,
		Reliability:   reliability,
		NoShowRisk:    noShowRisk,
		Confidence:    confidence,
		RiskLabel:     riskLabel,
		BehavioralTag: behavioralTag,
		SpendTier:     spendTier,
		Source:        source,
		PredictedAt:   predictedAt,
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return PredictionCompleted{}, fmt.Errorf("encoding %s payload: %w", EventTypePredictionCompleted, err)
	}
	e.BaseEvent = events.NewBaseEvent(EventTypePredictionCompleted, predictionID, AggregateTypePrediction, tenantID, payload)
	return e, nil
}

// HighRiskGuestDetected is published when a guest is likely to miss the
// reservation, so the floor team can confirm or overbook.
type HighRiskGuestDetected struct {
	events.BaseEvent `json:"-"`
	DetectedAt       time.Time `json:"detected_at"`
	Tenant           string    `json:"tenant_id"`
	GuestName        string    `json:"guest_name"`
	Explanation      string    `json:"explanation"`
	NoShowRisk       float64   `json:"no_show_risk"`
	PredictionID     uuid.UUID `json:"prediction_id"`
}

// NewHighRiskGuestDetected builds the event and serializes its payload.
func NewHighRiskGuestDetected(
	predictionID uuid.UUID,
	tenantID, guestName string,
	noShowRisk float64,
	explanation string,
	detectedAt time.Time,
) (HighRiskGuestDetected, error) {
	e := HighRiskGuestDetected{
		PredictionID: predictionID,
		Tenant:       tenantID,
		GuestName:    guestName,
		NoShowRisk:   noShowRisk,
		Explanation:  explanation,
		DetectedAt:   detectedAt,
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return HighRiskGuestDetected{}, fmt.Errorf("encoding %s payload: %w", EventTypeHighRiskGuestDetected, err)
	}
	e.BaseEvent = events.NewBaseEvent(EventTypeHighRiskGuestDetected, predictionID, AggregateTypePrediction, tenantID, payload)
	return e, nil
}
