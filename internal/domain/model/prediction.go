package model

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/guestrisk/internal/domain/event"
	"github.com/bibbank/guestrisk/internal/domain/valueobject"
	"github.com/bibbank/guestrisk/pkg/events"
)

// PredictionParams carries everything the classifier and scorers produced
// for a single reservation.
type PredictionParams struct {
	Reservation   *Reservation
	RiskLabel     valueobject.RiskLabel
	BehavioralTag valueobject.BehavioralTag
	SpendTier     valueobject.SpendTier
	Source        valueobject.ScoreSource
	Explanation   string
	SmartTags     []SmartTag
	Sentiment     Sentiment
	Reliability   float64
	NoShowRisk    float64
	Confidence    float64
}

// Prediction is the structured result for one reservation. It is created
// fresh per request and never persisted.
type Prediction struct {
	events.EventCollector
	predictedAt   time.Time
	reservation   *Reservation
	riskLabel     valueobject.RiskLabel
	behavioralTag valueobject.BehavioralTag
	spendTier     valueobject.SpendTier
	source        valueobject.ScoreSource
	explanation   string
	smartTags     []SmartTag
	sentiment     Sentiment
	reliability   float64
	noShowRisk    float64
	confidence    float64
	id            uuid.UUID
}

// NewPrediction validates the scores and records the prediction events.
func NewPrediction(p PredictionParams) (*Prediction, error) {
	if p.Reservation == nil {
		return nil, fmt.Errorf("reservation is required")
	}
	if p.Reliability < 0 || p.Reliability > 1 {
		return nil, fmt.Errorf("reliability must be between 0 and 1, got %.3f", p.Reliability)
	}
	if math.Abs(p.Reliability+p.NoShowRisk-1) > 0.0015 {
		return nil, fmt.Errorf("reliability %.3f and no-show risk %.3f must sum to 1", p.Reliability, p.NoShowRisk)
	}
	if p.Confidence < 0 || p.Confidence > 1 {
		return nil, fmt.Errorf("confidence must be between 0 and 1, got %.3f", p.Confidence)
	}
	if p.RiskLabel.IsZero() || p.BehavioralTag.IsZero() || p.SpendTier.IsZero() {
		return nil, fmt.Errorf("risk label, behavioral tag and spend tier are required")
	}

	smartTags := p.SmartTags
	if smartTags == nil {
		smartTags = make([]SmartTag, 0)
	}

	pr := &Prediction{
		id:            uuid.New(),
		reservation:   p.Reservation,
		reliability:   p.Reliability,
		noShowRisk:    p.NoShowRisk,
		confidence:    p.Confidence,
		riskLabel:     p.RiskLabel,
		behavioralTag: p.BehavioralTag,
		spendTier:     p.SpendTier,
		source:        p.Source,
		explanation:   p.Explanation,
		smartTags:     smartTags,
		sentiment:     p.Sentiment,
		predictedAt:   time.Now().UTC(),
	}

	completed, err := event.NewPredictionCompleted(
		pr.id, pr.TenantID(), pr.GuestName(),
		pr.reliability, pr.noShowRisk, pr.confidence,
		pr.riskLabel.String(), pr.behavioralTag.String(), pr.spendTier.String(), string(pr.source),
		pr.predictedAt,
	)
	if err != nil {
		return nil, err
	}
	pr.Record(completed)

	if pr.riskLabel.IsHigh() {
		detected, err := event.NewHighRiskGuestDetected(
			pr.id, pr.TenantID(), pr.GuestName(),
			pr.noShowRisk, pr.explanation, pr.predictedAt,
		)
		if err != nil {
			return nil, err
		}
		pr.Record(detected)
	}

	return pr, nil
}

// DisplayRiskScore is the no-show risk as an integer percentage.
func (p *Prediction) DisplayRiskScore() int {
	return int(math.RoundToEven(p.noShowRisk * 100))
}

// --- Accessors ---

func (p *Prediction) ID() uuid.UUID                            { return p.id }
func (p *Prediction) Reservation() *Reservation                { return p.reservation }
func (p *Prediction) TenantID() string                         { return p.reservation.TenantID() }
func (p *Prediction) GuestName() string                        { return p.reservation.GuestName() }
func (p *Prediction) Reliability() float64                     { return p.reliability }
func (p *Prediction) NoShowRisk() float64                      { return p.noShowRisk }
func (p *Prediction) Confidence() float64                      { return p.confidence }
func (p *Prediction) RiskLabel() valueobject.RiskLabel         { return p.riskLabel }
func (p *Prediction) BehavioralTag() valueobject.BehavioralTag { return p.behavioralTag }
func (p *Prediction) SpendTier() valueobject.SpendTier         { return p.spendTier }
func (p *Prediction) Source() valueobject.ScoreSource          { return p.source }
func (p *Prediction) Explanation() string                      { return p.explanation }
func (p *Prediction) SmartTags() []SmartTag                    { return p.smartTags }
func (p *Prediction) Sentiment() Sentiment                     { return p.sentiment }
func (p *Prediction) PredictedAt() time.Time                   { return p.predictedAt }

// DomainEvents returns the events raised by the prediction and clears them.
func (p *Prediction) DomainEvents() []events.DomainEvent {
	return p.Drain()
}
