package usecase

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/bibbank/guestrisk/internal/application/dto"
)

// PredictBatch scores a list of reservations, such as tonight's table list.
type PredictBatch struct {
	guest *PredictGuest
}

// NewPredictBatch creates a new PredictBatch use case.
func NewPredictBatch(guest *PredictGuest) *PredictBatch {
	return &PredictBatch{guest: guest}
}

// Execute runs the single-reservation path for each entry in order. The
// batch tenant applies to every reservation. The first failure aborts the
// batch and names the failing index.
func (uc *PredictBatch) Execute(ctx context.Context, req dto.BatchPredictRequest) (dto.BatchPredictionResponse, error) {
	ctx, span := tracer.Start(ctx, "PredictBatch.Execute",
		trace.WithAttributes(attribute.Int("batch_size", len(req.Reservations))))
	defer span.End()

	if err := req.Validate(); err != nil {
		return dto.BatchPredictionResponse{}, failSpan(span, err)
	}

	predictions := make([]dto.PredictionResponse, 0, len(req.Reservations))
	for i, r := range req.Reservations {
		if err := ctx.Err(); err != nil {
			return dto.BatchPredictionResponse{}, failSpan(span, err)
		}

		r.TenantID = req.TenantID
		resp, err := uc.guest.Execute(ctx, r)
		if err != nil {
			return dto.BatchPredictionResponse{}, failSpan(span, fmt.Errorf("reservation %d: %w", i, err))
		}
		predictions = append(predictions, resp)
	}

	return dto.BatchPredictionResponse{
		Predictions: predictions,
		Count:       len(predictions),
	}, nil
}
