package dto_test

import (
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/guestrisk/internal/application/dto"
	"github.com/bibbank/guestrisk/internal/domain/model"
	"github.com/bibbank/guestrisk/internal/domain/valueobject"
)

func TestPredictRequest_UnmarshalDefaults(t *testing.T) {
	var req dto.PredictRequest
	require.NoError(t, json.Unmarshal([]byte(`{"guest_name":"Ana"}`), &req))

	assert.Equal(t, "Ana", req.GuestName)
	assert.Equal(t, model.DefaultPartySize, req.PartySize)
	assert.Equal(t, model.DefaultSpendPerCover, req.EstimatedSpendPerCover)
	assert.Equal(t, model.DefaultBookingChannel, req.BookingChannel)
	assert.Nil(t, req.ReservationID)
	assert.NoError(t, req.Validate())
}

func TestPredictRequest_UnmarshalOverridesDefaults(t *testing.T) {
	body := `{"guest_name":"Bo","party_size":6,"estimated_spend_per_cover":0,"booking_channel":"Phone","reservation_id":"r-1","table_number":4}`

	var req dto.PredictRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	assert.Equal(t, 6, req.PartySize)
	assert.Zero(t, req.EstimatedSpendPerCover)
	assert.Equal(t, "Phone", req.BookingChannel)
	require.NotNil(t, req.ReservationID)
	assert.Equal(t, "r-1", *req.ReservationID)
	require.NotNil(t, req.TableNumber)
	assert.Equal(t, 4, *req.TableNumber)
}

func TestPredictRequest_UnmarshalInvalid(t *testing.T) {
	var req dto.PredictRequest
	assert.Error(t, json.Unmarshal([]byte(`{"party_size":"six"}`), &req))
}

func TestPredictRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *dto.PredictRequest)
		wantMsg string
	}{
		{
			name:    "missing guest name",
			mutate:  func(r *dto.PredictRequest) { r.GuestName = "" },
			wantMsg: "guest_name is required",
		},
		{
			name:    "party size zero",
			mutate:  func(r *dto.PredictRequest) { r.PartySize = 0 },
			wantMsg: "party_size must be at least 1",
		},
		{
			name:    "party size too large",
			mutate:  func(r *dto.PredictRequest) { r.PartySize = 21 },
			wantMsg: "party_size must be at most 20",
		},
		{
			name:    "negative spend",
			mutate:  func(r *dto.PredictRequest) { r.EstimatedSpendPerCover = -1 },
			wantMsg: "estimated_spend_per_cover must be at least 0",
		},
		{
			name:    "too many children",
			mutate:  func(r *dto.PredictRequest) { r.Children = 11 },
			wantMsg: "children must be at most 10",
		},
		{
			name:    "negative cancellations",
			mutate:  func(r *dto.PredictRequest) { r.PreviousCancellations = -2 },
			wantMsg: "previous_cancellations must be at least 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := dto.NewPredictRequest()
			req.GuestName = "Ana"
			tt.mutate(&req)

			err := req.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, model.ErrMalformedInput))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestPredictRequest_ValidateReportsEveryField(t *testing.T) {
	req := dto.NewPredictRequest()
	req.PartySize = 0

	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "guest_name is required")
	assert.Contains(t, err.Error(), "party_size must be at least 1")
}

func TestPredictRequest_ReservationParams(t *testing.T) {
	date := "2026-03-14"
	req := dto.NewPredictRequest()
	req.GuestName = "Ana"
	req.TenantID = "  "
	req.ReservationDate = &date

	p := req.ReservationParams()
	assert.Equal(t, model.DefaultTenantID, p.TenantID)
	assert.Equal(t, "2026-03-14", p.ReservationDate)
	assert.Empty(t, p.ReservationTime)

	req.TenantID = "bistro-7"
	assert.Equal(t, "bistro-7", req.ReservationParams().TenantID)
}

func TestBatchPredictRequest_Validate(t *testing.T) {
	ok := dto.BatchPredictRequest{Reservations: make([]dto.PredictRequest, dto.MaxBatchSize)}
	assert.NoError(t, ok.Validate())

	tooMany := dto.BatchPredictRequest{Reservations: make([]dto.PredictRequest, dto.MaxBatchSize+1)}
	err := tooMany.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrMalformedInput)
	assert.Contains(t, err.Error(), "reservations must be at most 500")
}

func TestFromPrediction(t *testing.T) {
	table := 12
	res, err := model.NewReservation(model.ReservationParams{
		TenantID:               "bistro-7",
		GuestName:              "Ana",
		ReservationTime:        "19:30",
		TableNumber:            &table,
		PartySize:              2,
		EstimatedSpendPerCover: 150,
	})
	require.NoError(t, err)

	pred, err := model.NewPrediction(model.PredictionParams{
		Reservation:   res,
		Reliability:   0.9,
		NoShowRisk:    0.1,
		Confidence:    0.9,
		RiskLabel:     valueobject.RiskLabelLow,
		BehavioralTag: valueobject.TagLoyalRegular,
		SpendTier:     valueobject.SpendTierPremium,
		Source:        valueobject.ScoreSourceHeuristic,
		Explanation:   "Repeat guest",
		SmartTags:     []model.SmartTag{{Category: "occasion", Label: "Birthday", Color: "#f59e0b", Matched: "birthday"}},
		Sentiment:     model.NeutralSentiment(),
	})
	require.NoError(t, err)

	id := "r-9"
	resp := dto.FromPrediction(pred, &id)

	assert.Equal(t, pred.ID(), resp.PredictionID)
	assert.Equal(t, &id, resp.ReservationID)
	assert.Equal(t, "Ana", resp.GuestName)
	assert.Equal(t, "bistro-7", resp.TenantID)
	assert.Equal(t, "Low Risk", resp.RiskLabel)
	assert.Equal(t, "Loyal Regular", resp.AITag)
	assert.Equal(t, "Premium", resp.SpendTag)
	assert.Equal(t, "heuristic", resp.Source)
	assert.Equal(t, 10, resp.AIPrediction.RiskScore)
	assert.Equal(t, resp.RiskLabel, resp.AIPrediction.RiskLabel)
	assert.Equal(t, "neutral", resp.Sentiment.Label)
	require.Len(t, resp.SmartTags, 1)
	assert.Equal(t, "birthday", resp.SmartTags[0].Matched)
	require.NotNil(t, resp.ReservationTime)
	assert.Equal(t, "19:30", *resp.ReservationTime)
	assert.Equal(t, &table, resp.TableNumber)

	_, err = time.Parse(time.RFC3339Nano, resp.PredictedAt)
	assert.NoError(t, err)
}

func TestFromPrediction_NilReservationIDSerializesAsNull(t *testing.T) {
	res, err := model.NewReservation(model.ReservationParams{TenantID: "default", GuestName: "Ana", PartySize: 2})
	require.NoError(t, err)
	pred, err := model.NewPrediction(model.PredictionParams{
		Reservation:   res,
		Reliability:   0.65,
		NoShowRisk:    0.35,
		Confidence:    0.65,
		RiskLabel:     valueobject.RiskLabelLow,
		BehavioralTag: valueobject.TagLowRisk,
		SpendTier:     valueobject.SpendTierStandard,
		Source:        valueobject.ScoreSourceHeuristic,
	})
	require.NoError(t, err)

	out, err := json.Marshal(dto.FromPrediction(pred, nil))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(out, &raw))
	v, ok := raw["reservation_id"]
	assert.True(t, ok)
	assert.Nil(t, v)
	assert.Equal(t, []any{}, raw["smart_tags"])
	assert.NotContains(t, raw, "table_number")
}

func TestFromCRMTags(t *testing.T) {
	assert.NotNil(t, dto.FromCRMTags(nil))
	assert.Empty(t, dto.FromCRMTags(nil))

	out := dto.FromCRMTags([]model.CRMTag{{Tag: "VIP", Category: "status", Color: "gold"}})
	require.Len(t, out, 1)
	assert.Equal(t, dto.TagResponse{Tag: "VIP", Category: "status", Color: "gold"}, out[0])
}
