package ml_test

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/guestrisk/internal/domain/model"
	"github.com/bibbank/guestrisk/internal/infrastructure/ml"
)

// referenceRows has three categories per column, giving 14 + 3*2 = 20 inputs.
func referenceRows() []model.FeatureRecord {
	base := model.FeatureRecord{
		NoOfAdults:        2,
		ArrivalYear:       2018,
		ArrivalMonth:      6,
		ArrivalDate:       14,
		LeadTime:          65,
		AvgPricePerRoom:   100,
		TypeOfMealPlan:    "Meal Plan 1",
		RoomTypeReserved:  "Room_Type 1",
		MarketSegmentType: "Online",
	}

	second := base
	second.NoOfAdults = 4
	second.LeadTime = 165
	second.AvgPricePerRoom = 140
	second.TypeOfMealPlan = "Not Selected"
	second.RoomTypeReserved = "Room_Type 4"
	second.MarketSegmentType = "Offline"

	third := base
	third.NoOfAdults = 3
	third.LeadTime = 115
	third.AvgPricePerRoom = 120
	third.TypeOfMealPlan = "Meal Plan 3"
	third.RoomTypeReserved = "Room_Type 6"
	third.MarketSegmentType = "Corporate"

	return []model.FeatureRecord{base, second, third}
}

type mockSource struct {
	loadFn func(ctx context.Context) ([]model.FeatureRecord, error)
	calls  atomic.Int32
}

func (m *mockSource) Load(ctx context.Context) ([]model.FeatureRecord, error) {
	m.calls.Add(1)
	return m.loadFn(ctx)
}

func newMockSource(rows []model.FeatureRecord) *mockSource {
	return &mockSource{loadFn: func(_ context.Context) ([]model.FeatureRecord, error) { return rows, nil }}
}

// constantNetwork outputs sigmoid(bias) whatever the input.
func constantNetwork(inputDim int, output float64) ml.Network {
	return ml.Network{
		InputDim: inputDim,
		Layers: []ml.Layer{
			{
				Activation: ml.ActivationGELU,
				Weights:    [][]float64{make([]float64, inputDim), make([]float64, inputDim)},
				Bias:       []float64{0, 0},
			},
			{
				Activation: ml.ActivationSigmoid,
				Weights:    [][]float64{{0.3, -0.7}},
				Bias:       []float64{math.Log(output / (1 - output))},
			},
		},
	}
}

func writeNetwork(t *testing.T, n ml.Network) string {
	t.Helper()
	data, err := json.Marshal(n)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "weights.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}
