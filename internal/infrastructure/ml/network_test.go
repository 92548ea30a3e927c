package ml_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/guestrisk/internal/infrastructure/ml"
)

func TestNetwork_Forward(t *testing.T) {
	n := ml.Network{
		InputDim: 2,
		Layers: []ml.Layer{
			{Activation: ml.ActivationReLU, Weights: [][]float64{{1, 1}, {1, -1}}, Bias: []float64{0, 0}},
			{Activation: ml.ActivationSigmoid, Weights: [][]float64{{1, 1}}, Bias: []float64{-1}},
		},
	}
	require.NoError(t, n.Validate())

	// hidden = relu([0.5, -0.5]) = [0.5, 0]; out = sigmoid(0.5 + 0 - 1)
	out, err := n.Forward([]float64{0, 0.5})
	require.NoError(t, err)
	assert.InDelta(t, 0.3775406687981454, out, 1e-12)

	_, err = n.Forward([]float64{1})
	assert.Error(t, err)
}

func TestNetwork_Validate(t *testing.T) {
	tests := []struct {
		name    string
		network ml.Network
	}{
		{
			name:    "no layers",
			network: ml.Network{InputDim: 2},
		},
		{
			name: "row width mismatch",
			network: ml.Network{InputDim: 3, Layers: []ml.Layer{
				{Activation: ml.ActivationSigmoid, Weights: [][]float64{{1, 1}}, Bias: []float64{0}},
			}},
		},
		{
			name: "bias mismatch",
			network: ml.Network{InputDim: 2, Layers: []ml.Layer{
				{Activation: ml.ActivationSigmoid, Weights: [][]float64{{1, 1}}, Bias: []float64{0, 1}},
			}},
		},
		{
			name: "linear output",
			network: ml.Network{InputDim: 2, Layers: []ml.Layer{
				{Activation: ml.ActivationLinear, Weights: [][]float64{{1, 1}}, Bias: []float64{0}},
			}},
		},
		{
			name: "two outputs",
			network: ml.Network{InputDim: 1, Layers: []ml.Layer{
				{Activation: ml.ActivationSigmoid, Weights: [][]float64{{1}, {1}}, Bias: []float64{0, 0}},
			}},
		},
		{
			name: "unknown activation",
			network: ml.Network{InputDim: 1, Layers: []ml.Layer{
				{Activation: "softmax", Weights: [][]float64{{1}}, Bias: []float64{0}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.network.Validate())
		})
	}
}

func TestLoadNetwork(t *testing.T) {
	path := writeNetwork(t, constantNetwork(27, 0.8))

	n, err := ml.LoadNetwork(path)
	require.NoError(t, err)
	assert.Equal(t, 27, n.InputDim)

	out, err := n.Forward(make([]float64, 27))
	require.NoError(t, err)
	assert.InDelta(t, 0.8, out, 1e-9)
}

func TestLoadNetwork_Errors(t *testing.T) {
	_, err := ml.LoadNetwork(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("not json"), 0o600))
	_, err = ml.LoadNetwork(bad)
	assert.Error(t, err)
}
