package ml

import (
	"fmt"
	"math"
	"os"

	"github.com/goccy/go-json"
)

// Layer is a dense layer. Weights are indexed [output][input].
type Layer struct {
	Activation Activation  `json:"activation"`
	Weights    [][]float64 `json:"weights"`
	Bias       []float64   `json:"bias"`
}

// Network is a frozen feed-forward network ending in a single sigmoid unit.
// Dropout only applies during training, so it has no layer here.
type Network struct {
	Layers   []Layer `json:"layers"`
	InputDim int     `json:"input_dim"`
}

// LoadNetwork reads serialized weights from path and validates them.
func LoadNetwork(path string) (*Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model weights: %w", err)
	}

	var n Network
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("failed to decode model weights: %w", err)
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return &n, nil
}

// Validate checks that the layer dimensions chain from InputDim to a single
// sigmoid output.
func (n *Network) Validate() error {
	if n.InputDim <= 0 {
		return fmt.Errorf("network input dim must be positive, got %d", n.InputDim)
	}
	if len(n.Layers) == 0 {
		return fmt.Errorf("network has no layers")
	}

	in := n.InputDim
	for i, l := range n.Layers {
		if err := l.Activation.validate(); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
		if len(l.Weights) == 0 || len(l.Weights) != len(l.Bias) {
			return fmt.Errorf("layer %d: %d weight rows but %d biases", i, len(l.Weights), len(l.Bias))
		}
		for j, row := range l.Weights {
			if len(row) != in {
				return fmt.Errorf("layer %d: row %d has %d inputs, want %d", i, j, len(row), in)
			}
		}
		in = len(l.Weights)
	}

	last := n.Layers[len(n.Layers)-1]
	if in != 1 || last.Activation != ActivationSigmoid {
		return fmt.Errorf("network must end in a single sigmoid unit, got %d %s outputs", in, last.Activation)
	}
	return nil
}

// Forward runs the input through every layer and returns the output unit.
func (n *Network) Forward(x []float64) (float64, error) {
	if len(x) != n.InputDim {
		return 0, fmt.Errorf("input has %d features, network expects %d", len(x), n.InputDim)
	}

	activations := x
	for _, l := range n.Layers {
		next := make([]float64, len(l.Weights))
		for j, row := range l.Weights {
			sum := l.Bias[j]
			for k, w := range row {
				sum += w * activations[k]
			}
			next[j] = l.Activation.apply(sum)
		}
		activations = next
	}

	out := activations[0]
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0, fmt.Errorf("network produced a non-finite output")
	}
	return out, nil
}
