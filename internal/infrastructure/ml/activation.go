package ml

import (
	"fmt"
	"math"
)

// Activation names a dense-layer activation function.
type Activation string

const (
	ActivationGELU    Activation = "gelu"
	ActivationSwish   Activation = "swish"
	ActivationReLU    Activation = "relu"
	ActivationSigmoid Activation = "sigmoid"
	ActivationLinear  Activation = "linear"
)

func (a Activation) validate() error {
	switch a {
	case ActivationGELU, ActivationSwish, ActivationReLU, ActivationSigmoid, ActivationLinear:
		return nil
	default:
		return fmt.Errorf("unsupported activation %q", string(a))
	}
}

func (a Activation) apply(x float64) float64 {
	switch a {
	case ActivationGELU:
		return 0.5 * x * (1 + math.Erf(x/math.Sqrt2))
	case ActivationSwish:
		return x * sigmoid(x)
	case ActivationReLU:
		return max(0, x)
	case ActivationSigmoid:
		return sigmoid(x)
	default:
		return x
	}
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
