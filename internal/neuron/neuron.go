package neuron

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// DefaultLearningRate is the rate used by the demo.
const DefaultLearningRate = 0.5

var DimensionMismatchErr = errors.New("dimension mismatch")

// Neuron is a single logistic unit trained online, one sample at a time.
type Neuron struct {
	inputs     int
	weights    []float64
	bias       float64
	data       []float64
	activation Activation
	rate       float64
	loss       float64
	count      float64
}

// New creates a new neuron with weights and bias drawn uniformly from [0,1).
func New(inputs int, activation Activation, rate float64, rng *rand.Rand) *Neuron {
	weights := make([]float64, inputs)
	for i := range weights {
		weights[i] = rng.Float64()
	}
	return &Neuron{
		inputs:     inputs,
		weights:    weights,
		bias:       rng.Float64(),
		data:       make([]float64, inputs),
		activation: activation,
		rate:       rate,
	}
}

// Inputs returns the configured input count.
func (n *Neuron) Inputs() int {
	return n.inputs
}

// Weights returns a copy of the weights.
func (n *Neuron) Weights() []float64 {
	weights := make([]float64, n.inputs)
	copy(weights, n.weights)
	return weights
}

// Bias returns the bias.
func (n *Neuron) Bias() float64 {
	return n.bias
}

// Forward computes the activation of the weighted sum and keeps the input for the next Backward call.
func (n *Neuron) Forward(x []float64) (float64, error) {
	o, err := n.Predict(x)
	if err != nil {
		return o, err
	}
	copy(n.data, x)
	return o, nil
}

// Predict computes the output without touching the neuron state.
func (n *Neuron) Predict(x []float64) (float64, error) {
	if len(x) != n.inputs {
		return math.NaN(), fmt.Errorf("expected %d inputs but got %d: %w", n.inputs, len(x), DimensionMismatchErr)
	}
	z := n.bias + floats.Dot(n.weights, x)
	return n.activation.Apply(z), nil
}

// Backward applies one gradient step based on the last forwarded input.
// It returns the error and the gradient of the step.
func (n *Neuron) Backward(output, target float64) (float64, float64) {
	e := target - output
	gradient := n.activation.Derivative(output) * e * n.rate

	floats.AddScaled(n.weights, gradient, n.data)
	n.bias += gradient

	return e, gradient
}

// LogLoss returns the log-likelihood of the output and adds it to the running sum.
// NOTE : an output of exactly 0 or 1 yields an infinite loss, this is not guarded.
func (n *Neuron) LogLoss(output, target float64) float64 {
	loss := target*math.Log(output) + (1-target)*math.Log(1-output)
	n.loss += loss
	n.count++
	return loss
}

// AverageLoss returns the running average log-loss.
// It is undefined before the first LogLoss call.
func (n *Neuron) AverageLoss() float64 {
	return -n.loss / n.count
}

// State is a copy of the neuron parameters.
type State struct {
	Inputs     int       `json:"inputs"`
	Weights    []float64 `json:"weights"`
	Bias       float64   `json:"bias"`
	Data       []float64 `json:"data"`
	Activation string    `json:"activation"`
	Rate       float64   `json:"rate"`
	Count      int       `json:"count"`
}

// Snapshot returns a copy of the current parameters.
func (n *Neuron) Snapshot() State {
	data := make([]float64, n.inputs)
	copy(data, n.data)
	return State{
		Inputs:     n.inputs,
		Weights:    n.Weights(),
		Bias:       n.bias,
		Data:       data,
		Activation: n.activation.String(),
		Rate:       n.rate,
		Count:      int(n.count),
	}
}
