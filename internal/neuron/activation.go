package neuron

import (
	"fmt"

	xml "github.com/drakos74/go-ex-machina/xmachina/ml"
)

// Activation is the closed set of activation functions a neuron can use.
type Activation byte

const (
	// Sigmoid is the logistic function 1/(1+e^-z)
	Sigmoid Activation = iota
)

func (a Activation) function() xml.Activation {
	switch a {
	case Sigmoid:
		return xml.Sigmoid
	}
	panic(fmt.Sprintf("unknown activation %d", a))
}

// Apply evaluates the activation on the weighted sum.
func (a Activation) Apply(z float64) float64 {
	return a.function().F(z)
}

// Derivative evaluates the derivative in terms of the activation output.
// NOTE : the argument is the output o, not the weighted sum, i.e. o*(1-o) for the sigmoid
func (a Activation) Derivative(output float64) float64 {
	return a.function().D(output)
}

func (a Activation) String() string {
	switch a {
	case Sigmoid:
		return "sigmoid"
	}
	return fmt.Sprintf("Activation(%d)", byte(a))
}
