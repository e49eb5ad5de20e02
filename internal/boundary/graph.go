package boundary

import (
	"fmt"

	"github.com/drakos74/iris-neuron/internal/neuron"
	"gonum.org/v1/gonum/floats"
)

// Padding is added on both sides of each axis before mapping to the screen.
const Padding = 0.3

// Point is a plotted data point with its encoded class.
type Point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Class float64 `json:"class"`
}

// Vector is a 2-D corner of the plotted envelope.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Line is the decision line evaluated at the x extremes of the data.
type Line struct {
	Y1 float64 `json:"y1"`
	Y2 float64 `json:"y2"`
}

// Graph keeps the 2-D data points and the decision line separating them.
type Graph struct {
	XAxis  string
	YAxis  string
	points []Point
	min    Vector
	max    Vector
	line   *Line
}

// NewGraph creates a new graph for the given points.
func NewGraph(xAxis, yAxis string, points []Point) *Graph {
	g := &Graph{
		XAxis:  xAxis,
		YAxis:  yAxis,
		points: points,
	}
	g.min, g.max = g.envelope()
	return g
}

func (g *Graph) envelope() (Vector, Vector) {
	if len(g.points) == 0 {
		return Vector{}, Vector{}
	}
	xx := make([]float64, len(g.points))
	yy := make([]float64, len(g.points))
	for i, p := range g.points {
		xx[i] = p.X
		yy[i] = p.Y
	}
	return Vector{X: floats.Min(xx), Y: floats.Min(yy)}, Vector{X: floats.Max(xx), Y: floats.Max(yy)}
}

// SetDecisionLine computes the line w0*x + w1*y + b = 0 at the data x extremes
// and widens the y range of the graph so that both the data and the line fit.
// NOTE : a zero w1 yields infinite or NaN endpoints, this is not guarded.
func (g *Graph) SetDecisionLine(weights []float64, bias float64) error {
	if len(weights) != 2 {
		return fmt.Errorf("decision line needs 2 weights but got %d: %w", len(weights), neuron.DimensionMismatchErr)
	}
	if len(g.points) == 0 {
		return nil
	}

	min, max := g.envelope()

	y1 := (-weights[0]*min.X - bias) / weights[1]
	y2 := (-weights[0]*max.X - bias) / weights[1]

	g.line = &Line{Y1: y1, Y2: y2}

	g.max = Vector{X: max.X, Y: floats.Max([]float64{max.Y, y1, y2})}
	g.min = Vector{X: min.X, Y: floats.Min([]float64{min.Y, y1, y2})}
	return nil
}

// RemoveDecisionLine drops the line and restores the data envelope.
func (g *Graph) RemoveDecisionLine() {
	g.line = nil
	g.min, g.max = g.envelope()
}

// DecisionLine returns the current line, if any.
func (g *Graph) DecisionLine() (Line, bool) {
	if g.line == nil {
		return Line{}, false
	}
	return *g.line, true
}

// Points returns the plotted points.
func (g *Graph) Points() []Point {
	pp := make([]Point, len(g.points))
	copy(pp, g.points)
	return pp
}

// Min returns the lower corner of the plotted envelope.
func (g *Graph) Min() Vector {
	return g.min
}

// Max returns the upper corner of the plotted envelope.
func (g *Graph) Max() Vector {
	return g.max
}

// Guides returns the axis values of the given number of equally spaced marks, both ends included.
func (g *Graph) Guides(marks int) ([]float64, []float64) {
	return guides(g.min.X, g.max.X, marks), guides(g.min.Y, g.max.Y, marks)
}

func guides(min, max float64, marks int) []float64 {
	if marks <= 0 {
		return []float64{}
	}
	gg := make([]float64, marks+1)
	for i := 0; i <= marks; i++ {
		gg[i] = min - Padding + float64(i)/float64(marks)*(max-min+2*Padding)
	}
	return gg
}

// State is a copy of the graph for readers.
type State struct {
	XAxis  string  `json:"x_axis"`
	YAxis  string  `json:"y_axis"`
	Min    Vector  `json:"min"`
	Max    Vector  `json:"max"`
	Line   *Line   `json:"line,omitempty"`
	Points []Point `json:"points"`
}

// Snapshot returns a copy of the graph state.
func (g *Graph) Snapshot() State {
	s := State{
		XAxis:  g.XAxis,
		YAxis:  g.YAxis,
		Min:    g.min,
		Max:    g.max,
		Points: g.Points(),
	}
	if l, ok := g.DecisionLine(); ok {
		s.Line = &l
	}
	return s
}
