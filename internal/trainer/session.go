package trainer

import (
	"fmt"
	"math/rand"

	"github.com/drakos74/iris-neuron/internal/boundary"
	"github.com/drakos74/iris-neuron/internal/buffer"
	"github.com/drakos74/iris-neuron/internal/dataset"
	"github.com/drakos74/iris-neuron/internal/model"
	"github.com/drakos74/iris-neuron/internal/neuron"
	"github.com/google/uuid"
)

// Session is the configuration snapshot the trainer works on.
// A session is never changed field by field, a configuration change creates a new one.
type Session struct {
	ID      string
	Pair    model.Pair
	Mode    model.Mode
	Records []model.Record
	Samples []dataset.Sample
	Held    []dataset.Sample
	Neuron  *neuron.Neuron
	Graph   *boundary.Graph
	Loss    *buffer.Buffer
}

// Options are the session parameters that do not change with the configuration.
type Options struct {
	LearningRate float64
	SampleSize   int
}

// NewSession selects and shuffles the records for the pair and builds a new session on top of them.
func NewSession(rng *rand.Rand, records []model.Record, pair model.Pair, mode model.Mode, opts Options) (*Session, error) {
	filtered, err := dataset.Select(records, pair)
	if err != nil {
		return nil, fmt.Errorf("could not create session for '%s': %w", pair, err)
	}
	return newSession(rng, dataset.Shuffle(rng, filtered), pair, mode, opts), nil
}

// WithMode builds a new session for the same shuffled records and the given mode.
func (s *Session) WithMode(rng *rand.Rand, mode model.Mode, opts Options) *Session {
	return newSession(rng, s.Records, s.Pair, mode, opts)
}

func newSession(rng *rand.Rand, records []model.Record, pair model.Pair, mode model.Mode, opts Options) *Session {
	held := dataset.StratifiedSample(records, pair, opts.SampleSize)

	var graph *boundary.Graph
	if mode.Inputs() == 2 {
		xAxis, yAxis := mode.Axes()
		points := make([]boundary.Point, len(records))
		for i, r := range records {
			v := dataset.Project(r, mode)
			points[i] = boundary.Point{X: v[0], Y: v[1], Class: pair.Target(r.Species)}
		}
		graph = boundary.NewGraph(xAxis, yAxis, points)
	}

	return &Session{
		ID:      uuid.New().String(),
		Pair:    pair,
		Mode:    mode,
		Records: records,
		Samples: dataset.Samples(records, pair, mode),
		Held:    dataset.Samples(held, pair, mode),
		Neuron:  neuron.New(mode.Inputs(), neuron.Sigmoid, opts.LearningRate, rng),
		Graph:   graph,
		Loss:    buffer.NewBuffer(buffer.LossHistory),
	}
}

// Prediction is the neuron output for one held-out record.
type Prediction struct {
	Record  model.Record `json:"record"`
	Input   []float64    `json:"input"`
	Output  float64      `json:"output"`
	Target  float64      `json:"target"`
	Correct bool         `json:"correct"`
}

// Evaluate scores the held-out records with the current neuron, without training on them.
func (s *Session) Evaluate() ([]Prediction, error) {
	predictions := make([]Prediction, len(s.Held))
	for i, h := range s.Held {
		o, err := s.Neuron.Predict(h.Input)
		if err != nil {
			return nil, fmt.Errorf("could not evaluate record %d: %w", h.Record.ID, err)
		}
		predictions[i] = Prediction{
			Record:  h.Record,
			Input:   h.Input,
			Output:  o,
			Target:  h.Target,
			Correct: (o >= 0.5) == (h.Target == 1.0),
		}
	}
	return predictions, nil
}
