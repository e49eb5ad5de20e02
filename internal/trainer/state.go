package trainer

import (
	"sync/atomic"

	"github.com/drakos74/iris-neuron/internal/boundary"
	"github.com/drakos74/iris-neuron/internal/model"
	"github.com/drakos74/iris-neuron/internal/neuron"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"
)

// State is a read-only copy of the trainer for renderers.
type State struct {
	Session     string          `json:"session"`
	Pair        model.Pair      `json:"pair"`
	Mode        model.Mode      `json:"mode"`
	Neuron      neuron.State    `json:"neuron"`
	Graph       *boundary.State `json:"graph,omitempty"`
	Loss        []float64       `json:"loss"`
	Cursor      Cursor          `json:"cursor"`
	Size        int             `json:"size"`
	Paused      bool            `json:"paused"`
	Frequency   int             `json:"frequency"`
	Step        *Step           `json:"step,omitempty"`
	Predictions []Prediction    `json:"predictions"`
	Accuracy    float64         `json:"accuracy"`
}

// Snapshot copies the current state of the trainer.
func (t *Trainer) Snapshot() State {
	s := t.session
	state := State{
		Session:     s.ID,
		Pair:        s.Pair,
		Mode:        s.Mode,
		Neuron:      s.Neuron.Snapshot(),
		Loss:        s.Loss.Get(),
		Cursor:      t.cursor,
		Size:        len(s.Samples),
		Paused:      t.paused,
		Frequency:   t.frequency,
		Predictions: []Prediction{},
	}
	if s.Graph != nil {
		g := s.Graph.Snapshot()
		state.Graph = &g
	}
	if t.step != nil {
		step := *t.step
		state.Step = &step
	}

	predictions, err := s.Evaluate()
	if err != nil {
		log.Error().Err(err).Str("session", s.ID).Msg("could not evaluate held-out records")
		return state
	}
	state.Predictions = predictions
	if len(predictions) > 0 {
		correct := make([]float64, len(predictions))
		for i, p := range predictions {
			if p.Correct {
				correct[i] = 1
			}
		}
		state.Accuracy = stat.Mean(correct, nil)
	}
	return state
}

// Board keeps the last published state for readers outside the training loop.
type Board struct {
	state atomic.Value
}

// NewBoard creates a new empty board.
func NewBoard() *Board {
	return &Board{}
}

// Publish stores the state.
func (b *Board) Publish(s State) {
	b.state.Store(s)
}

// Latest returns the last published state.
func (b *Board) Latest() (State, bool) {
	s, ok := b.state.Load().(State)
	return s, ok
}
