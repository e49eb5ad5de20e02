package render

import (
	"bytes"
	"context"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/drakos74/iris-neuron/internal/boundary"
	"github.com/drakos74/iris-neuron/internal/model"
	"github.com/drakos74/iris-neuron/internal/source"
	"github.com/drakos74/iris-neuron/internal/trainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState(t *testing.T, mode model.Mode, steps int) trainer.State {
	records, err := source.Default()
	require.NoError(t, err)
	cfg := trainer.DefaultConfig()
	cfg.Mode = mode
	tr, err := trainer.New(rand.New(rand.NewSource(3)), records, cfg)
	require.NoError(t, err)
	for i := 0; i < steps; i++ {
		require.NoError(t, tr.Step())
	}
	return tr.Snapshot()
}

func TestRenderer_Frame(t *testing.T) {

	type test struct {
		mode    model.Mode
		steps   int
		scatter bool
		plot    bool
	}

	tests := map[string]test{
		"sepal-start": {
			mode:    model.Sepal,
			scatter: true,
		},
		"petal-trained": {
			mode:    model.Petal,
			steps:   50,
			scatter: true,
			plot:    true,
		},
		"all": {
			mode:  model.All,
			steps: 10,
			plot:  true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := newTestState(t, tt.mode, tt.steps)
			frame := New(&bytes.Buffer{}).Frame(s)

			assert.Contains(t, frame, s.Session)
			assert.Contains(t, frame, s.Pair.String())
			assert.Contains(t, frame, "generation")
			assert.Contains(t, frame, "accuracy")
			assert.Contains(t, strings.ToUpper(frame), "SPECIES")

			if tt.scatter {
				assert.Contains(t, frame, s.Graph.XAxis)
			} else {
				assert.Nil(t, s.Graph)
			}
			if tt.plot {
				assert.Contains(t, frame, "loss ")
				assert.Contains(t, frame, "gradient")
			} else {
				assert.Contains(t, frame, "loss: -")
				assert.NotContains(t, frame, "gradient")
			}
		})
	}
}

func TestRenderer_Scatter(t *testing.T) {

	g := boundary.State{
		Min: boundary.Vector{X: 0, Y: 0},
		Max: boundary.Vector{X: 1, Y: 1},
		Points: []boundary.Point{
			{X: 0, Y: 0, Class: 0},
			{X: 1, Y: 1, Class: 1},
		},
	}

	r := New(&bytes.Buffer{}).Grid(11, 11)

	rows := r.Scatter(g)
	require.Equal(t, 11, len(rows))
	assert.Equal(t, Anchor, []rune(rows[8])[2])
	assert.Equal(t, Positive, []rune(rows[2])[8])
	assert.NotContains(t, strings.Join(rows, ""), string(Line))

	g.Line = &boundary.Line{Y1: 1, Y2: 0}
	rows = r.Scatter(g)
	for c := 2; c <= 8; c++ {
		assert.Equal(t, Line, []rune(rows[c])[c], "column %d", c)
	}
	assert.Equal(t, Anchor, []rune(rows[8])[2])
	assert.Equal(t, Positive, []rune(rows[2])[8])
}

func TestRenderer_ScatterDegenerate(t *testing.T) {

	g := boundary.State{
		Min:    boundary.Vector{X: 0, Y: 0},
		Max:    boundary.Vector{X: 1, Y: 1},
		Line:   &boundary.Line{Y1: -1e9, Y2: 1e9},
		Points: []boundary.Point{{X: 0.5, Y: 0.5}},
	}

	rows := New(&bytes.Buffer{}).Grid(11, 11).Scatter(g)
	assert.Equal(t, Anchor, []rune(rows[5])[5])
}

func TestRenderer_Loss(t *testing.T) {

	type test struct {
		loss   []float64
		output string
	}

	tests := map[string]test{
		"empty": {
			output: "loss: -",
		},
		"single": {
			loss:   []float64{0.7},
			output: "loss: -",
		},
		"flat": {
			loss:   []float64{0.5, 0.5, 0.5},
			output: "loss: 0.5000",
		},
		"curve": {
			loss:   []float64{0.9, 0.7, 0.5, 0.3},
			output: "loss 0.3000",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var b strings.Builder
			New(&bytes.Buffer{}).Plot(20, 5).loss(&b, tt.loss)
			assert.Contains(t, b.String(), tt.output)
		})
	}
}

type mockBoard struct {
	state trainer.State
}

func (m mockBoard) Latest() (trainer.State, bool) {
	return m.state, true
}

type syncBuffer struct {
	sync.Mutex
	b bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.Lock()
	defer s.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.Lock()
	defer s.Unlock()
	return s.b.String()
}

func TestRenderer_Run(t *testing.T) {

	s := newTestState(t, model.Sepal, 5)
	out := &syncBuffer{}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := New(out).Run(ctx, mockBoard{state: s}, 10*time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, out.String(), reset)
	assert.Contains(t, out.String(), s.Session)
}
