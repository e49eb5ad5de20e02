package trainer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/drakos74/iris-neuron/internal/dataset"
	"github.com/drakos74/iris-neuron/internal/model"
	"github.com/drakos74/iris-neuron/internal/neuron"
	"github.com/rs/zerolog/log"
)

var UnknownEventErr = errors.New("unknown event")

// Config defines the starting configuration of the trainer.
type Config struct {
	Positive     model.Species `json:"positive"`
	Mode         model.Mode    `json:"mode"`
	LearningRate float64       `json:"learning_rate"`
	SampleSize   int           `json:"sample_size"`
	Frequency    int           `json:"frequency"`
	MaxFrequency int           `json:"max_frequency"`
	Paused       bool          `json:"paused"`
}

// DefaultConfig returns the configuration of the demo.
// The demo starts paused.
func DefaultConfig() Config {
	return Config{
		Positive:     model.Virginica,
		Mode:         model.Sepal,
		LearningRate: neuron.DefaultLearningRate,
		SampleSize:   dataset.DefaultSampleSize,
		Frequency:    1,
		MaxFrequency: 144,
		Paused:       true,
	}
}

// Recorder tracks the training progress.
type Recorder interface {
	Tick(pair, mode string, loss float64, generation int)
	Swap(pair, mode string)
}

type voidRecorder struct{}

func (v voidRecorder) Tick(pair, mode string, loss float64, generation int) {}

func (v voidRecorder) Swap(pair, mode string) {}

// Cursor is the position of the trainer in the training sequence.
type Cursor struct {
	Index      int `json:"index"`
	Generation int `json:"generation"`
}

// Step is the outcome of one training step.
type Step struct {
	Index    int     `json:"index"`
	Output   float64 `json:"output"`
	Error    float64 `json:"error"`
	Gradient float64 `json:"gradient"`
	Target   float64 `json:"target"`
	Loss     float64 `json:"loss"`
}

// Trainer feeds the training sequence to the neuron, one sample per tick.
type Trainer struct {
	records   []model.Record
	rng       *rand.Rand
	opts      Options
	session   *Session
	cursor    Cursor
	paused    bool
	frequency int
	max       int
	lastTick  time.Time
	step      *Step
	recorder  Recorder
}

// New creates a new trainer for the given records and configuration.
func New(rng *rand.Rand, records []model.Record, cfg Config) (*Trainer, error) {
	pair, err := model.NewPair(cfg.Positive)
	if err != nil {
		return nil, err
	}
	opts := Options{
		LearningRate: cfg.LearningRate,
		SampleSize:   cfg.SampleSize,
	}
	session, err := NewSession(rng, records, pair, cfg.Mode, opts)
	if err != nil {
		return nil, err
	}
	t := &Trainer{
		records:  records,
		rng:      rng,
		opts:     opts,
		paused:   cfg.Paused,
		max:      cfg.MaxFrequency,
		recorder: voidRecorder{},
	}
	t.frequency = t.clamp(cfg.Frequency)
	t.swap(session)
	return t, nil
}

// WithRecorder sets the recorder for the training progress.
func (t *Trainer) WithRecorder(recorder Recorder) *Trainer {
	t.recorder = recorder
	return t
}

func (t *Trainer) clamp(hz int) int {
	if hz < 1 {
		return 1
	}
	if t.max > 0 && hz > t.max {
		return t.max
	}
	return hz
}

// swap replaces the whole session at once and resets the progress on it.
func (t *Trainer) swap(session *Session) {
	t.session = session
	t.cursor = Cursor{}
	t.step = nil
	t.recorder.Swap(session.Pair.String(), session.Mode.String())
	log.Info().
		Str("session", session.ID).
		Str("pair", session.Pair.String()).
		Str("mode", session.Mode.String()).
		Int("samples", len(session.Samples)).
		Int("held", len(session.Held)).
		Msg("new session")
}

// Apply applies the configuration event.
// A failed event leaves the current session untouched.
func (t *Trainer) Apply(e Event) error {
	switch e.Kind {
	case PairEvent:
		pair, err := model.NewPair(e.Species)
		if err != nil {
			return err
		}
		session, err := NewSession(t.rng, t.records, pair, t.session.Mode, t.opts)
		if err != nil {
			return err
		}
		t.swap(session)
		t.paused = true
	case ModeEvent:
		if e.Mode > model.All {
			return fmt.Errorf("could not apply '%s': %w", e, model.InvalidModeErr)
		}
		t.swap(t.session.WithMode(t.rng, e.Mode, t.opts))
		t.paused = true
	case FrequencyEvent:
		t.frequency = t.clamp(e.Frequency)
	case PauseEvent:
		t.paused = e.Pause
	case ToggleEvent:
		t.paused = !t.paused
	default:
		return fmt.Errorf("could not apply '%s': %w", e, UnknownEventErr)
	}
	log.Debug().
		Str("event", e.String()).
		Bool("paused", t.paused).
		Int("frequency", t.frequency).
		Msg("applied event")
	return nil
}

func (t *Trainer) period() time.Duration {
	return time.Second / time.Duration(t.frequency)
}

// Tick runs a training step if the trainer is not paused and enough time passed since the last one.
func (t *Trainer) Tick(now time.Time) (bool, error) {
	if t.paused {
		return false, nil
	}
	if !now.After(t.lastTick.Add(t.period())) {
		return false, nil
	}
	if err := t.Step(); err != nil {
		return false, err
	}
	t.lastTick = now
	return true, nil
}

// Step feeds the next sample of the training sequence to the neuron.
func (t *Trainer) Step() error {
	s := t.session
	sample := s.Samples[t.cursor.Index]

	output, err := s.Neuron.Forward(sample.Input)
	if err != nil {
		return fmt.Errorf("could not train on sample %d of session %s: %w", t.cursor.Index, s.ID, err)
	}
	e, gradient := s.Neuron.Backward(output, sample.Target)

	if s.Graph != nil {
		if err := s.Graph.SetDecisionLine(s.Neuron.Weights(), s.Neuron.Bias()); err != nil {
			return fmt.Errorf("could not set decision line for session %s: %w", s.ID, err)
		}
	}

	loss := s.Neuron.LogLoss(output, sample.Target)
	avg := s.Neuron.AverageLoss()
	s.Loss.Push(avg)

	t.step = &Step{
		Index:    t.cursor.Index,
		Output:   output,
		Error:    e,
		Gradient: gradient,
		Target:   sample.Target,
		Loss:     math.Abs(loss),
	}

	t.cursor.Index = (t.cursor.Index + 1) % len(s.Samples)
	if t.cursor.Index == 0 {
		t.cursor.Generation++
		log.Debug().
			Str("session", s.ID).
			Int("generation", t.cursor.Generation).
			Float64("loss", avg).
			Msg("completed generation")
	}

	t.recorder.Tick(s.Pair.String(), s.Mode.String(), avg, t.cursor.Generation)
	return nil
}

// Session returns the current session.
func (t *Trainer) Session() *Session {
	return t.session
}

// Cursor returns the current position in the training sequence.
func (t *Trainer) Cursor() Cursor {
	return t.cursor
}

// Paused reports if the training is paused.
func (t *Trainer) Paused() bool {
	return t.paused
}

// Frequency returns the ticks per second.
func (t *Trainer) Frequency() int {
	return t.frequency
}

// Clock supplies the current time to the training loop.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (c SystemClock) Now() time.Time {
	return time.Now()
}

// Run drives the trainer until the context is done.
// Events are applied between ticks and every change is published.
func (t *Trainer) Run(ctx context.Context, clock Clock, events <-chan Event, publish func(State)) error {
	resolution := time.Millisecond
	if t.max > 0 {
		resolution = time.Second / time.Duration(t.max)
	}
	ticker := time.NewTicker(resolution)
	defer ticker.Stop()

	publish(t.Snapshot())
	log.Info().
		Int("frequency", t.frequency).
		Bool("paused", t.paused).
		Msg("trainer started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("trainer stopped")
			return ctx.Err()
		case e := <-events:
			if err := t.Apply(e); err != nil {
				log.Error().Err(err).Str("event", e.String()).Msg("could not apply event")
			}
			publish(t.Snapshot())
		case <-ticker.C:
			ok, err := t.Tick(clock.Now())
			if err != nil {
				return err
			}
			if ok {
				publish(t.Snapshot())
			}
		}
	}
}
