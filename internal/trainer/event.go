package trainer

import (
	"fmt"

	"github.com/drakos74/iris-neuron/internal/model"
)

// Kind defines the type of a configuration event.
type Kind string

const (
	PairEvent      Kind = "pair"
	ModeEvent      Kind = "mode"
	FrequencyEvent Kind = "frequency"
	PauseEvent     Kind = "pause"
	ToggleEvent    Kind = "toggle"
)

// Event is a configuration change, applied between ticks.
type Event struct {
	Kind      Kind          `json:"kind"`
	Species   model.Species `json:"species,omitempty"`
	Mode      model.Mode    `json:"mode,omitempty"`
	Frequency int           `json:"frequency,omitempty"`
	Pause     bool          `json:"pause,omitempty"`
}

// SetPair selects the species trained against the anchor.
func SetPair(species model.Species) Event {
	return Event{Kind: PairEvent, Species: species}
}

// SetMode selects the features the neuron is trained on.
func SetMode(mode model.Mode) Event {
	return Event{Kind: ModeEvent, Mode: mode}
}

// SetFrequency sets the number of ticks per second.
func SetFrequency(hz int) Event {
	return Event{Kind: FrequencyEvent, Frequency: hz}
}

// SetPause pauses or resumes the training.
func SetPause(pause bool) Event {
	return Event{Kind: PauseEvent, Pause: pause}
}

// TogglePause flips the paused flag.
func TogglePause() Event {
	return Event{Kind: ToggleEvent}
}

func (e Event) String() string {
	switch e.Kind {
	case PairEvent:
		return fmt.Sprintf("%s:%s", e.Kind, e.Species)
	case ModeEvent:
		return fmt.Sprintf("%s:%s", e.Kind, e.Mode)
	case FrequencyEvent:
		return fmt.Sprintf("%s:%d", e.Kind, e.Frequency)
	case PauseEvent:
		return fmt.Sprintf("%s:%v", e.Kind, e.Pause)
	}
	return string(e.Kind)
}
