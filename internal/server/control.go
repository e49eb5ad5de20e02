package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/drakos74/iris-neuron/internal/model"
	"github.com/drakos74/iris-neuron/internal/trainer"
)

// Board gives read access to the last published trainer state.
type Board interface {
	Latest() (trainer.State, bool)
}

// Control exposes the trainer state and turns requests into configuration events.
type Control struct {
	board  Board
	events chan<- trainer.Event
	debug  bool
}

// NewControl creates the control routes for the given board and event channel.
func NewControl(board Board, events chan<- trainer.Event) *Control {
	return &Control{
		board:  board,
		events: events,
	}
}

// Debug logs the request payloads.
func (c *Control) Debug() *Control {
	c.debug = true
	return c
}

// Routes returns the routes of the control api.
func (c *Control) Routes() []Route {
	return []Route{
		{Action: Api, Path: "state", Method: GET, Exec: c.state},
		{Action: Api, Path: "pause", Method: POST, Exec: c.pause},
		{Action: Api, Path: "frequency", Method: POST, Exec: c.frequency},
		{Action: Api, Path: "pair", Method: POST, Exec: c.pair},
		{Action: Api, Path: "mode", Method: POST, Exec: c.mode},
	}
}

func (c *Control) state(r *http.Request) ([]byte, int, error) {
	s, ok := c.board.Latest()
	if !ok {
		return nil, http.StatusServiceUnavailable, fmt.Errorf("no state published yet")
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, http.StatusInternalServerError, fmt.Errorf("could not encode state: %w", err)
	}
	return b, http.StatusOK, nil
}

// PauseRequest pauses or resumes the training, an empty request toggles it.
type PauseRequest struct {
	Pause *bool `json:"pause"`
}

func (c *Control) pause(r *http.Request) ([]byte, int, error) {
	var req PauseRequest
	if err := ReadJson(r, c.debug, &req); err != nil {
		return nil, http.StatusBadRequest, err
	}
	if req.Pause == nil {
		return c.send(r, trainer.TogglePause())
	}
	return c.send(r, trainer.SetPause(*req.Pause))
}

// FrequencyRequest sets the ticks per second.
type FrequencyRequest struct {
	Frequency int `json:"frequency"`
}

func (c *Control) frequency(r *http.Request) ([]byte, int, error) {
	var req FrequencyRequest
	if err := ReadJson(r, c.debug, &req); err != nil {
		return nil, http.StatusBadRequest, err
	}
	return c.send(r, trainer.SetFrequency(req.Frequency))
}

// PairRequest selects the species trained against the anchor.
type PairRequest struct {
	Species string `json:"species"`
}

func (c *Control) pair(r *http.Request) ([]byte, int, error) {
	var req PairRequest
	if err := ReadJson(r, c.debug, &req); err != nil {
		return nil, http.StatusBadRequest, err
	}
	species, err := model.ParseSpecies(req.Species)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	if _, err := model.NewPair(species); err != nil {
		return nil, http.StatusBadRequest, err
	}
	return c.send(r, trainer.SetPair(species))
}

// ModeRequest selects the features the neuron is trained on.
type ModeRequest struct {
	Mode *model.Mode `json:"mode"`
}

func (c *Control) mode(r *http.Request) ([]byte, int, error) {
	var req ModeRequest
	if err := ReadJson(r, c.debug, &req); err != nil {
		return nil, http.StatusBadRequest, err
	}
	if req.Mode == nil {
		return nil, http.StatusBadRequest, fmt.Errorf("missing mode: %w", model.InvalidModeErr)
	}
	return c.send(r, trainer.SetMode(*req.Mode))
}

func (c *Control) send(r *http.Request, e trainer.Event) ([]byte, int, error) {
	select {
	case c.events <- e:
		return []byte(e.String()), http.StatusAccepted, nil
	case <-r.Context().Done():
		return nil, http.StatusServiceUnavailable, fmt.Errorf("could not deliver '%s': %w", e, r.Context().Err())
	}
}
