package server

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/drakos74/iris-neuron/internal/model"
	"github.com/drakos74/iris-neuron/internal/trainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockBoard struct {
	state *trainer.State
}

func (m mockBoard) Latest() (trainer.State, bool) {
	if m.state == nil {
		return trainer.State{}, false
	}
	return *m.state, true
}

func newTestServer(board Board, events chan trainer.Event) *httptest.Server {
	srv := NewServer("test", 0).
		Add(Live()).
		Add(NewControl(board, events).Routes()...).
		Mount("/metrics", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "metrics")
		}))
	return httptest.NewServer(srv.Handler())
}

func post(t *testing.T, url, body string) *http.Response {
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	return resp
}

func TestServer_Live(t *testing.T) {

	ts := newTestServer(mockBoard{}, make(chan trainer.Event, 1))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/data")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(ts.URL+"/data", "application/json", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	b, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "metrics", string(b))
}

func TestControl_State(t *testing.T) {

	ts := newTestServer(mockBoard{}, make(chan trainer.Event, 1))
	resp, err := http.Get(ts.URL + "/api/state")
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	ts.Close()

	state := trainer.State{
		Session:   "abc",
		Mode:      model.Petal,
		Frequency: 5,
		Loss:      []float64{0.7, 0.6},
		Cursor:    trainer.Cursor{Index: 2, Generation: 1},
	}
	ts = newTestServer(mockBoard{state: &state}, make(chan trainer.Event, 1))
	defer ts.Close()

	resp, err = http.Get(ts.URL + "/api/state")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var decoded trainer.State
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	assert.Equal(t, "abc", decoded.Session)
	assert.Equal(t, model.Petal, decoded.Mode)
	assert.Equal(t, []float64{0.7, 0.6}, decoded.Loss)
	assert.Equal(t, trainer.Cursor{Index: 2, Generation: 1}, decoded.Cursor)
}

func TestControl_Events(t *testing.T) {

	type test struct {
		path  string
		body  string
		code  int
		event *trainer.Event
	}

	pause := trainer.SetPause(true)
	toggle := trainer.TogglePause()
	frequency := trainer.SetFrequency(30)
	pair := trainer.SetPair(model.Versicolor)
	mode := trainer.SetMode(model.All)
	sepal := trainer.SetMode(model.Sepal)

	tests := map[string]test{
		"pause":          {path: "pause", body: `{"pause":true}`, code: http.StatusAccepted, event: &pause},
		"toggle":         {path: "pause", body: ``, code: http.StatusAccepted, event: &toggle},
		"frequency":      {path: "frequency", body: `{"frequency":30}`, code: http.StatusAccepted, event: &frequency},
		"pair":           {path: "pair", body: `{"species":"Iris-versicolor"}`, code: http.StatusAccepted, event: &pair},
		"pair-anchor":    {path: "pair", body: `{"species":"setosa"}`, code: http.StatusBadRequest},
		"pair-unknown":   {path: "pair", body: `{"species":"rosa"}`, code: http.StatusBadRequest},
		"mode":           {path: "mode", body: `{"mode":"all"}`, code: http.StatusAccepted, event: &mode},
		"mode-unknown":   {path: "mode", body: `{"mode":"leaf"}`, code: http.StatusBadRequest},
		"mode-empty":     {path: "mode", body: ``, code: http.StatusBadRequest},
		"mode-missing":   {path: "mode", body: `{}`, code: http.StatusBadRequest},
		"mode-sepal":     {path: "mode", body: `{"mode":"sepal"}`, code: http.StatusAccepted, event: &sepal},
		"malformed-json": {path: "frequency", body: `{"frequency":`, code: http.StatusBadRequest},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			events := make(chan trainer.Event, 1)
			ts := newTestServer(mockBoard{}, events)
			defer ts.Close()

			resp := post(t, ts.URL+"/api/"+tt.path, tt.body)
			assert.Equal(t, tt.code, resp.StatusCode)

			if tt.event == nil {
				assert.Equal(t, 0, len(events))
				return
			}
			require.Equal(t, 1, len(events))
			assert.Equal(t, *tt.event, <-events)
		})
	}
}
