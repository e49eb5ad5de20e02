package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSpecies(t *testing.T) {

	type test struct {
		label   string
		species Species
		err     error
	}

	tests := map[string]test{
		"kaggle-setosa":      {label: "Iris-setosa", species: Setosa},
		"kaggle-versicolor":  {label: "Iris-versicolor", species: Versicolor},
		"british-versicolor": {label: "Iris-versicolour", species: Versicolor},
		"plain-virginica":    {label: " virginica ", species: Virginica},
		"upper-case":         {label: "IRIS-SETOSA", species: Setosa},
		"unknown":            {label: "Iris-rosa", species: NoSpecies, err: UnknownSpeciesErr},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s, err := ParseSpecies(tt.label)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.species, s)
		})
	}
}

func TestPair(t *testing.T) {

	_, err := NewPair(Setosa)
	assert.ErrorIs(t, err, InvalidPairErr)

	pair, err := NewPair(Virginica)
	require.NoError(t, err)

	assert.True(t, pair.Contains(Setosa))
	assert.True(t, pair.Contains(Virginica))
	assert.False(t, pair.Contains(Versicolor))

	assert.Equal(t, 0.0, pair.Target(Setosa))
	assert.Equal(t, 1.0, pair.Target(Virginica))
}

func TestMode(t *testing.T) {

	assert.Equal(t, 2, Sepal.Inputs())
	assert.Equal(t, 2, Petal.Inputs())
	assert.Equal(t, 4, All.Inputs())

	x, y := All.Axes()
	assert.Empty(t, x)
	assert.Empty(t, y)

	var payload struct {
		Mode Mode `json:"mode"`
	}
	err := json.Unmarshal([]byte(`{"mode":"petal"}`), &payload)
	require.NoError(t, err)
	assert.Equal(t, Petal, payload.Mode)

	err = json.Unmarshal([]byte(`{"mode":"leaf"}`), &payload)
	assert.ErrorIs(t, err, InvalidModeErr)
}

func TestSpecies_UnmarshalText(t *testing.T) {
	var payload struct {
		Species Species `json:"species"`
	}
	err := json.Unmarshal([]byte(`{"species":"Iris-versicolour"}`), &payload)
	require.NoError(t, err)
	assert.Equal(t, Versicolor, payload.Species)

	b, err := json.Marshal(payload)
	require.NoError(t, err)
	err = json.Unmarshal(b, &payload)
	require.NoError(t, err)
	assert.Equal(t, Versicolor, payload.Species)

	err = json.Unmarshal([]byte(`{"species":"rose"}`), &payload)
	assert.ErrorIs(t, err, UnknownSpeciesErr)
}

func TestSpecies_ZeroValueRoundTrip(t *testing.T) {
	type payload struct {
		Pair   Pair   `json:"pair"`
		Record Record `json:"record"`
	}

	b, err := json.Marshal(payload{})
	require.NoError(t, err)

	decoded := payload{Record: Record{Species: Setosa}}
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, payload{}, decoded)
	assert.Equal(t, NoSpecies, decoded.Record.Species)
}
