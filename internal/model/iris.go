package model

import (
	"errors"
	"fmt"
	"strings"
)

// Species defines the iris species of a record.
type Species string

const (
	// NoSpecies is an undefined species
	NoSpecies Species = ""
	// Setosa represents iris setosa
	Setosa Species = "Setosa"
	// Versicolor represents iris versicolor
	Versicolor Species = "Versicolor"
	// Virginica represents iris virginica
	Virginica Species = "Virginica"
)

// Anchor is the species always trained as the negative class.
const Anchor = Setosa

var (
	UnknownSpeciesErr = errors.New("unknown species")
	InvalidPairErr    = errors.New("invalid class pair")
)

// species maps the lower-case label forms found in iris datasets.
var species = map[string]Species{
	"setosa":      Setosa,
	"versicolor":  Versicolor,
	"versicolour": Versicolor,
	"virginica":   Virginica,
}

// ParseSpecies parses the species label e.g. 'Iris-setosa' or 'virginica'.
func ParseSpecies(s string) (Species, error) {
	label := strings.ToLower(strings.TrimSpace(s))
	label = strings.TrimPrefix(label, "iris-")
	if sp, ok := species[label]; ok {
		return sp, nil
	}
	return NoSpecies, fmt.Errorf("could not parse '%s': %w", s, UnknownSpeciesErr)
}

// UnmarshalText accepts any label ParseSpecies accepts, an empty label is NoSpecies.
func (s *Species) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*s = NoSpecies
		return nil
	}
	sp, err := ParseSpecies(string(text))
	if err != nil {
		return err
	}
	*s = sp
	return nil
}

// Positives returns the species that can be trained against the anchor.
func Positives() []Species {
	return []Species{Versicolor, Virginica}
}

func (s Species) String() string {
	if s == NoSpecies {
		return "Iris"
	}
	return fmt.Sprintf("Iris %s", string(s))
}

// Record is one labeled iris measurement.
type Record struct {
	ID          int     `json:"id"`
	SepalLength float64 `json:"sepal_length"`
	SepalWidth  float64 `json:"sepal_width"`
	PetalLength float64 `json:"petal_length"`
	PetalWidth  float64 `json:"petal_width"`
	Species     Species `json:"species"`
}

// Pair is the active binary classification problem.
// The anchor class is always encoded as 0 and the positive one as 1.
type Pair struct {
	Positive Species `json:"positive"`
}

// NewPair creates a new pair for the given positive species.
func NewPair(positive Species) (Pair, error) {
	switch positive {
	case Versicolor, Virginica:
		return Pair{Positive: positive}, nil
	}
	return Pair{}, fmt.Errorf("'%s' cannot be trained against %s: %w", positive, Anchor, InvalidPairErr)
}

// Contains checks if the species takes part in the pair.
func (p Pair) Contains(s Species) bool {
	return s == Anchor || s == p.Positive
}

// Target returns the encoded label for the given species.
func (p Pair) Target(s Species) float64 {
	if s == p.Positive {
		return 1.0
	}
	return 0.0
}

func (p Pair) String() string {
	return fmt.Sprintf("%s|%s", Anchor, p.Positive)
}
