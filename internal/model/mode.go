package model

import (
	"errors"
	"fmt"
	"strings"
)

// Mode defines the feature selection used to build the input vectors.
type Mode byte

const (
	// Sepal selects sepal length and width
	Sepal Mode = iota
	// Petal selects petal length and width
	Petal
	// All selects all four measurements
	All
)

var InvalidModeErr = errors.New("invalid mode")

var modes = map[string]Mode{
	"sepal": Sepal,
	"petal": Petal,
	"all":   All,
}

// ParseMode parses the mode name.
func ParseMode(s string) (Mode, error) {
	if m, ok := modes[strings.ToLower(strings.TrimSpace(s))]; ok {
		return m, nil
	}
	return Sepal, fmt.Errorf("could not parse '%s': %w", s, InvalidModeErr)
}

// Inputs returns the length of the feature vectors for the mode.
func (m Mode) Inputs() int {
	if m == All {
		return 4
	}
	return 2
}

// Axes returns the names of the plotted dimensions.
// There are none for more than two inputs.
func (m Mode) Axes() (string, string) {
	switch m {
	case Sepal:
		return "SepalLengthCm", "SepalWidthCm"
	case Petal:
		return "PetalLengthCm", "PetalWidthCm"
	}
	return "", ""
}

func (m Mode) String() string {
	switch m {
	case Sepal:
		return "Sepal"
	case Petal:
		return "Petal"
	case All:
		return "All"
	}
	return fmt.Sprintf("Mode(%d)", byte(m))
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(m.String())), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	mode, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}
