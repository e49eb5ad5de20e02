package dataset

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/drakos74/iris-neuron/internal/model"
)

// DefaultSampleSize is the number of records kept aside per class for display.
const DefaultSampleSize = 3

var EmptyDatasetErr = errors.New("empty dataset")

// Sample is a training input paired with its encoded target.
type Sample struct {
	Input  []float64    `json:"input"`
	Target float64      `json:"target"`
	Record model.Record `json:"record"`
}

// Select keeps the records of the anchor class and the positive class of the pair.
func Select(records []model.Record, pair model.Pair) ([]model.Record, error) {
	filtered := make([]model.Record, 0, len(records))
	for _, r := range records {
		if pair.Contains(r.Species) {
			filtered = append(filtered, r)
		}
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("no records for '%s' out of %d: %w", pair, len(records), EmptyDatasetErr)
	}
	return filtered, nil
}

// Shuffle returns a uniformly random permutation of the records.
func Shuffle(rng *rand.Rand, records []model.Record) []model.Record {
	shuffled := make([]model.Record, len(records))
	copy(shuffled, records)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// StratifiedSample takes up to perClass records of each class of the pair in encounter order.
func StratifiedSample(records []model.Record, pair model.Pair, perClass int) []model.Record {
	sample := make([]model.Record, 0, 2*perClass)
	var anchor, positive int
	for _, r := range records {
		if anchor >= perClass && positive >= perClass {
			break
		}
		switch {
		case r.Species == model.Anchor && anchor < perClass:
			anchor++
			sample = append(sample, r)
		case r.Species == pair.Positive && positive < perClass:
			positive++
			sample = append(sample, r)
		}
	}
	return sample
}

// Project maps the record to the feature vector of the given mode.
func Project(r model.Record, mode model.Mode) []float64 {
	switch mode {
	case model.Sepal:
		return []float64{r.SepalLength, r.SepalWidth}
	case model.Petal:
		return []float64{r.PetalLength, r.PetalWidth}
	default:
		return []float64{r.SepalLength, r.SepalWidth, r.PetalLength, r.PetalWidth}
	}
}

// Samples projects the whole sequence for the given pair and mode.
func Samples(records []model.Record, pair model.Pair, mode model.Mode) []Sample {
	samples := make([]Sample, len(records))
	for i, r := range records {
		samples[i] = Sample{
			Input:  Project(r, mode),
			Target: pair.Target(r.Species),
			Record: r,
		}
	}
	return samples
}
