package source

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/drakos74/iris-neuron/internal/model"
	"github.com/rs/zerolog/log"
)

// DefaultPath is where the demo looks for the dataset first.
const DefaultPath = "Iris.csv"

var MissingColumnErr = errors.New("missing column")

//go:embed data/Iris.csv
var iris []byte

// columns are the headers of the kaggle iris dataset.
var columns = []string{
	"SepalLengthCm",
	"SepalWidthCm",
	"PetalLengthCm",
	"PetalWidthCm",
	"Species",
}

const idColumn = "Id"

// Default returns the records of the embedded dataset.
func Default() ([]model.Record, error) {
	return Parse(bytes.NewReader(iris))
}

// Load reads the records from the given csv file.
// It falls back to the embedded dataset if the file does not exist.
func Load(path string) ([]model.Record, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Warn().Str("path", path).Msg("dataset not found, using embedded iris data")
		return Default()
	}
	if err != nil {
		return nil, fmt.Errorf("could not open dataset '%s': %w", path, err)
	}
	defer f.Close()
	rr, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("could not parse dataset '%s': %w", path, err)
	}
	log.Info().Str("path", path).Int("records", len(rr)).Msg("loaded dataset")
	return rr, nil
}

// Parse decodes the csv records, the first line is expected to be the header.
func Parse(r io.Reader) ([]model.Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("could not read header: %w", err)
	}

	index := make(map[string]int)
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}
	for _, c := range columns {
		if _, ok := index[c]; !ok {
			return nil, fmt.Errorf("'%s' not in %v: %w", c, header, MissingColumnErr)
		}
	}

	records := make([]model.Record, 0)
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("could not read line %d: %w", line, err)
		}

		record, err := parseRow(row, index, line)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func parseRow(row []string, index map[string]int, line int) (model.Record, error) {
	values := make([]float64, 4)
	for i, c := range columns[:4] {
		v, err := strconv.ParseFloat(row[index[c]], 64)
		if err != nil {
			return model.Record{}, fmt.Errorf("invalid %s at line %d: %w", c, line, err)
		}
		values[i] = v
	}

	species, err := model.ParseSpecies(row[index["Species"]])
	if err != nil {
		return model.Record{}, fmt.Errorf("invalid species at line %d: %w", line, err)
	}

	id := line - 1
	if i, ok := index[idColumn]; ok {
		id, err = strconv.Atoi(row[i])
		if err != nil {
			return model.Record{}, fmt.Errorf("invalid id at line %d: %w", line, err)
		}
	}

	return model.Record{
		ID:          id,
		SepalLength: values[0],
		SepalWidth:  values[1],
		PetalLength: values[2],
		PetalWidth:  values[3],
		Species:     species,
	}, nil
}
