package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/drakos74/iris-neuron/internal/source"
	"github.com/drakos74/iris-neuron/internal/storage"
	"github.com/drakos74/iris-neuron/internal/storage/file/json"
	"github.com/drakos74/iris-neuron/internal/trainer"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	DatasetEnv  = "IRIS_CSV"
	PortEnv     = "IRIS_PORT"
	LogLevelEnv = "IRIS_LOG_LEVEL"
)

var InvalidConfigErr = errors.New("invalid config")

// Config is the process configuration.
type Config struct {
	Dataset  string         `json:"dataset"`
	Port     int            `json:"port"`
	LogLevel string         `json:"log_level"`
	Render   bool           `json:"render"`
	RenderMs int            `json:"render_ms"`
	Seed     int64          `json:"seed"`
	Trainer  trainer.Config `json:"trainer"`
}

// Default returns the configuration of the demo.
// A zero seed means a time based one.
func Default() Config {
	return Config{
		Dataset:  source.DefaultPath,
		Port:     6090,
		LogLevel: zerolog.InfoLevel.String(),
		Render:   true,
		RenderMs: 200,
		Trainer:  trainer.DefaultConfig(),
	}
}

// Load reads the config file on top of the defaults.
// A missing file leaves the defaults in place.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	err := json.Load(filepath.Dir(path), filepath.Base(path), &cfg)
	if errors.Is(err, storage.NotFoundErr) {
		log.Warn().Str("path", path).Msg("config file not found, using defaults")
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the config to the given path.
func Save(path string, cfg Config) error {
	return json.Save(filepath.Dir(path), filepath.Base(path), cfg)
}

// Env applies the environment overrides.
func (c Config) Env(lookup func(string) (string, bool)) (Config, error) {
	if v, ok := lookup(DatasetEnv); ok && v != "" {
		c.Dataset = v
	}
	if v, ok := lookup(PortEnv); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return c, fmt.Errorf("could not parse %s '%s': %w", PortEnv, v, InvalidConfigErr)
		}
		c.Port = port
	}
	if v, ok := lookup(LogLevelEnv); ok && v != "" {
		c.LogLevel = v
	}
	return c, nil
}

// FromEnv applies the overrides of the process environment.
func (c Config) FromEnv() (Config, error) {
	return c.Env(os.LookupEnv)
}

// Validate checks the config values that cannot be clamped.
func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d: %w", c.Port, InvalidConfigErr)
	}
	if c.Trainer.LearningRate <= 0 {
		return fmt.Errorf("learning rate %v: %w", c.Trainer.LearningRate, InvalidConfigErr)
	}
	if c.Trainer.SampleSize < 0 {
		return fmt.Errorf("sample size %d: %w", c.Trainer.SampleSize, InvalidConfigErr)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses the log level.
func (c Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log level '%s': %w", c.LogLevel, InvalidConfigErr)
	}
	return level, nil
}

// Interval is the refresh period of the terminal renderer.
func (c Config) Interval() time.Duration {
	if c.RenderMs <= 0 {
		return 200 * time.Millisecond
	}
	return time.Duration(c.RenderMs) * time.Millisecond
}
