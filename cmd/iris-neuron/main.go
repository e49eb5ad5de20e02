package main

import (
	"context"
	"errors"
	"flag"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/drakos74/iris-neuron/internal/config"
	"github.com/drakos74/iris-neuron/internal/metrics"
	"github.com/drakos74/iris-neuron/internal/render"
	"github.com/drakos74/iris-neuron/internal/server"
	"github.com/drakos74/iris-neuron/internal/source"
	"github.com/drakos74/iris-neuron/internal/trainer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func main() {

	path := flag.String("config", "", "path to the json config file")
	initConfig := flag.Bool("init", false, "write the default config to the config path and exit")
	debug := flag.Bool("debug", false, "log the http requests")
	flag.Parse()

	if *initConfig {
		if *path == "" {
			log.Fatal().Msg("init requires a config path")
		}
		if err := config.Save(*path, config.Default()); err != nil {
			log.Fatal().Err(err).Str("path", *path).Msg("could not write config")
		}
		log.Info().Str("path", *path).Msg("config written")
		return
	}

	cfg, err := config.Load(*path)
	if err != nil {
		log.Fatal().Err(err).Str("path", *path).Msg("could not load config")
	}
	cfg, err = cfg.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("could not apply environment")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}
	level, _ := cfg.Level()
	zerolog.SetGlobalLevel(level)

	records, err := source.Load(cfg.Dataset)
	if err != nil {
		log.Fatal().Err(err).Str("dataset", cfg.Dataset).Msg("could not load records")
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	m := metrics.New()
	if err := m.Register(prometheus.DefaultRegisterer); err != nil {
		log.Fatal().Err(err).Msg("could not register metrics")
	}

	t, err := trainer.New(rand.New(rand.NewSource(seed)), records, cfg.Trainer)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create trainer")
	}
	t.WithRecorder(m)

	board := trainer.NewBoard()
	events := make(chan trainer.Event)

	control := server.NewControl(board, events)
	srv := server.NewServer("iris-neuron", cfg.Port).
		Add(server.Live()).
		Add(control.Routes()...).
		Mount("/metrics", promhttp.Handler())
	if *debug {
		srv.Debug()
		control.Debug()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return t.Run(ctx, trainer.SystemClock{}, events, board.Publish)
	})
	g.Go(func() error {
		return srv.Run(ctx)
	})
	if cfg.Render {
		g.Go(func() error {
			return render.New(os.Stdout).Run(ctx, board, cfg.Interval())
		})
	}

	log.Info().
		Int64("seed", seed).
		Int("port", cfg.Port).
		Int("records", len(records)).
		Msg("iris-neuron started")

	err = g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("iris-neuron stopped")
	}
	log.Info().Msg("iris-neuron stopped")
}
