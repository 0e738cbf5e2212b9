package main

import (
	"dots/agent"
	"dots/config"
	"dots/engine"
	"dots/experiments"
	"dots/field"
	"dots/searcher"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	flag "github.com/spf13/pflag"
)

func main() {
	configPath := flag.StringP("config", "c", "", "path to a YAML config file")
	mode := flag.StringP("mode", "m", "play", "play, or experiment to run the configured experiment")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	zerolog.SetGlobalLevel(level)

	switch *mode {
	case "play":
		play(cfg)
	case "experiment":
		runExperiment(cfg)
	default:
		log.Fatal().Msgf("unknown mode %q", *mode)
	}
}

// play runs one self-play game between two identically configured agents.
func play(cfg config.Config) {
	agents := []agent.Agent{
		agent.NewEvaluationAgent(searcher.NewMCTS(cfg.Search, searcher.WithMetrics()), cfg.MoveTime),
		agent.NewEvaluationAgent(searcher.NewMCTS(cfg.Search, searcher.WithMetrics()), cfg.MoveTime),
	}
	e := engine.LocalEngine(cfg.Width, cfg.Height, field.Red, agents)
	winner, game, moves := e.Run()

	total := int64(0)
	for _, m := range moves {
		total += m.Iterations
	}
	fmt.Printf("winner: %v, red score: %d, moves: %d, duration: %v, iterations: %d\n",
		winner, game.RedScore, game.TotalMoves, game.Duration, total)
}

func runExperiment(cfg config.Config) {
	settings := experiments.Settings{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Games:      cfg.Experiment.Games,
		MoveTime:   cfg.MoveTime,
		Iterations: cfg.Experiment.Iterations,
		Threads:    cfg.Experiment.Threads,
		Parallel:   cfg.Experiment.Parallel,
		OutputDir:  cfg.Experiment.OutputDir,
		Search:     cfg.Search,
	}
	if _, err := experiments.Run(cfg.Experiment.Name, settings); err != nil {
		log.Fatal().Err(err).Msgf("%s experiment failed", cfg.Experiment.Name)
	}
}
