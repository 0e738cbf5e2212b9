package experiments

import (
	"dots/agent"
	"dots/engine"
	"dots/experiments/metrics"
	"dots/field"
	"dots/searcher"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Settings shared by every game of an experiment.
type Settings struct {
	Width, Height int
	Games         int // per matchup
	MoveTime      time.Duration
	Iterations    int64 // per move when MoveTime is zero
	Threads       []int
	Parallel      int // games played at once
	OutputDir     string
	Search        searcher.Config
}

func (s Settings) agentConfig(id, threads int) metrics.AgentConfig {
	return metrics.AgentConfig{
		ID:         id,
		Threads:    threads,
		MoveTime:   s.MoveTime,
		Iterations: s.Iterations,
		Radius:     s.Search.Radius,
		UCB:        s.Search.UCB.String(),
		Komi:       s.Search.Komi.String(),
	}
}

// Run starts the experiment called name, either "threads" or "throughput".
func Run(name string, settings Settings) ([]metrics.AgentSummary, error) {
	switch name {
	case "threads":
		return RunThreadsExperiment(settings)
	case "throughput":
		return RunThroughputExperiment(settings)
	}
	return nil, fmt.Errorf("unknown experiment %q", name)
}

// RunThreadsExperiment pairs every thread count against a single threaded
// baseline, alternating colours between games.
func RunThreadsExperiment(settings Settings) ([]metrics.AgentSummary, error) {
	baseline := settings.agentConfig(0, 1)
	configs := []metrics.AgentConfig{baseline}
	matchUps := [][]metrics.AgentConfig{}
	for i, threads := range settings.Threads {
		config := settings.agentConfig(i+1, threads)
		configs = append(configs, config)
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}
	return runExperiment("threads", settings, configs, matchUps)
}

type game struct {
	id             int
	red, black     metrics.AgentConfig
	matchUp, index int
}

func runExperiment(name string, settings Settings, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) ([]metrics.AgentSummary, error) {
	if settings.MoveTime <= 0 && settings.Iterations <= 0 {
		return nil, errors.New("experiment needs a move time or an iteration budget")
	}
	games := []game{}
	for mi, matchUp := range matchUps {
		for i := 0; i < settings.Games; i++ {
			red, black := matchUp[0], matchUp[1]
			if i%2 == 1 {
				red, black = black, red
			}
			games = append(games, game{id: len(games) + 1, red: red, black: black, matchUp: mi, index: i})
		}
	}

	log.Info().Msgf("starting %s experiment with %d games...", name, len(games))

	gameRecords := make([]metrics.GameRecord, len(games))
	moveRecords := make([][]metrics.MoveRecord, len(games))
	var g errgroup.Group
	g.SetLimit(max(settings.Parallel, 1))
	for gi, gm := range games {
		gi, gm := gi, gm
		g.Go(func() error {
			log.Info().Msgf("starting matchup %d of %d game %d of %d...", gm.matchUp+1, len(matchUps), gm.index+1, settings.Games)
			winner, gameMetric, moveMetrics := runGame(settings, gm)

			records := make([]metrics.MoveRecord, 0, len(moveMetrics))
			for _, mm := range moveMetrics {
				records = append(records, metrics.MoveRecord{Game: gm.id, MoveMetric: mm})
			}
			gameRecords[gi] = metrics.GameRecord{
				ID:         gm.id,
				Agent1:     gm.red.ID,
				Agent2:     gm.black.ID,
				GameMetric: gameMetric,
			}
			moveRecords[gi] = records

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %v", gm.matchUp+1, len(matchUps), gm.index+1, winner)
			return nil
		})
	}
	_ = g.Wait()

	log.Info().Msgf("completed %s experiment", name)

	var allMoves []metrics.MoveRecord
	for _, records := range moveRecords {
		allMoves = append(allMoves, records...)
	}
	summaries := metrics.Summarize(configs, gameRecords, allMoves)
	for _, s := range summaries {
		log.Info().Msgf("agent %d: %d wins, %d losses, %d draws, %.0f±%.0f iterations per move",
			s.Agent, s.Wins, s.Losses, s.Draws, s.MeanIterations, s.StdIterations)
	}

	if settings.OutputDir == "" {
		return summaries, nil
	}
	if err := store(name, settings.OutputDir, configs, gameRecords, allMoves, summaries); err != nil {
		return summaries, err
	}
	return summaries, nil
}

func store(name, dir string, configs []metrics.AgentConfig, games []metrics.GameRecord, moves []metrics.MoveRecord, summaries []metrics.AgentSummary) error {
	writer, err := metrics.NewWriter(dir, name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(games); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moves); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	if err := writer.WriteSummary(summaries); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	log.Info().Msgf("stored results in %s", writer.Dir())
	return nil
}

// runGame plays one game with red always moving first.
func runGame(settings Settings, gm game) (field.Player, metrics.GameMetric, []metrics.MoveMetric) {
	agents := []agent.Agent{
		agent.NewEvaluationAgent(createMCTS(settings, gm.red, uint64(gm.id)*2), settings.MoveTime),
		agent.NewEvaluationAgent(createMCTS(settings, gm.black, uint64(gm.id)*2+1), settings.MoveTime),
	}
	e := engine.LocalEngine(settings.Width, settings.Height, field.Red, agents)
	return e.Run()
}

func createMCTS(settings Settings, config metrics.AgentConfig, seed uint64) *searcher.MCTS {
	cfg := settings.Search
	cfg.Threads = config.Threads
	if settings.MoveTime == 0 {
		cfg.MaxIterations = config.Iterations
	}
	if cfg.Seed != 0 {
		cfg.Seed += seed
	}
	return searcher.NewMCTS(cfg, searcher.WithMetrics())
}
