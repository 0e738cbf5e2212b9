package experiments

import (
	"dots/searcher"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.Disabled)
}

func smallSettings(t *testing.T) Settings {
	cfg := searcher.DefaultConfig()
	cfg.Seed = 11
	return Settings{
		Width:      4,
		Height:     4,
		Games:      2,
		Iterations: 20,
		Threads:    []int{2},
		Parallel:   2,
		OutputDir:  t.TempDir(),
		Search:     cfg,
	}
}

func TestRunThreadsExperiment(t *testing.T) {
	t.Run("needs a budget", func(t *testing.T) {
		settings := smallSettings(t)
		settings.Iterations = 0
		_, err := RunThreadsExperiment(settings)
		require.Error(t, err)
	})

	t.Run("plays every game and stores the results", func(t *testing.T) {
		settings := smallSettings(t)
		summaries, err := RunThreadsExperiment(settings)
		require.NoError(t, err)
		require.Len(t, summaries, 2)
		for _, s := range summaries {
			require.Equal(t, 2, s.Games)
			require.Equal(t, s.Games, s.Wins+s.Losses+s.Draws)
			require.Positive(t, s.Moves)
		}

		runs, err := os.ReadDir(filepath.Join(settings.OutputDir, "threads"))
		require.NoError(t, err)
		require.Len(t, runs, 1)
		for _, name := range []string{"agent_configs.csv", "agent_configs.yaml", "game_records.csv", "move_records.csv", "summary.yaml"} {
			_, err := os.Stat(filepath.Join(settings.OutputDir, "threads", runs[0].Name(), name))
			require.NoError(t, err, name)
		}
	})
}

func TestRunThroughputExperiment(t *testing.T) {
	settings := smallSettings(t)
	settings.Threads = []int{1, 2}
	settings.Games = 1
	settings.OutputDir = ""
	summaries, err := RunThroughputExperiment(settings)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	for _, s := range summaries {
		require.Equal(t, 2, s.Games, "Each agent plays both colours of its own game")
		require.Positive(t, s.MeanIterations)
	}
}

func TestRun(t *testing.T) {
	t.Run("unknown experiment", func(t *testing.T) {
		_, err := Run("ladder", smallSettings(t))
		require.ErrorContains(t, err, "ladder")
	})

	t.Run("dispatches by name", func(t *testing.T) {
		settings := smallSettings(t)
		summaries, err := Run("threads", settings)
		require.NoError(t, err)
		require.Len(t, summaries, 2)
		_, err = os.Stat(filepath.Join(settings.OutputDir, "threads"))
		require.NoError(t, err)
	})
}
