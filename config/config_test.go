package config

import (
	"dots/searcher"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dots.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		require.Equal(t, 39, cfg.Width)
		require.Equal(t, 32, cfg.Height)
		require.Equal(t, 5*time.Second, cfg.MoveTime)
		require.Equal(t, searcher.DefaultConfig(), cfg.Search)
		require.Equal(t, []int{2, 4, 8}, cfg.Experiment.Threads)
		require.Equal(t, "threads", cfg.Experiment.Name)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := writeConfig(t, `
width: 10
height: 8
move_time: 250ms
search:
  threads: 4
  ucb: ucb1
  komi: static
  komi_seed: -2
  draw_weight: 0.25
  seed: 99
experiment:
  threads: [1, 16]
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, 10, cfg.Width)
		require.Equal(t, 8, cfg.Height)
		require.Equal(t, 250*time.Millisecond, cfg.MoveTime)
		require.Equal(t, 4, cfg.Search.Threads)
		require.Equal(t, searcher.UCB1, cfg.Search.UCB)
		require.Equal(t, searcher.KomiStatic, cfg.Search.Komi)
		require.Equal(t, int64(-2), cfg.Search.KomiSeed)
		require.Equal(t, 0.25, cfg.Search.DrawWeight)
		require.Equal(t, uint64(99), cfg.Search.Seed)
		require.Equal(t, []int{1, 16}, cfg.Experiment.Threads)
		require.Equal(t, searcher.DefaultConfig().Radius, cfg.Search.Radius, "Should keep unset defaults")
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		path := writeConfig(t, "search:\n  threads: 4\n")
		t.Setenv("DOTS_SEARCH_THREADS", "6")
		t.Setenv("DOTS_WIDTH", "12")
		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, 6, cfg.Search.Threads)
		require.Equal(t, 12, cfg.Width)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})

	t.Run("unknown ucb type", func(t *testing.T) {
		_, err := Load(writeConfig(t, "search:\n  ucb: ucb2\n"))
		require.ErrorContains(t, err, "search.ucb")
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := Load(writeConfig(t, "width: 0\nsearch:\n  threads: 0\n"))
		require.ErrorContains(t, err, "field size")
		require.ErrorContains(t, err, "threads")
	})

	t.Run("needs a budget", func(t *testing.T) {
		_, err := Load(writeConfig(t, "move_time: 0s\n"))
		require.ErrorContains(t, err, "max_iterations")
	})

	t.Run("experiment name", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "experiment:\n  name: throughput\n"))
		require.NoError(t, err)
		require.Equal(t, "throughput", cfg.Experiment.Name)

		_, err = Load(writeConfig(t, "experiment:\n  name: ladder\n"))
		require.ErrorContains(t, err, "unknown experiment")
	})
}
