// Package config loads engine and search settings from defaults, an optional
// YAML file and DOTS_ prefixed environment variables, in increasing order of
// precedence.
package config

import (
	"dots/searcher"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

type ExperimentConfig struct {
	Name       string
	Games      int
	Threads    []int
	Parallel   int
	Iterations int64
	OutputDir  string
}

type Config struct {
	Width      int
	Height     int
	MoveTime   time.Duration
	LogLevel   string
	Search     searcher.Config
	Experiment ExperimentConfig
}

func setDefaults(v *viper.Viper) {
	d := searcher.DefaultConfig()
	v.SetDefault("width", 39)
	v.SetDefault("height", 32)
	v.SetDefault("move_time", 5*time.Second)
	v.SetDefault("log_level", "info")

	v.SetDefault("search.threads", d.Threads)
	v.SetDefault("search.radius", d.Radius)
	v.SetDefault("search.ucb", d.UCB.String())
	v.SetDefault("search.draw_weight", d.DrawWeight)
	v.SetDefault("search.exploration", d.Exploration)
	v.SetDefault("search.expansion_threshold", d.ExpansionThreshold)
	v.SetDefault("search.rollout_depth", d.RolloutDepth)
	v.SetDefault("search.komi", d.Komi.String())
	v.SetDefault("search.komi_seed", d.KomiSeed)
	v.SetDefault("search.red", d.Red)
	v.SetDefault("search.green", d.Green)
	v.SetDefault("search.draw_margin", d.DrawMargin)
	v.SetDefault("search.komi_min_iterations", d.KomiMinIterations)
	v.SetDefault("search.komi_interval", d.KomiInterval)
	v.SetDefault("search.komi_step", d.KomiStep)
	v.SetDefault("search.virtual_loss", d.VirtualLoss)
	v.SetDefault("search.max_iterations", d.MaxIterations)
	v.SetDefault("search.seed", d.Seed)

	v.SetDefault("experiment.name", "threads")
	v.SetDefault("experiment.games", 30)
	v.SetDefault("experiment.threads", []int{2, 4, 8})
	v.SetDefault("experiment.parallel", 1)
	v.SetDefault("experiment.iterations", 0)
	v.SetDefault("experiment.output_dir", "results")
}

// Load reads the configuration. An empty path uses defaults and environment
// variables only.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("DOTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	ucb, err := searcher.ParseUCBType(v.GetString("search.ucb"))
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse search.ucb: %w", err)
	}
	komi, err := searcher.ParseKomiType(v.GetString("search.komi"))
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse search.komi: %w", err)
	}

	cfg := Config{
		Width:    v.GetInt("width"),
		Height:   v.GetInt("height"),
		MoveTime: v.GetDuration("move_time"),
		LogLevel: v.GetString("log_level"),
		Search: searcher.Config{
			Threads:            v.GetInt("search.threads"),
			Radius:             v.GetInt("search.radius"),
			UCB:                ucb,
			DrawWeight:         v.GetFloat64("search.draw_weight"),
			Exploration:        v.GetFloat64("search.exploration"),
			ExpansionThreshold: v.GetInt64("search.expansion_threshold"),
			RolloutDepth:       v.GetInt("search.rollout_depth"),
			Komi:               komi,
			KomiSeed:           v.GetInt64("search.komi_seed"),
			Red:                v.GetFloat64("search.red"),
			Green:              v.GetFloat64("search.green"),
			DrawMargin:         v.GetInt64("search.draw_margin"),
			KomiMinIterations:  v.GetInt64("search.komi_min_iterations"),
			KomiInterval:       v.GetInt64("search.komi_interval"),
			KomiStep:           v.GetInt64("search.komi_step"),
			VirtualLoss:        v.GetInt64("search.virtual_loss"),
			MaxIterations:      v.GetInt64("search.max_iterations"),
			Seed:               v.GetUint64("search.seed"),
		},
		Experiment: ExperimentConfig{
			Name:       v.GetString("experiment.name"),
			Games:      v.GetInt("experiment.games"),
			Threads:    v.GetIntSlice("experiment.threads"),
			Parallel:   v.GetInt("experiment.parallel"),
			Iterations: v.GetInt64("experiment.iterations"),
			OutputDir:  v.GetString("experiment.output_dir"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("field size must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.MoveTime < 0 {
		errs = append(errs, fmt.Errorf("move time must not be negative, got %v", c.MoveTime))
	}
	if c.MoveTime == 0 && c.Search.MaxIterations == 0 {
		errs = append(errs, errors.New("either move_time or search.max_iterations must be set"))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("invalid log level: %w", err))
	}
	if err := c.Search.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Experiment.Name != "threads" && c.Experiment.Name != "throughput" {
		errs = append(errs, fmt.Errorf("unknown experiment %q", c.Experiment.Name))
	}
	if c.Experiment.Games < 0 || c.Experiment.Parallel < 0 {
		errs = append(errs, errors.New("experiment games and parallel must not be negative"))
	}
	for _, threads := range c.Experiment.Threads {
		if threads < 1 {
			errs = append(errs, fmt.Errorf("experiment thread count must be positive, got %d", threads))
		}
	}
	return errors.Join(errs...)
}
