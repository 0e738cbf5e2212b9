package searcher

import (
	"errors"
	"fmt"
)

type UCBType int

const (
	UCB1 UCBType = iota
	UCB1Tuned
)

func (u UCBType) String() string {
	switch u {
	case UCB1:
		return "ucb1"
	case UCB1Tuned:
		return "ucb1-tuned"
	default:
		return fmt.Sprintf("UCBType(%d)", int(u))
	}
}

// ParseUCBType is the inverse of UCBType.String.
func ParseUCBType(s string) (UCBType, error) {
	switch s {
	case "ucb1":
		return UCB1, nil
	case "ucb1-tuned", "ucb1tuned":
		return UCB1Tuned, nil
	default:
		return 0, fmt.Errorf("unknown ucb type %q", s)
	}
}

type KomiType int

const (
	KomiStatic KomiType = iota
	KomiDynamic
)

func (k KomiType) String() string {
	switch k {
	case KomiStatic:
		return "static"
	case KomiDynamic:
		return "dynamic"
	default:
		return fmt.Sprintf("KomiType(%d)", int(k))
	}
}

// ParseKomiType is the inverse of KomiType.String.
func ParseKomiType(s string) (KomiType, error) {
	switch s {
	case "static", "none", "disabled":
		return KomiStatic, nil
	case "dynamic":
		return KomiDynamic, nil
	default:
		return 0, fmt.Errorf("unknown komi type %q", s)
	}
}

// Config holds every search parameter. It is copied into the searcher and
// never mutated afterwards.
type Config struct {
	Threads int
	// Radius bounds candidate moves to this Manhattan distance from a dot.
	Radius int
	UCB    UCBType
	// DrawWeight is the value of a draw; a win is 1 and a loss 0.
	DrawWeight  float64
	Exploration float64
	// ExpansionThreshold is the number of visits a leaf needs before its
	// children are created.
	ExpansionThreshold int64
	// RolloutDepth caps random playout length; 0 plays until no candidate
	// remains.
	RolloutDepth int

	Komi     KomiType
	KomiSeed int64
	// Red and Green bound the root win rate band inside which komi is left
	// alone.
	Red, Green float64
	// DrawMargin is the largest komi adjusted score still counted as a draw.
	DrawMargin        int64
	KomiMinIterations int64
	KomiInterval      int64
	KomiStep          int64

	// VirtualLoss is the number of provisional lost visits a worker puts on
	// a child while its playout is in flight.
	VirtualLoss int64
	// MaxIterations bounds a search; 0 means run until stopped.
	MaxIterations int64
	// Seed for the worker generators; 0 seeds from the clock.
	Seed uint64
}

func DefaultConfig() Config {
	return Config{
		Threads:            1,
		Radius:             3,
		UCB:                UCB1Tuned,
		DrawWeight:         0.4,
		Exploration:        1.0,
		ExpansionThreshold: 2,
		RolloutDepth:       0,
		Komi:               KomiDynamic,
		KomiSeed:           0,
		Red:                0.45,
		Green:              0.5,
		DrawMargin:         0,
		KomiMinIterations:  3000,
		KomiInterval:       1000,
		KomiStep:           1,
		VirtualLoss:        1,
		MaxIterations:      0,
		Seed:               0,
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.Threads < 1 {
		errs = append(errs, fmt.Errorf("threads must be positive, got %d", c.Threads))
	}
	if c.Radius < 0 {
		errs = append(errs, fmt.Errorf("radius must not be negative, got %d", c.Radius))
	}
	if c.UCB != UCB1 && c.UCB != UCB1Tuned {
		errs = append(errs, fmt.Errorf("unknown ucb type %d", int(c.UCB)))
	}
	if c.Komi != KomiStatic && c.Komi != KomiDynamic {
		errs = append(errs, fmt.Errorf("unknown komi type %d", int(c.Komi)))
	}
	if c.DrawWeight < 0 || c.DrawWeight > 1 {
		errs = append(errs, fmt.Errorf("draw weight must be within [0, 1], got %v", c.DrawWeight))
	}
	if c.Exploration < 0 {
		errs = append(errs, fmt.Errorf("exploration must not be negative, got %v", c.Exploration))
	}
	if c.ExpansionThreshold < 1 {
		errs = append(errs, fmt.Errorf("expansion threshold must be positive, got %d", c.ExpansionThreshold))
	}
	if c.RolloutDepth < 0 {
		errs = append(errs, fmt.Errorf("rollout depth must not be negative, got %d", c.RolloutDepth))
	}
	if c.Red < 0 || c.Green > 1 || c.Red > c.Green {
		errs = append(errs, fmt.Errorf("komi thresholds must satisfy 0 <= red <= green <= 1, got %v and %v", c.Red, c.Green))
	}
	if c.DrawMargin < 0 {
		errs = append(errs, fmt.Errorf("draw margin must not be negative, got %d", c.DrawMargin))
	}
	if c.Komi == KomiDynamic && (c.KomiInterval < 1 || c.KomiStep < 1 || c.KomiMinIterations < 0) {
		errs = append(errs, errors.New("dynamic komi needs a positive interval and step"))
	}
	if c.VirtualLoss < 0 {
		errs = append(errs, fmt.Errorf("virtual loss must not be negative, got %d", c.VirtualLoss))
	}
	if c.MaxIterations < 0 {
		errs = append(errs, fmt.Errorf("max iterations must not be negative, got %d", c.MaxIterations))
	}
	return errors.Join(errs...)
}
