package metrics

import (
	"dots/searcher"
	"time"
)

type SearchMetric = searcher.SearchMetrics

// AgentConfig describes one searcher taking part in an experiment.
type AgentConfig struct {
	ID         int           `yaml:"id"`
	Threads    int           `yaml:"threads"`
	MoveTime   time.Duration `yaml:"move_time"`
	Iterations int64         `yaml:"iterations"`
	Radius     int           `yaml:"radius"`
	UCB        string        `yaml:"ucb"`
	Komi       string        `yaml:"komi"`
}

type MoveMetric struct {
	Step       int
	Player     string
	Pos        int
	Confidence int
	Value      float64
	Komi       int64
	SearchMetric
}

type GameMetric struct {
	StartingPlayer string
	Winner         string // "none" on a drawn score
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	RedScore       int
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID playing red
	Agent2 int // AgentConfig.ID playing black
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}
