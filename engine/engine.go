package engine

import (
	"dots/experiments/metrics"
	"dots/field"
)

const MaxMoves = 10000

type Engine interface {
	// Run plays a game until the field is full, a player has no move or
	// MaxMoves is reached. The winner is field.NoPlayer on a drawn score.
	Run() (winner field.Player, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
