package engine

import (
	"dots/agent"
	"dots/experiments/metrics"
	"dots/field"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

type localEngine struct {
	field    *field.Field
	agents   [2]agent.Agent
	starting field.Player
	maxMoves int
}

// LocalEngine plays red against black on a fresh field. agents[0] plays red.
func LocalEngine(width, height int, starting field.Player, agents []agent.Agent) Engine {
	if len(agents) != 2 {
		panic(fmt.Sprintf("need exactly two agents, got %d", len(agents)))
	}
	if starting != field.Red && starting != field.Black {
		panic("starting player must be red or black")
	}
	return &localEngine{
		field:    field.New(width, height),
		agents:   [2]agent.Agent{agents[0], agents[1]},
		starting: starting,
		maxMoves: MaxMoves,
	}
}

func agentIndex(p field.Player) int {
	if p == field.Red {
		return 0
	}
	return 1
}

func (e *localEngine) Run() (field.Player, metrics.GameMetric, []metrics.MoveMetric) {
	log.Info().Msgf("%v is starting", e.starting)
	start := time.Now()

	var moveMetrics []metrics.MoveMetric
	player := e.starting
	step := 1
	for ; !e.field.IsFull() && step <= e.maxMoves; step++ {
		pos, res := e.agents[agentIndex(player)].FindMove(e.field, player)
		if pos == field.NoPos {
			log.Info().Msgf("%v has no move", player)
			break
		}
		if !e.field.Put(pos, player) {
			panic(fmt.Sprintf("%v chose an unputtable move %d", player, pos))
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       player.String(),
			Pos:          int(pos),
			Confidence:   res.Confidence,
			Value:        res.Value,
			Komi:         res.Komi,
			SearchMetric: res.Metrics,
		})
		log.Debug().Msgf("step %d: %v played %d (confidence %d)", step, player, pos, res.Confidence)
		player = player.Next()
	}

	winner := field.NoPlayer
	switch score := e.field.Score(field.Red); {
	case score > 0:
		winner = field.Red
	case score < 0:
		winner = field.Black
	}
	end := time.Now()
	game := metrics.GameMetric{
		StartingPlayer: e.starting.String(),
		Winner:         winner.String(),
		StartTime:      start,
		EndTime:        end,
		Duration:       end.Sub(start),
		TotalMoves:     len(moveMetrics),
		RedScore:       e.field.Score(field.Red),
	}
	log.Info().Msgf("game over after %d moves, winner: %v", game.TotalMoves, winner)
	return winner, game, moveMetrics
}
