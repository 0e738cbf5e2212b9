package agent

import (
	"dots/field"
	"dots/searcher"
	"time"
)

type evaluationAgent struct {
	mcts     *searcher.MCTS
	moveTime time.Duration
}

// NewEvaluationAgent returns an agent that always plays the most visited
// move.
func NewEvaluationAgent(mcts *searcher.MCTS, moveTime time.Duration) Agent {
	return evaluationAgent{mcts: mcts, moveTime: moveTime}
}

func (a evaluationAgent) FindMove(f *field.Field, player field.Player) (field.Pos, searcher.Result) {
	res := analyze(a.mcts, a.moveTime, f, player)
	if len(res.Moves) == 0 {
		return fallback(f), res
	}
	return res.Best(), res
}
