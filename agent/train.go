package agent

import (
	"dots/field"
	"dots/searcher"
	"math"
	"sync"
	"time"

	"golang.org/x/exp/rand"
)

type trainingAgent struct {
	mcts        *searcher.MCTS
	moveTime    time.Duration
	temperature float64
	mu          sync.Mutex
	rand        *rand.Rand
}

// NewTrainingAgent returns an agent for self-play that samples its move from
// the visit distribution, sharpened or flattened by temperature.
func NewTrainingAgent(mcts *searcher.MCTS, moveTime time.Duration, temperature float64, seed uint64) Agent {
	if temperature <= 0 {
		panic("temperature must be positive")
	}
	return &trainingAgent{
		mcts:        mcts,
		moveTime:    moveTime,
		temperature: temperature,
		rand:        rand.New(rand.NewSource(seed)),
	}
}

func (a *trainingAgent) FindMove(f *field.Field, player field.Player) (field.Pos, searcher.Result) {
	res := analyze(a.mcts, a.moveTime, f, player)
	if len(res.Moves) == 0 {
		return fallback(f), res
	}
	policy := adjustTemperature(res.Moves, a.temperature)
	a.mu.Lock()
	sampled := a.rand.Float64()
	a.mu.Unlock()
	return sample(policy, sampled), res
}

func adjustTemperature(moves []searcher.MoveWeight, temperature float64) []searcher.MoveWeight {
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make([]searcher.MoveWeight, len(moves))
	for i, mw := range moves {
		prob := math.Pow(mw.Weight, exponent)
		sum += prob
		adjusted[i] = searcher.MoveWeight{Pos: mw.Pos, Weight: prob}
	}
	for i := range adjusted {
		adjusted[i].Weight /= sum
	}
	return adjusted
}

func sample(policy []searcher.MoveWeight, sampled float64) field.Pos {
	cumulative := 0.0
	for _, mw := range policy {
		cumulative += mw.Weight
		if sampled < cumulative {
			return mw.Pos
		}
	}
	return policy[len(policy)-1].Pos // rounding
}
