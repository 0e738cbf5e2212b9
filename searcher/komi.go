package searcher

import (
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

// komi is the score offset subtracted from the root player's margin before
// an outcome is classified. In dynamic mode it follows the root win rate so
// that lopsided positions still produce informative outcomes.
type komi struct {
	mode       KomiType
	value      atomic.Int64
	window     stats
	minIters   int64
	interval   int64
	step       int64
	red, green float64
	drawWeight float64
	drawMargin int64
}

func newKomi(cfg Config) *komi {
	k := &komi{
		mode:       cfg.Komi,
		minIters:   cfg.KomiMinIterations,
		interval:   cfg.KomiInterval,
		step:       cfg.KomiStep,
		red:        cfg.Red,
		green:      cfg.Green,
		drawWeight: cfg.DrawWeight,
		drawMargin: cfg.DrawMargin,
	}
	k.value.Store(cfg.KomiSeed)
	return k
}

func (k *komi) get() int64 { return k.value.Load() }

// classify maps the root player's score margin to an outcome for that player.
func (k *komi) classify(score int) outcome {
	adjusted := int64(score) - k.value.Load()
	switch {
	case adjusted > k.drawMargin:
		return win
	case adjusted < -k.drawMargin:
		return loss
	default:
		return draw
	}
}

// observe adds a root outcome to the current window.
func (k *komi) observe(o outcome) {
	if k.mode == KomiStatic {
		return
	}
	k.window.record(o, 0)
}

// maybeUpdate is called by the worker that completed iteration number
// iteration. Each iteration number is seen exactly once, so at most one
// worker recomputes at a cadence point.
func (k *komi) maybeUpdate(iteration int64) (old, updated int64, changed bool) {
	if k.mode == KomiStatic || iteration < k.minIters || iteration%k.interval != 0 {
		return 0, 0, false
	}
	w := k.window.drain()
	if w.visits == 0 {
		return 0, 0, false
	}
	rate := w.mean(k.drawWeight)
	var delta int64
	switch {
	case rate > k.green:
		delta = k.step
	case rate < k.red:
		delta = -k.step
	default:
		return 0, 0, false
	}
	updated = k.value.Add(delta)
	old = updated - delta
	log.Debug().
		Int64("iteration", iteration).
		Float64("winRate", rate).
		Int64("komi", updated).
		Msg("komi changed")
	return old, updated, true
}
