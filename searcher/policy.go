package searcher

import "math"

// policy scores the children of one parent. It is built once per selection
// step so the parent's logarithm is computed a single time.
type policy struct {
	kind       UCBType
	c          float64
	drawWeight float64
	lnN        float64
	twoLnN     float64
}

func newPolicy(cfg Config, parentVisits int64) policy {
	lnN := math.Log(float64(max(parentVisits, 1)))
	return policy{
		kind:       cfg.UCB,
		c:          cfg.Exploration,
		drawWeight: cfg.DrawWeight,
		lnN:        lnN,
		twoLnN:     2 * lnN,
	}
}

// evaluate returns the upper confidence bound of a child. Unvisited children
// score +Inf so each one is tried once before any is revisited.
func (p policy) evaluate(s snapshot) float64 {
	if s.visits <= 0 {
		return math.Inf(1)
	}
	n := float64(s.visits)
	mean := s.mean(p.drawWeight)
	switch p.kind {
	case UCB1Tuned:
		// outcome values are 1, drawWeight and 0
		sq := (float64(s.wins) + p.drawWeight*p.drawWeight*float64(s.draws)) / n
		variance := max(sq-mean*mean, 0) + math.Sqrt(p.twoLnN/(1+n))
		return mean + p.c*math.Sqrt(p.lnN/(1+n)*min(0.25, variance))
	default:
		return mean + p.c*math.Sqrt(p.lnN/(1+n))
	}
}

// selectEdge picks the highest scoring edge, earliest on ties.
func (t *tree) selectEdge(cfg Config, parent *node, edges []edge) (int, bool) {
	if len(edges) == 0 {
		return -1, false
	}
	p := newPolicy(cfg, parent.load().visits)
	best, bestScore := 0, math.Inf(-1)
	for i, e := range edges {
		score := p.evaluate(t.get(e.child).load())
		if score > bestScore {
			best, bestScore = i, score
			if math.IsInf(score, 1) {
				break
			}
		}
	}
	return best, true
}
