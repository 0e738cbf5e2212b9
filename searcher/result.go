package searcher

import (
	"dots/field"
	"sort"

	"github.com/samber/lo"
)

type MoveWeight struct {
	Pos    field.Pos
	Weight float64
}

// Result of one Analyze call. Moves are ranked by visits, best first, and
// their weights sum to 1. Confidence is the number of iterations performed
// and Value the mean outcome of the best move for the searching player.
type Result struct {
	Moves      []MoveWeight
	Confidence int
	Value      float64
	Komi       int64
	Metrics    SearchMetrics
}

// Best returns the top ranked move, or field.NoPos.
func (r Result) Best() field.Pos {
	if len(r.Moves) == 0 {
		return field.NoPos
	}
	return r.Moves[0].Pos
}

type rankedEdge struct {
	pos  field.Pos
	snap snapshot
}

func (s *search) result() Result {
	res := Result{
		Confidence: int(s.completed.Load()),
		Komi:       s.komi.get(),
	}
	edges := lo.Map(s.tree.get(s.root).children(), func(e edge, _ int) rankedEdge {
		return rankedEdge{pos: e.pos, snap: s.tree.get(e.child).load()}
	})
	edges = lo.Filter(edges, func(e rankedEdge, _ int) bool {
		return e.snap.visits > 0
	})
	if len(edges) == 0 {
		return res
	}
	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].snap.visits > edges[j].snap.visits
	})
	total := lo.SumBy(edges, func(e rankedEdge) int64 { return e.snap.visits })
	res.Moves = lo.Map(edges, func(e rankedEdge, _ int) MoveWeight {
		return MoveWeight{Pos: e.pos, Weight: float64(e.snap.visits) / float64(total)}
	})
	res.Value = edges[0].snap.mean(s.cfg.DrawWeight)
	return res
}
