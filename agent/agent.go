package agent

import (
	"dots/field"
	"dots/heuristic"
	"dots/searcher"
	"time"
)

type Agent interface {
	// FindMove returns the move to play and the search result behind it. It
	// returns field.NoPos when the field is full.
	FindMove(f *field.Field, player field.Player) (field.Pos, searcher.Result)
}

// analyze runs one search with a fresh time budget. A zero moveTime relies on
// the searcher's iteration limit.
func analyze(m *searcher.MCTS, moveTime time.Duration, f *field.Field, player field.Player) searcher.Result {
	var stop func() bool
	if moveTime > 0 {
		stop = searcher.StopAfter(moveTime, nil)
	}
	return m.Analyze(f, player, 0, stop)
}

// fallback is played when the search has nothing to rank, which happens on an
// empty field before any wave exists.
func fallback(f *field.Field) field.Pos {
	return heuristic.Opening(f)
}
