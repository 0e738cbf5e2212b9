package searcher

import (
	"dots/field"
	"dots/wave"
	"fmt"

	"golang.org/x/exp/rand"
)

// worker owns the scratch state of one search goroutine. The field and
// pruner are overwritten from the root position at the start of every
// iteration.
type worker struct {
	s          *search
	rand       *rand.Rand
	field      field.Field
	pruner     wave.Pruner
	path       []nodeID
	candidates []field.Pos
}

func newWorker(s *search, seed uint64) *worker {
	return &worker{
		s:    s,
		rand: rand.New(rand.NewSource(seed)),
	}
}

func (w *worker) run() {
	for w.s.reserve() {
		w.iterate()
	}
}

func (w *worker) iterate() {
	s := w.s
	w.field.CopyFrom(s.field)
	w.pruner.CopyFrom(s.pruner)

	full := w.rollout(w.selectThenExpand())
	w.backup(s.komi.classify(w.field.Score(s.player)))

	done := s.completed.Add(1)
	s.metrics.AddEpisode()
	if full {
		s.metrics.AddFullPlayout()
	}
	if _, _, changed := s.komi.maybeUpdate(done); changed {
		s.metrics.AddKomiChange()
	}
}

// selectThenExpand descends from the root, applying each chosen move to the
// worker's field. A leaf with enough visits gets its children created and the
// descent continues one step into them. It returns the player to move at the
// node where the descent stopped.
func (w *worker) selectThenExpand() field.Player {
	s := w.s
	id, player := s.root, s.player
	n := s.tree.get(id)
	w.path = append(w.path[:0], id)
	for {
		edges := n.children()
		fresh := false
		if !n.expanded.Load() && n.load().visits-s.cfg.VirtualLoss >= s.cfg.ExpansionThreshold {
			if s.tree.expand(n, w.expansionCandidates()) {
				edges, fresh = n.children(), true
			}
		}
		i, ok := s.tree.selectEdge(s.cfg, n, edges)
		if !ok {
			return player
		}
		e := edges[i]
		child := s.tree.get(e.child)
		child.addVirtualLoss(s.cfg.VirtualLoss)
		if !w.field.Put(e.pos, player) {
			x, y := w.field.ToXY(e.pos)
			panic(fmt.Sprintf("search tree offered an unputtable move (%d, %d) for %v", x, y, player))
		}
		w.pruner.Update(&w.field)
		id, n, player = e.child, child, player.Next()
		w.path = append(w.path, id)
		if fresh {
			return player
		}
	}
}

func (w *worker) expansionCandidates() []field.Pos {
	w.candidates = w.candidates[:0]
	for _, pos := range w.pruner.Moves() {
		if w.field.IsPuttable(pos) {
			w.candidates = append(w.candidates, pos)
		}
	}
	return w.candidates
}

// rollout plays random candidate moves until the depth limit or until no
// candidate is left. It reports whether the playout ran out of candidates.
func (w *worker) rollout(player field.Player) bool {
	depth := w.s.cfg.RolloutDepth
	c := w.expansionCandidates()
	defer func() { w.candidates = c[:0] }()
	for played := 0; depth == 0 || played < depth; {
		if len(c) == 0 {
			return true
		}
		i := w.rand.Intn(len(c))
		pos := c[i]
		last := len(c) - 1
		c[i] = c[last]
		c = c[:last]
		if !w.field.IsPuttable(pos) {
			continue
		}
		if !w.field.Put(pos, player) {
			panic(fmt.Sprintf("rollout picked an unputtable move %d", pos))
		}
		c = append(c, w.pruner.Update(&w.field)...)
		player = player.Next()
		played++
	}
	return false
}

// backup records o, the outcome for the root player, along the current path.
// Each node stores the result of the player who moved into it and gets its
// virtual loss back.
func (w *worker) backup(o outcome) {
	s := w.s
	for i := len(w.path) - 1; i >= 1; i-- {
		res := o
		if i%2 == 0 {
			res = o.flip()
		}
		s.tree.get(w.path[i]).record(res, s.cfg.VirtualLoss)
	}
	s.tree.get(s.root).record(o, 0)
	s.komi.observe(o)
}
