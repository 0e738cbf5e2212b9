package searcher

import (
	"dots/field"
	"dots/wave"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Option func(mcts *MCTS)

// WithMetrics collects search metrics into each Result.
func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = NewMetricsCollector()
	}
}

func WithCollector(c MetricsCollector) Option {
	return func(m *MCTS) {
		if c != nil {
			m.metrics = c
		}
	}
}

// MCTS is a parallel UCT searcher. It holds no state between calls to
// Analyze, but calls must not overlap when metrics are collected.
type MCTS struct {
	cfg     Config
	metrics MetricsCollector
}

func NewMCTS(cfg Config, options ...Option) *MCTS {
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	m := &MCTS{
		cfg:     cfg,
		metrics: NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// search is the state of one Analyze call.
type search struct {
	cfg        Config
	tree       *tree
	root       nodeID
	field      *field.Field
	pruner     *wave.Pruner
	player     field.Player
	komi       *komi
	metrics    MetricsCollector
	shouldStop func() bool
	limit      int64
	started    atomic.Int64
	completed  atomic.Int64
	stopped    atomic.Bool
}

// reserve claims the next iteration. The stop predicate is polled once per
// claim; once it fires every worker winds down after its current iteration.
func (s *search) reserve() bool {
	if s.stopped.Load() {
		return false
	}
	if s.shouldStop() {
		s.stopped.Store(true)
		return false
	}
	for {
		n := s.started.Load()
		if s.limit > 0 && n >= s.limit {
			return false
		}
		if s.started.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// Analyze searches the position f with player to move and ranks the
// candidate moves by visits. confidence is the iteration count reported by an
// earlier search of the same position; with a bounded budget the new search
// runs that many more iterations. shouldStop is polled by every worker
// between iterations and must be safe for concurrent use. The field is not
// modified.
func (m *MCTS) Analyze(f *field.Field, player field.Player, confidence int, shouldStop func() bool) Result {
	s := m.newSearch(f, player, confidence, shouldStop)
	if len(s.pruner.Moves()) == 0 {
		log.Debug().Msg("no candidate moves")
		return Result{Komi: s.komi.get()}
	}
	if s.shouldStop == nil {
		if s.limit == 0 {
			panic("unbounded search needs a stop condition")
		}
		s.shouldStop = Never
	}
	m.run(s)

	res := s.result()
	res.Metrics = m.metrics.Complete()
	log.Debug().
		Int("iterations", res.Confidence).
		Int64("komi", res.Komi).
		Int("best", int(res.Best())).
		Float64("value", res.Value).
		Msg("search completed")
	return res
}

// newSearch builds the candidate set and expands the root.
func (m *MCTS) newSearch(f *field.Field, player field.Player, confidence int, shouldStop func() bool) *search {
	limit := m.cfg.MaxIterations
	if limit > 0 && confidence > 0 {
		limit += int64(confidence)
	}
	pruner := wave.New(f, m.cfg.Radius)
	pruner.Compact(f)

	s := &search{
		cfg:        m.cfg,
		tree:       newTree(),
		field:      f,
		pruner:     pruner,
		player:     player,
		komi:       newKomi(m.cfg),
		metrics:    m.metrics,
		shouldStop: shouldStop,
		limit:      limit,
	}
	s.root, _ = s.tree.reserve(1)
	s.tree.expand(s.tree.get(s.root), pruner.Moves())
	return s
}

func (m *MCTS) run(s *search) {
	log.Debug().
		Int("threads", m.cfg.Threads).
		Int("candidates", len(s.pruner.Moves())).
		Int64("limit", s.limit).
		Stringer("player", s.player).
		Msg("search started")

	seed := m.cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	m.metrics.Start(m.cfg.Threads)
	var g errgroup.Group
	for t := 0; t < m.cfg.Threads; t++ {
		w := newWorker(s, seed+uint64(t)*0x9e3779b97f4a7c15)
		g.Go(func() error {
			w.run()
			return nil
		})
	}
	_ = g.Wait()
	m.metrics.SetNodes(s.tree.size())
}
