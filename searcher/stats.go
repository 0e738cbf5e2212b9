package searcher

import (
	"runtime"
	"sync/atomic"
)

type outcome uint8

const (
	loss outcome = iota
	draw
	win
)

func (o outcome) flip() outcome { return win - o }

// stats is a visit/value cell. Writers take the sequence counter from even to
// odd with a compare-and-swap, so updates to one cell are serialized while
// readers never block and retry until they observe an unchanged even
// sequence.
type stats struct {
	seq    atomic.Uint32
	visits atomic.Int64
	wins   atomic.Int64
	draws  atomic.Int64
}

type snapshot struct {
	visits, wins, draws int64
}

// mean is the average outcome value where a draw counts drawWeight. An
// empty snapshot has mean 0.
func (s snapshot) mean(drawWeight float64) float64 {
	if s.visits <= 0 {
		return 0
	}
	return (float64(s.wins) + drawWeight*float64(s.draws)) / float64(s.visits)
}

func (s *stats) lock() {
	for {
		seq := s.seq.Load()
		if seq&1 == 0 && s.seq.CompareAndSwap(seq, seq+1) {
			return
		}
		runtime.Gosched()
	}
}

func (s *stats) unlock() {
	s.seq.Add(1)
}

func (s *stats) load() snapshot {
	for {
		before := s.seq.Load()
		if before&1 != 0 {
			runtime.Gosched()
			continue
		}
		snap := snapshot{
			visits: s.visits.Load(),
			wins:   s.wins.Load(),
			draws:  s.draws.Load(),
		}
		if s.seq.Load() == before {
			return snap
		}
	}
}

// addVirtualLoss records n provisional lost visits.
func (s *stats) addVirtualLoss(n int64) {
	if n == 0 {
		return
	}
	s.lock()
	s.visits.Add(n)
	s.unlock()
}

// record removes virtualLoss provisional visits and adds one real outcome.
func (s *stats) record(o outcome, virtualLoss int64) {
	s.lock()
	s.visits.Add(1 - virtualLoss)
	switch o {
	case win:
		s.wins.Add(1)
	case draw:
		s.draws.Add(1)
	}
	s.unlock()
}

// drain returns the cell contents and clears it in one step.
func (s *stats) drain() snapshot {
	s.lock()
	snap := snapshot{
		visits: s.visits.Swap(0),
		wins:   s.wins.Swap(0),
		draws:  s.draws.Swap(0),
	}
	s.unlock()
	return snap
}
