package searcher

import (
	"dots/field"
	"sync"
	"sync/atomic"
)

type nodeID int32

const noNode nodeID = -1

const (
	chunkBits = 12
	chunkSize = 1 << chunkBits
	maxChunks = 1 << 14
)

type edge struct {
	pos   field.Pos
	child nodeID
}

// node statistics are those of the edge leading into it, seen by the player
// who made that move. edges are written once, before expanded is set.
type node struct {
	stats
	mu       sync.Mutex
	edges    []edge
	expanded atomic.Bool
}

func (n *node) children() []edge {
	if !n.expanded.Load() {
		return nil
	}
	return n.edges
}

type chunk [chunkSize]node

// tree is an append-only node arena. Nodes live in fixed chunks that never
// move, so a *node stays valid while other workers allocate.
type tree struct {
	chunks [maxChunks]atomic.Pointer[chunk]
	next   atomic.Int64
	grow   sync.Mutex
}

func newTree() *tree {
	return &tree{}
}

func (t *tree) get(id nodeID) *node {
	return &t.chunks[id>>chunkBits].Load()[id&(chunkSize-1)]
}

func (t *tree) size() int64 {
	return min(t.next.Load(), maxChunks*chunkSize)
}

// reserve allocates k consecutive nodes and returns the first id. It reports
// false once the arena is exhausted.
func (t *tree) reserve(k int) (nodeID, bool) {
	end := t.next.Add(int64(k))
	start := end - int64(k)
	if end > maxChunks*chunkSize {
		return noNode, false
	}
	for c := start >> chunkBits; c <= (end-1)>>chunkBits; c++ {
		if t.chunks[c].Load() != nil {
			continue
		}
		t.grow.Lock()
		if t.chunks[c].Load() == nil {
			t.chunks[c].Store(new(chunk))
		}
		t.grow.Unlock()
	}
	return nodeID(start), true
}

// expand attaches one child per candidate to n. It gives up without blocking
// when another worker holds the node, and returns whether n has children
// afterwards.
func (t *tree) expand(n *node, candidates []field.Pos) bool {
	if n.expanded.Load() {
		return true
	}
	if !n.mu.TryLock() {
		return false
	}
	defer n.mu.Unlock()
	if n.expanded.Load() {
		return true
	}
	var edges []edge
	if len(candidates) > 0 {
		first, ok := t.reserve(len(candidates))
		if !ok {
			return false
		}
		edges = make([]edge, len(candidates))
		for i, pos := range candidates {
			edges[i] = edge{pos: pos, child: first + nodeID(i)}
		}
	}
	n.edges = edges
	n.expanded.Store(true)
	return true
}
