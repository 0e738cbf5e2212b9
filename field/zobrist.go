package field

import (
	"sync"

	"lukechampine.com/frand"
)

const bignum = 1<<63 - 2

// A cell is one of nine (put, owner) combinations; the empty one hashes to 0.
type zobrist struct {
	keys [][9]uint64
}

var (
	zobristMu    sync.Mutex
	zobristCache = map[int]*zobrist{}
)

// zobristFor returns the shared key table for fields with n padded cells, so
// that equal positions on equally sized fields hash equally.
func zobristFor(n int) *zobrist {
	zobristMu.Lock()
	defer zobristMu.Unlock()
	if z, ok := zobristCache[n]; ok {
		return z
	}
	z := &zobrist{keys: make([][9]uint64, n)}
	for i := range z.keys {
		for j := 1; j < 9; j++ {
			z.keys[i][j] = frand.Uint64n(bignum) + 1
		}
	}
	zobristCache[n] = z
	return z
}

func (z *zobrist) key(pos Pos, c cell) uint64 {
	if c.bad {
		return 0
	}
	return z.keys[pos][int(c.put)*3+int(c.owner)]
}
