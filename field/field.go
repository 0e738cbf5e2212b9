package field

import (
	"fmt"
	"slices"
	"strings"
)

// Pos is an index into the padded cell array of a Field. The padding row and
// column around the playable area are never puttable, so neighbour lookups
// never need bounds checks.
type Pos int

// NoPos is returned where no position applies.
const NoPos Pos = -1

// Move records a dot placed on the field.
type Move struct {
	Pos    Pos
	Player Player
}

type cell struct {
	put   Player // whose dot occupies the cell
	owner Player // who controls the cell; differs from put once captured
	base  Player // empty cell inside a ring this player closed around nothing
	bad   bool   // border padding
}

func (c cell) puttable() bool {
	return !c.bad && c.put == NoPlayer && c.owner == NoPlayer
}

type change struct {
	pos Pos
	old cell
}

type checkpoint struct {
	changes  int
	captured [3]int
	hash     uint64
	free     int
}

// Field is a rectangular board of dots. Placing a dot that closes a ring
// around live enemy dots captures the enclosed area; placing a dot inside an
// enemy ring that does not capture anything itself gets it captured instead.
type Field struct {
	width, height, stride int

	cells    []cell
	moves    []Move
	captured [3]int // live enemy dots captured, indexed by capturing Player
	free     int    // number of puttable cells
	hash     uint64
	keys     *zobrist

	changes []change
	history []checkpoint

	visited []uint32
	stamp   uint32
	queue   []Pos
	region  []Pos
}

// New returns an empty field of the given size.
func New(width, height int) *Field {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("invalid field size %dx%d", width, height))
	}
	stride := width + 2
	n := stride * (height + 2)
	f := &Field{
		width:   width,
		height:  height,
		stride:  stride,
		cells:   make([]cell, n),
		free:    width * height,
		keys:    zobristFor(n),
		visited: make([]uint32, n),
	}
	for pos := range f.cells {
		x, y := pos%stride, pos/stride
		if x == 0 || y == 0 || x == stride-1 || y == height+1 {
			f.cells[pos].bad = true
		}
	}
	return f
}

func (f *Field) Width() int  { return f.width }
func (f *Field) Height() int { return f.height }

// Len is the size of the padded cell array. Every valid Pos is below Len.
func (f *Field) Len() int { return len(f.cells) }

// ToPos converts zero-based board coordinates into a Pos.
func (f *Field) ToPos(x, y int) Pos {
	return Pos((y+1)*f.stride + x + 1)
}

// ToXY is the inverse of ToPos.
func (f *Field) ToXY(pos Pos) (int, int) {
	return int(pos)%f.stride - 1, int(pos)/f.stride - 1
}

// InBounds reports whether (x, y) lies on the playable area.
func (f *Field) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < f.width && y < f.height
}

// Neighbors returns the four orthogonal neighbours of pos.
func (f *Field) Neighbors(pos Pos) [4]Pos {
	s := Pos(f.stride)
	return [4]Pos{pos - 1, pos + 1, pos - s, pos + s}
}

// Manhattan returns the L1 distance between two positions.
func (f *Field) Manhattan(a, b Pos) int {
	ax, ay := f.ToXY(a)
	bx, by := f.ToXY(b)
	return abs(ax-bx) + abs(ay-by)
}

// IsPuttable reports whether a dot can be placed at pos.
func (f *Field) IsPuttable(pos Pos) bool {
	return pos >= 0 && int(pos) < len(f.cells) && f.cells[pos].puttable()
}

// PutPlayer returns whose dot is at pos, or NoPlayer.
func (f *Field) PutPlayer(pos Pos) Player { return f.cells[pos].put }

// Owner returns who controls pos, or NoPlayer.
func (f *Field) Owner(pos Pos) Player { return f.cells[pos].owner }

// IsCaptured reports whether the dot at pos belongs to an enemy area.
func (f *Field) IsCaptured(pos Pos) bool {
	c := f.cells[pos]
	return c.put != NoPlayer && c.owner != c.put
}

// Captured returns how many enemy dots p holds.
func (f *Field) Captured(p Player) int { return f.captured[p] }

// Score is the capture balance from p's point of view.
func (f *Field) Score(p Player) int {
	return f.captured[p] - f.captured[p.Next()]
}

// Moves returns the placement history. The slice must not be modified.
func (f *Field) Moves() []Move { return f.moves }

// LastMove returns the most recent placement and false if there is none.
func (f *Field) LastMove() (Move, bool) {
	if len(f.moves) == 0 {
		return Move{Pos: NoPos}, false
	}
	return f.moves[len(f.moves)-1], true
}

// IsFull reports whether no puttable cell remains.
func (f *Field) IsFull() bool { return f.free == 0 }

// FreeCells returns the number of puttable cells.
func (f *Field) FreeCells() int { return f.free }

// Hash is a zobrist hash of cell contents, independent of move order.
func (f *Field) Hash() uint64 { return f.hash }

// Put places a dot for player at pos and resolves captures. It returns false,
// leaving the field untouched, when pos is not puttable.
func (f *Field) Put(pos Pos, player Player) bool {
	if player == NoPlayer || !f.IsPuttable(pos) {
		return false
	}
	inBase := f.cells[pos].base == player.Next()
	f.history = append(f.history, checkpoint{
		changes:  len(f.changes),
		captured: f.captured,
		hash:     f.hash,
		free:     f.free,
	})
	f.set(pos, cell{put: player, owner: player})
	f.moves = append(f.moves, Move{Pos: pos, Player: player})

	if !f.enclose(pos, player) && inBase {
		f.capture(pos, player.Next())
	}
	return true
}

// Undo reverts the last Put. It returns false when there is nothing to undo.
func (f *Field) Undo() bool {
	if len(f.history) == 0 {
		return false
	}
	cp := f.history[len(f.history)-1]
	f.history = f.history[:len(f.history)-1]
	for i := len(f.changes) - 1; i >= cp.changes; i-- {
		f.cells[f.changes[i].pos] = f.changes[i].old
	}
	f.changes = f.changes[:cp.changes]
	f.captured = cp.captured
	f.hash = cp.hash
	f.free = cp.free
	f.moves = f.moves[:len(f.moves)-1]
	return true
}

// PuttableCells lists every puttable position in scan order.
func (f *Field) PuttableCells() []Pos {
	out := make([]Pos, 0, f.free)
	for pos, c := range f.cells {
		if c.puttable() {
			out = append(out, Pos(pos))
		}
	}
	return out
}

// Clone returns an independent deep copy.
func (f *Field) Clone() *Field {
	c := &Field{}
	c.CopyFrom(f)
	return c
}

// CopyFrom overwrites f with src, reusing f's buffers where possible.
func (f *Field) CopyFrom(src *Field) {
	f.width, f.height, f.stride = src.width, src.height, src.stride
	f.cells = append(f.cells[:0], src.cells...)
	f.moves = append(f.moves[:0], src.moves...)
	f.changes = append(f.changes[:0], src.changes...)
	f.history = append(f.history[:0], src.history...)
	f.captured = src.captured
	f.free = src.free
	f.hash = src.hash
	f.keys = src.keys
	if len(f.visited) != len(src.cells) {
		f.visited = make([]uint32, len(src.cells))
		f.stamp = 0
	}
}

func (f *Field) set(pos Pos, next cell) {
	prev := f.cells[pos]
	if prev == next {
		return
	}
	f.changes = append(f.changes, change{pos: pos, old: prev})
	if prev.puttable() {
		f.free--
	}
	if next.puttable() {
		f.free++
	}
	f.hash ^= f.keys.key(pos, prev) ^ f.keys.key(pos, next)
	f.cells[pos] = next
}

// ring lists the eight cells around pos clockwise from north. Consecutive
// entries, including the last and the first, are orthogonal neighbours.
func (f *Field) ring(pos Pos) [8]Pos {
	s := Pos(f.stride)
	return [8]Pos{pos - s, pos - s + 1, pos + 1, pos + s + 1, pos + s, pos + s - 1, pos - 1, pos - s - 1}
}

// enclose resolves the areas sealed off by player's dot at pos. Cells around
// pos that player does not own form arcs of the ring; a new area can only be
// cut off when there are at least two of them. Each arc is flooded once from
// one of its orthogonal cells, and arcs touching the border are skipped.
func (f *Field) enclose(pos Pos, player Player) bool {
	ring := f.ring(pos)
	own := func(i int) bool {
		c := f.cells[ring[i&7]]
		return !c.bad && c.owner == player
	}
	start, walls := -1, 0
	for i := 0; i < 8; i++ {
		if own(i) && !own(i+7) {
			start = i
			walls++
		}
	}
	if walls < 2 {
		return false
	}

	captured := false
	from, border := NoPos, false
	for j := 1; j <= 8; j++ {
		i := (start + j) & 7
		if !own(i) {
			c := f.cells[ring[i]]
			border = border || c.bad
			if i%2 == 0 && from == NoPos && !c.bad {
				from = ring[i]
			}
			continue
		}
		if from != NoPos && !border && f.cells[from].owner != player && f.capture(from, player) {
			captured = true
		}
		from, border = NoPos, false
	}
	return captured
}

// capture floods the area around start that capturer does not own. If the
// area is sealed off from the border and holds at least one live enemy dot,
// capturer takes all of it. A sealed area without one becomes a base of
// capturer, where enemy dots are captured on placement.
func (f *Field) capture(start Pos, capturer Player) bool {
	victim := capturer.Next()
	f.nextStamp()
	f.region = f.region[:0]
	f.queue = append(f.queue[:0], start)
	f.visited[start] = f.stamp
	live := false
	for head := 0; head < len(f.queue); head++ {
		pos := f.queue[head]
		f.region = append(f.region, pos)
		c := f.cells[pos]
		if c.put == victim && c.owner == victim {
			live = true
		}
		for _, n := range f.Neighbors(pos) {
			if f.visited[n] == f.stamp {
				continue
			}
			nc := f.cells[n]
			if nc.bad {
				return false
			}
			if nc.owner == capturer {
				continue
			}
			f.visited[n] = f.stamp
			f.queue = append(f.queue, n)
		}
	}
	if !live {
		for _, pos := range f.region {
			if c := f.cells[pos]; c.puttable() {
				c.base = capturer
				f.set(pos, c)
			}
		}
		return false
	}
	for _, pos := range f.region {
		c := f.cells[pos]
		switch {
		case c.put == victim && c.owner == victim:
			f.captured[capturer]++
		case c.put == capturer && c.owner == victim:
			f.captured[victim]--
		}
		c.owner, c.base = capturer, NoPlayer
		f.set(pos, c)
	}
	return true
}

func (f *Field) nextStamp() {
	f.stamp++
	if f.stamp == 0 {
		clear(f.visited)
		f.stamp = 1
	}
}

// String renders the field with 'X' for red, 'O' for black, lowercase for
// captured dots and '+'/'-' for empty cells owned by red/black.
func (f *Field) String() string {
	var sb strings.Builder
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			c := f.cells[f.ToPos(x, y)]
			sb.WriteByte(cellRune(c))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func cellRune(c cell) byte {
	switch {
	case c.put == Red && c.owner == Red:
		return 'X'
	case c.put == Black && c.owner == Black:
		return 'O'
	case c.put == Red:
		return 'x'
	case c.put == Black:
		return 'o'
	case c.owner == Red:
		return '+'
	case c.owner == Black:
		return '-'
	default:
		return '.'
	}
}

// FromString builds a field from rows of '.', 'X' (red) and 'O' (black).
// Dots are placed in reading order, so captures resolve as they would when
// played in that order.
func FromString(rows ...string) (*Field, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty field description")
	}
	width := len(rows[0])
	for i, r := range rows {
		if len(r) != width {
			return nil, fmt.Errorf("row %d has width %d, want %d", i, len(r), width)
		}
	}
	f := New(width, len(rows))
	for y, r := range rows {
		for x, ch := range []byte(r) {
			var p Player
			switch ch {
			case '.':
				continue
			case 'X':
				p = Red
			case 'O':
				p = Black
			default:
				return nil, fmt.Errorf("unexpected %q at (%d, %d)", ch, x, y)
			}
			f.Put(f.ToPos(x, y), p)
		}
	}
	return f, nil
}

// Equal reports whether two fields hold the same cells and history.
func (f *Field) Equal(o *Field) bool {
	return f.width == o.width && f.height == o.height &&
		f.captured == o.captured &&
		slices.Equal(f.cells, o.cells) &&
		slices.Equal(f.moves, o.moves)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
