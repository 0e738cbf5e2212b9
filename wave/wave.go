// Package wave keeps the set of candidate moves near existing dots. A cell is
// a candidate when it is puttable and lies within a Manhattan radius of some
// placed dot, reachable through puttable cells.
package wave

import (
	"dots/field"
)

// NoSource marks a cell that no wave has reached.
const NoSource = -1

// Pruner tracks candidate moves incrementally as dots are placed. For each
// cell it remembers the index of the move whose wave last reached it.
type Pruner struct {
	radius int
	marks  []int
	moves  []field.Pos
	cursor int
	queue  []field.Pos
}

// New builds a pruner for every dot already on f.
func New(f *field.Field, radius int) *Pruner {
	if radius < 0 {
		panic("wave radius must not be negative")
	}
	p := &Pruner{
		radius: radius,
		marks:  make([]int, f.Len()),
	}
	for i := range p.marks {
		p.marks[i] = NoSource
	}
	p.UpdateFrom(f, 0)
	return p
}

// Moves returns the candidate list in discovery order. It may contain cells
// that have since become unputtable until the next Compact. The slice must
// not be modified.
func (p *Pruner) Moves() []field.Pos { return p.moves }

// Contains reports whether pos has been reached by any wave.
func (p *Pruner) Contains(pos field.Pos) bool { return p.marks[pos] != NoSource }

// Update floods from every move placed on f since the last update and returns
// the newly added candidates.
func (p *Pruner) Update(f *field.Field) []field.Pos {
	return p.UpdateFrom(f, p.cursor)
}

// UpdateFrom floods from the moves of f starting at index from and returns
// the candidates that were not present before. The returned slice aliases the
// pruner's storage and is valid until the next Compact.
func (p *Pruner) UpdateFrom(f *field.Field, from int) []field.Pos {
	moves := f.Moves()
	start := len(p.moves)
	for i := max(from, 0); i < len(moves); i++ {
		p.flood(f, i, moves[i].Pos)
	}
	if len(moves) > p.cursor {
		p.cursor = len(moves)
	}
	return p.moves[start:len(p.moves):len(p.moves)]
}

func (p *Pruner) flood(f *field.Field, source int, origin field.Pos) {
	if p.radius == 0 {
		return
	}
	p.queue = append(p.queue[:0], origin)
	for head := 0; head < len(p.queue); head++ {
		for _, n := range f.Neighbors(p.queue[head]) {
			if p.marks[n] == source || !f.IsPuttable(n) || f.Manhattan(origin, n) > p.radius {
				continue
			}
			if p.marks[n] == NoSource {
				p.moves = append(p.moves, n)
			}
			p.marks[n] = source
			p.queue = append(p.queue, n)
		}
	}
}

// Compact drops candidates that are no longer puttable on f.
func (p *Pruner) Compact(f *field.Field) {
	kept := p.moves[:0]
	for _, pos := range p.moves {
		if f.IsPuttable(pos) {
			kept = append(kept, pos)
		} else {
			p.marks[pos] = NoSource
		}
	}
	p.moves = kept
}

// CopyFrom overwrites p with src, reusing p's buffers.
func (p *Pruner) CopyFrom(src *Pruner) {
	p.radius = src.radius
	p.cursor = src.cursor
	p.marks = append(p.marks[:0], src.marks...)
	p.moves = append(p.moves[:0], src.moves...)
}
