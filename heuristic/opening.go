// Package heuristic holds the cheap move choices used when no search result
// is available.
package heuristic

import (
	"dots/field"
	"math"
)

// Opening returns the puttable cell closest to the centre of f, preferring
// the earliest cell in scan order on ties, or field.NoPos on a full field.
func Opening(f *field.Field) field.Pos {
	cx, cy := (f.Width()-1)/2, (f.Height()-1)/2
	center := f.ToPos(cx, cy)
	if f.IsPuttable(center) {
		return center
	}
	best, bestDist := field.NoPos, math.MaxInt
	for _, pos := range f.PuttableCells() {
		if d := f.Manhattan(center, pos); d < bestDist {
			best, bestDist = pos, d
		}
	}
	return best
}
