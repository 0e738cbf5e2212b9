package heuristic

import (
	"dots/field"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpening(t *testing.T) {
	t.Run("empty field plays the centre", func(t *testing.T) {
		f := field.New(7, 5)
		require.Equal(t, f.ToPos(3, 2), Opening(f))
	})

	t.Run("even sizes round towards the origin", func(t *testing.T) {
		f := field.New(4, 4)
		require.Equal(t, f.ToPos(1, 1), Opening(f))
	})

	t.Run("occupied centre falls back to the nearest cell", func(t *testing.T) {
		f := field.New(5, 5)
		f.Put(f.ToPos(2, 2), field.Red)
		require.Equal(t, f.ToPos(2, 1), Opening(f), "Should pick the first of the nearest cells")
	})

	t.Run("full field has no opening", func(t *testing.T) {
		f := field.New(1, 1)
		f.Put(f.ToPos(0, 0), field.Black)
		require.Equal(t, field.NoPos, Opening(f))
	})
}
