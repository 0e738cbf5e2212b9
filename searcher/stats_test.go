package searcher

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	t.Run("virtual loss is reverted by the real outcome", func(t *testing.T) {
		var s stats
		s.addVirtualLoss(3)
		require.Equal(t, snapshot{visits: 3}, s.load())

		s.record(win, 3)
		require.Equal(t, snapshot{visits: 1, wins: 1}, s.load())

		s.record(draw, 0)
		require.Equal(t, snapshot{visits: 2, wins: 1, draws: 1}, s.load())
		require.InDelta(t, 0.7, s.load().mean(0.4), 1e-9)
	})

	t.Run("virtual loss lowers the mean while in flight", func(t *testing.T) {
		var s stats
		s.record(win, 0)
		before := s.load().mean(0.5)
		s.addVirtualLoss(1)
		require.Less(t, s.load().mean(0.5), before)
	})

	t.Run("drain empties the cell", func(t *testing.T) {
		var s stats
		s.record(win, 0)
		s.record(loss, 0)
		require.Equal(t, snapshot{visits: 2, wins: 1}, s.drain())
		require.Equal(t, snapshot{}, s.load())
	})

	t.Run("empty mean is zero", func(t *testing.T) {
		require.Zero(t, snapshot{}.mean(0.5))
	})

	t.Run("outcome flip", func(t *testing.T) {
		require.Equal(t, loss, win.flip())
		require.Equal(t, win, loss.flip())
		require.Equal(t, draw, draw.flip())
	})
}

func TestStatsConcurrentUpdates(t *testing.T) {
	const (
		writers = 8
		updates = 2000
	)
	var s stats
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < updates; j++ {
				s.addVirtualLoss(1)
				s.record(win, 1)
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	for {
		snap := s.load()
		// every completed update adds one visit and one win; in-flight ones
		// only add visits
		require.GreaterOrEqual(t, snap.visits, snap.wins)
		require.LessOrEqual(t, snap.visits-snap.wins, int64(writers))
		select {
		case <-done:
			require.Equal(t, snapshot{visits: writers * updates, wins: writers * updates}, s.load())
			return
		default:
		}
	}
}
