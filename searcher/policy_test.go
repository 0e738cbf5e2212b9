package searcher

import (
	"dots/field"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func policyConfig(kind UCBType) Config {
	cfg := DefaultConfig()
	cfg.UCB = kind
	cfg.Exploration = 1.0
	cfg.DrawWeight = 0.5
	return cfg
}

func TestPolicyEvaluate(t *testing.T) {
	for _, kind := range []UCBType{UCB1, UCB1Tuned} {
		t.Run(kind.String()+" unvisited child is infinite", func(t *testing.T) {
			p := newPolicy(policyConfig(kind), 100)
			require.True(t, math.IsInf(p.evaluate(snapshot{}), 1),
				"Should try every child before revisiting any")
		})

		t.Run(kind.String()+" exploration term increases with parent visits", func(t *testing.T) {
			s := snapshot{visits: 10, wins: 5}
			score1 := newPolicy(policyConfig(kind), 100).evaluate(s)
			score2 := newPolicy(policyConfig(kind), 1000).evaluate(s)
			require.Greater(t, score2, score1)
		})

		t.Run(kind.String()+" exploration term decreases with child visits", func(t *testing.T) {
			p := newPolicy(policyConfig(kind), 1000)
			score1 := p.evaluate(snapshot{visits: 10, wins: 5})
			score2 := p.evaluate(snapshot{visits: 20, wins: 10})
			require.Greater(t, score1, score2)
		})

		t.Run(kind.String()+" exploitation term increases with wins", func(t *testing.T) {
			p := newPolicy(policyConfig(kind), 100)
			score1 := p.evaluate(snapshot{visits: 10, wins: 3})
			score2 := p.evaluate(snapshot{visits: 10, wins: 6})
			require.Greater(t, score2, score1)
		})

		t.Run(kind.String()+" draws count by draw weight", func(t *testing.T) {
			p := newPolicy(policyConfig(kind), 100)
			allDraws := p.evaluate(snapshot{visits: 10, draws: 10})
			allWins := p.evaluate(snapshot{visits: 10, wins: 10})
			allLosses := p.evaluate(snapshot{visits: 10})
			require.Greater(t, allWins, allDraws)
			require.Greater(t, allDraws, allLosses)
		})
	}

	t.Run("ucb1 value", func(t *testing.T) {
		p := newPolicy(policyConfig(UCB1), 100)
		got := p.evaluate(snapshot{visits: 9, wins: 3, draws: 2})

		expected := (3+0.5*2)/9.0 + math.Sqrt(math.Log(100)/10)
		require.InDelta(t, expected, got, 1e-9,
			"Should compute mean + c*sqrt(ln(N)/(1+n))")
	})

	t.Run("ucb1-tuned bonus is capped by a quarter", func(t *testing.T) {
		p := newPolicy(policyConfig(UCB1Tuned), 100)
		got := p.evaluate(snapshot{visits: 9, wins: 3, draws: 2})

		mean := (3 + 0.5*2) / 9.0
		require.InDelta(t, mean+math.Sqrt(math.Log(100)/10*0.25), got, 1e-9)
	})

	t.Run("ucb1-tuned uses variance when small", func(t *testing.T) {
		p := newPolicy(policyConfig(UCB1Tuned), 2)
		s := snapshot{visits: 1000, wins: 1000}
		got := p.evaluate(s)

		variance := math.Sqrt(2 * math.Log(2) / 1001)
		require.Less(t, variance, 0.25)
		require.InDelta(t, 1+math.Sqrt(math.Log(2)/1001*variance), got, 1e-9)
	})

	t.Run("zero parent visits do not panic", func(t *testing.T) {
		p := newPolicy(policyConfig(UCB1), 0)
		require.InDelta(t, 0.5, p.evaluate(snapshot{visits: 2, wins: 1}), 1e-9)
	})
}

func TestSelectEdge(t *testing.T) {
	cfg := policyConfig(UCB1)

	t.Run("no edges", func(t *testing.T) {
		tr := newTree()
		root, _ := tr.reserve(1)
		_, ok := tr.selectEdge(cfg, tr.get(root), nil)
		require.False(t, ok)
	})

	t.Run("ties go to the earliest edge", func(t *testing.T) {
		tr := newTree()
		root, _ := tr.reserve(1)
		tr.expand(tr.get(root), []field.Pos{10, 11, 12})
		i, ok := tr.selectEdge(cfg, tr.get(root), tr.get(root).children())
		require.True(t, ok)
		require.Equal(t, 0, i)

		for _, e := range tr.get(root).children() {
			tr.get(e.child).record(draw, 0)
			tr.get(root).record(draw, 0)
		}
		i, _ = tr.selectEdge(cfg, tr.get(root), tr.get(root).children())
		require.Equal(t, 0, i)
	})

	t.Run("prefers unvisited then better children", func(t *testing.T) {
		tr := newTree()
		root, _ := tr.reserve(1)
		r := tr.get(root)
		tr.expand(r, []field.Pos{10, 11, 12})
		edges := r.children()

		tr.get(edges[0].child).record(loss, 0)
		tr.get(edges[1].child).record(win, 0)
		r.record(win, 0)
		r.record(loss, 0)
		i, _ := tr.selectEdge(cfg, r, edges)
		require.Equal(t, 2, i, "Should pick the unvisited edge")

		tr.get(edges[2].child).record(loss, 0)
		r.record(loss, 0)
		i, _ = tr.selectEdge(cfg, r, edges)
		require.Equal(t, 1, i, "Should pick the winning edge")
	})
}
