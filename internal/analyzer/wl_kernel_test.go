package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chainGraph builds a control-edge chain over the given node kinds
func chainGraph(kinds ...PDGNodeKind) *PDG {
	g := NewPDG()
	var prev *PDGNode
	for _, k := range kinds {
		n := g.AddNode(string(k), k)
		if prev != nil {
			g.AddEdge(prev.ID, n.ID, PDGEdgeControl)
		}
		prev = n
	}
	return g
}

func TestSimilarityIdenticalGraphs(t *testing.T) {
	kernel := NewWLKernel()

	for _, rounds := range []int{0, 1, 3, 5} {
		g1 := chainGraph(PDGNodeDecl, PDGNodeAssign, PDGNodeIf, PDGNodeReturn)
		g2 := chainGraph(PDGNodeDecl, PDGNodeAssign, PDGNodeIf, PDGNodeReturn)

		score, err := kernel.Similarity(g1, g2, rounds)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, score, 1e-9, "rounds=%d", rounds)
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	kernel := NewWLKernel()
	g1 := chainGraph(PDGNodeDecl, PDGNodeAssign, PDGNodeReturn)
	g2 := chainGraph(PDGNodeDecl, PDGNodeIf, PDGNodeAssign, PDGNodeReturn, PDGNodeUse)

	s12, err := kernel.Similarity(g1, g2, 3)
	require.NoError(t, err)
	s21, err := kernel.Similarity(g2, g1, 3)
	require.NoError(t, err)

	assert.InDelta(t, s12, s21, 1e-9)
}

func TestSimilarityRange(t *testing.T) {
	kernel := NewWLKernel()
	pairs := []struct {
		g1, g2 *PDG
	}{
		{chainGraph(PDGNodeDecl), chainGraph(PDGNodeDecl, PDGNodeAssign)},
		{chainGraph(PDGNodeIf, PDGNodeReturn), chainGraph(PDGNodeAssign, PDGNodeUse)},
		{chainGraph(PDGNodeDecl, PDGNodeAssign, PDGNodeReturn), chainGraph(PDGNodeReturn)},
	}

	for _, p := range pairs {
		score, err := kernel.Similarity(p.g1, p.g2, 3)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}

func TestSimilarityDisjointKinds(t *testing.T) {
	kernel := NewWLKernel()
	g1 := chainGraph(PDGNodeDecl, PDGNodeDecl)
	g2 := chainGraph(PDGNodeReturn, PDGNodeReturn)

	score, err := kernel.Similarity(g1, g2, 3)
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestSimilarityZeroRoundsIsLabelJaccard(t *testing.T) {
	kernel := NewWLKernel()

	// Histograms: {decl:1, assign:2} vs {decl:1, assign:1, return:1}
	// min-sum = 2, max-sum = 4 -> 0.5
	g1 := chainGraph(PDGNodeDecl, PDGNodeAssign, PDGNodeAssign)
	g2 := chainGraph(PDGNodeDecl, PDGNodeAssign, PDGNodeReturn)

	score, err := kernel.Similarity(g1, g2, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, score, 1e-9)
}

func TestSimilarityStructureSensitive(t *testing.T) {
	kernel := NewWLKernel()

	// Same kind multiset, different wiring: round 0 agrees fully, later
	// rounds must pull the score below 1.
	g1 := chainGraph(PDGNodeDecl, PDGNodeAssign, PDGNodeReturn)
	g2 := NewPDG()
	a := g2.AddNode("decl", PDGNodeDecl)
	b := g2.AddNode("assign", PDGNodeAssign)
	c := g2.AddNode("return", PDGNodeReturn)
	g2.AddEdge(a.ID, b.ID, PDGEdgeControl)
	g2.AddEdge(a.ID, c.ID, PDGEdgeControl)

	score, err := kernel.Similarity(g1, g2, 2)
	require.NoError(t, err)
	assert.Less(t, score, 1.0)
	assert.Greater(t, score, 0.0)
}

func TestSimilarityEdgeKindMatters(t *testing.T) {
	kernel := NewWLKernel()

	mk := func(kind PDGEdgeKind) *PDG {
		g := NewPDG()
		a := g.AddNode("a", PDGNodeAssign)
		b := g.AddNode("b", PDGNodeUse)
		g.AddEdge(a.ID, b.ID, kind)
		return g
	}

	score, err := kernel.Similarity(mk(PDGEdgeControl), mk(PDGEdgeData), 1)
	require.NoError(t, err)
	assert.Less(t, score, 1.0)
}

func TestSimilarityEmptyGraphs(t *testing.T) {
	kernel := NewWLKernel()

	score, err := kernel.Similarity(NewPDG(), NewPDG(), 3)
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestSimilarityErrors(t *testing.T) {
	kernel := NewWLKernel()
	g := chainGraph(PDGNodeDecl)

	t.Run("nil first graph", func(t *testing.T) {
		_, err := kernel.Similarity(nil, g, 3)
		assert.Error(t, err)
	})

	t.Run("nil second graph", func(t *testing.T) {
		_, err := kernel.Similarity(g, nil, 3)
		assert.Error(t, err)
	})

	t.Run("negative rounds", func(t *testing.T) {
		_, err := kernel.Similarity(g, g, -1)
		assert.Error(t, err)
	})

	t.Run("dangling edge", func(t *testing.T) {
		bad := chainGraph(PDGNodeDecl)
		bad.AddEdge("n0", "n42", PDGEdgeControl)
		_, err := kernel.Similarity(g, bad, 3)
		assert.Error(t, err)
	})
}

func TestRoundWeights(t *testing.T) {
	for _, rounds := range []int{0, 1, 3, 7} {
		weights := RoundWeights(rounds)
		require.Len(t, weights, rounds+1)

		sum := 0.0
		for _, w := range weights {
			sum += w
		}
		assert.InDelta(t, 1.0, sum, 1e-9)

		for i := 1; i < len(weights); i++ {
			assert.InDelta(t, DecayFactor, weights[i]/weights[i-1], 1e-9)
		}
	}
}

func TestRelabelFormat(t *testing.T) {
	// decl -> assign chain, one round. Labels are left at their final state
	// after Similarity, so they can be inspected directly.
	g1 := chainGraph(PDGNodeDecl, PDGNodeAssign)
	g2 := chainGraph(PDGNodeDecl, PDGNodeAssign)

	_, err := NewWLKernel().Similarity(g1, g2, 1)
	require.NoError(t, err)

	assert.Equal(t, "decl|assign_control", g1.Nodes()[0].WLLabel)
	assert.Equal(t, "assign|LEAF", g1.Nodes()[1].WLLabel)
}

func TestRelabelSynchronous(t *testing.T) {
	// a -> b -> c: b's new label must use c's round-0 label, not a label
	// already updated within the same round.
	g1 := chainGraph(PDGNodeDecl, PDGNodeAssign, PDGNodeReturn)
	g2 := chainGraph(PDGNodeDecl, PDGNodeAssign, PDGNodeReturn)

	_, err := NewWLKernel().Similarity(g1, g2, 1)
	require.NoError(t, err)

	assert.Equal(t, "decl|assign_control", g1.Nodes()[0].WLLabel)
	assert.Equal(t, "assign|return_control", g1.Nodes()[1].WLLabel)
	assert.Equal(t, "return|LEAF", g1.Nodes()[2].WLLabel)
}

func TestRelabelSortsNeighbors(t *testing.T) {
	// Two fan-out graphs with children added in opposite order must relabel
	// identically.
	mk := func(reversed bool) *PDG {
		g := NewPDG()
		root := g.AddNode("if", PDGNodeIf)
		kinds := []PDGNodeKind{PDGNodeAssign, PDGNodeReturn}
		if reversed {
			kinds = []PDGNodeKind{PDGNodeReturn, PDGNodeAssign}
		}
		for _, k := range kinds {
			child := g.AddNode(string(k), k)
			g.AddEdge(root.ID, child.ID, PDGEdgeControl)
		}
		return g
	}

	score, err := NewWLKernel().Similarity(mk(false), mk(true), 3)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestSimilarityRepeatable(t *testing.T) {
	// Scoring mutates WL labels in place but re-initializes them per call,
	// so back-to-back calls on the same graphs agree.
	kernel := NewWLKernel()
	g1 := chainGraph(PDGNodeDecl, PDGNodeAssign, PDGNodeReturn)
	g2 := chainGraph(PDGNodeDecl, PDGNodeAssign, PDGNodeUse, PDGNodeReturn)

	first, err := kernel.Similarity(g1, g2, 3)
	require.NoError(t, err)
	second, err := kernel.Similarity(g1, g2, 3)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
