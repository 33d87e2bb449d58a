package reduction

import (
	"testing"

	da "github.com/lintang-b-s/mincutx/pkg/datastructure"
	"github.com/stretchr/testify/require"
)

func edgeWeightBetween(t *testing.T, g *da.MutableGraph, u, v da.Index) da.EdgeWeight {
	t.Helper()
	for e := da.Index(0); e < g.GetFirstInvalidEdge(u); e++ {
		target, w := g.GetEdge(u, e)
		if target == v {
			return w
		}
	}
	t.Fatalf("no edge between nodes %d and %d", u, v)
	return 0
}

func TestRemoveHeavyEdgesTriangleAtMincutIsUntouched(t *testing.T) {
	// triangle with all edges equal to the mincut: nothing is heavier than
	// the mincut and no node has degree 1, so nothing happens
	g := da.NewMutableGraph()
	g.StartConstruction(3)
	g.NewEdgeOrder(0, 1, 3)
	g.NewEdgeOrder(1, 2, 3)
	g.NewEdgeOrder(0, 2, 3)

	cactusEdges := NewHeavyEdges(3).RemoveHeavyEdges(g)

	require.Empty(t, cactusEdges)
	require.Equal(t, da.Index(3), g.NumberOfNodes())
	require.Equal(t, 3, g.NumberOfEdges())
}

func TestRemoveHeavyEdgesContractsPathAboveMincut(t *testing.T) {
	// path 0-1-2 with both edges heavier than the mincut: all three
	// vertices end up in one super-node and the log stays empty
	g := da.NewMutableGraph()
	g.StartConstruction(3)
	g.NewEdgeOrder(0, 1, 5)
	g.NewEdgeOrder(1, 2, 5)

	cactusEdges := NewHeavyEdges(3).RemoveHeavyEdges(g)

	require.Empty(t, cactusEdges)
	require.Equal(t, da.Index(1), g.NumberOfNodes())
	pos := g.GetCurrentPosition(0)
	require.Equal(t, pos, g.GetCurrentPosition(1))
	require.Equal(t, pos, g.GetCurrentPosition(2))
	require.ElementsMatch(t, []da.Index{0, 1, 2}, g.ContainedVertices(pos))
}

func TestRemoveHeavyEdgesHeavyContractionProperty(t *testing.T) {
	// every edge heavier than the mincut must end with both endpoints in
	// the same super-node
	g := da.NewMutableGraph()
	g.StartConstruction(6)
	type edge struct {
		u, v da.Index
		w    da.EdgeWeight
	}
	edges := []edge{
		{0, 1, 7}, {1, 2, 2}, {2, 3, 9}, {3, 4, 4}, {4, 5, 8}, {0, 5, 1},
	}
	for _, e := range edges {
		g.NewEdgeOrder(e.u, e.v, e.w)
	}

	NewHeavyEdges(4).RemoveHeavyEdges(g)

	for _, e := range edges {
		if e.w > 4 {
			require.Equal(t, g.GetCurrentPosition(e.u), g.GetCurrentPosition(e.v),
				"endpoints of heavy edge {%d,%d} not merged", e.u, e.v)
		}
	}
}

func TestRemoveHeavyEdgesStarLogsCactusLeaves(t *testing.T) {
	// star: center 0 with leaves 1..3, all edges at the mincut. Leaves are
	// detached and logged while the graph stays above two nodes, so the
	// third leaf survives.
	g := da.NewMutableGraph()
	g.StartConstruction(4)
	g.NewEdgeOrder(0, 1, 4)
	g.NewEdgeOrder(0, 2, 4)
	g.NewEdgeOrder(0, 3, 4)

	he := NewHeavyEdges(4)
	cactusEdges := he.RemoveHeavyEdges(g)

	require.Len(t, cactusEdges, 2)
	for _, ce := range cactusEdges {
		require.Equal(t, da.Index(0), ce.Neighbor)
	}
	require.Equal(t, da.Index(2), g.NumberOfNodes())
	require.Equal(t, da.UNDEFINED_NODE, g.GetCurrentPosition(1))
	require.Equal(t, da.UNDEFINED_NODE, g.GetCurrentPosition(2))

	he.ReInsertVertices(g, cactusEdges)

	require.Equal(t, da.Index(4), g.NumberOfNodes())
	center := g.GetCurrentPosition(0)
	for _, leaf := range []da.Index{1, 2, 3} {
		pos := g.GetCurrentPosition(leaf)
		require.NotEqual(t, da.UNDEFINED_NODE, pos)
		require.Equal(t, da.Index(1), g.GetFirstInvalidEdge(pos))
		require.Equal(t, center, g.GetEdgeTarget(pos, 0))
		require.Equal(t, da.EdgeWeight(4), g.GetEdgeWeight(pos, 0))
	}
}

func TestContractCycleEdgesTriangleRoundTrip(t *testing.T) {
	// triangle with all edges at half the mincut: the first qualifying node
	// collapses into a neighbor, reinsertion restores the 3-cycle
	g := da.NewMutableGraph()
	g.StartConstruction(3)
	g.NewEdgeOrder(0, 1, 2)
	g.NewEdgeOrder(1, 2, 2)
	g.NewEdgeOrder(0, 2, 2)

	he := NewHeavyEdges(4)
	cycleEdges := he.ContractCycleEdges(g)

	require.Len(t, cycleEdges, 1)
	require.ElementsMatch(t, []da.Index{0}, cycleEdges[0].Contained)
	require.Equal(t, da.UNDEFINED_NODE, g.GetCurrentPosition(0))
	require.Equal(t, da.Index(2), g.NumberOfNodes())
	// the two parallel weight-2 edges collapsed into one of weight 4
	require.Equal(t, da.EdgeWeight(4),
		edgeWeightBetween(t, g, g.GetCurrentPosition(1), g.GetCurrentPosition(2)))

	he.ReInsertCycles(g, cycleEdges)

	require.Equal(t, da.Index(3), g.NumberOfNodes())
	n0 := g.GetCurrentPosition(0)
	n1 := g.GetCurrentPosition(1)
	n2 := g.GetCurrentPosition(2)
	require.NotEqual(t, da.UNDEFINED_NODE, n0)
	require.Equal(t, da.EdgeWeight(2), edgeWeightBetween(t, g, n1, n0))
	require.Equal(t, da.EdgeWeight(2), edgeWeightBetween(t, g, n2, n0))
	require.Equal(t, da.EdgeWeight(2), edgeWeightBetween(t, g, n1, n2))
}

func TestReInsertCyclesDegeneratesToPendantWhenNeighborsMerged(t *testing.T) {
	g := da.NewMutableGraph()
	g.StartConstruction(3)
	g.NewEdgeOrder(0, 1, 2)
	g.NewEdgeOrder(1, 2, 2)
	g.NewEdgeOrder(0, 2, 2)

	he := NewHeavyEdges(4)
	cycleEdges := he.ContractCycleEdges(g)
	require.Len(t, cycleEdges, 1)

	// merge the two former neighbors before replay
	g.ContractVertexSet(map[da.Index]struct{}{
		g.GetCurrentPosition(1): {},
		g.GetCurrentPosition(2): {},
	})

	he.ReInsertCycles(g, cycleEdges)

	pos := g.GetCurrentPosition(0)
	require.NotEqual(t, da.UNDEFINED_NODE, pos)
	require.Equal(t, da.Index(1), g.GetFirstInvalidEdge(pos))
	require.Equal(t, da.EdgeWeight(4), g.GetEdgeWeight(pos, 0))
}

func TestContractCycleEdgesSkipsUnevenWeights(t *testing.T) {
	// degree-2 node at the mincut but with uneven edge weights stays
	g := da.NewMutableGraph()
	g.StartConstruction(3)
	g.NewEdgeOrder(0, 1, 3)
	g.NewEdgeOrder(1, 2, 1)
	g.NewEdgeOrder(0, 2, 3)

	cycleEdges := NewHeavyEdges(4).ContractCycleEdges(g)

	require.Empty(t, cycleEdges)
	require.Equal(t, da.Index(3), g.NumberOfNodes())
}
