package multicut

import (
	"testing"

	da "github.com/lintang-b-s/mincutx/pkg/datastructure"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// buildS5 is the 4-vertex instance from the design discussion: terminals v0
// and v1, the heavy edge {v2,v3} dominating everything else.
func buildS5() (*da.MutableGraph, []da.Index, []bool, []da.Index) {
	g := da.NewMutableGraph()
	g.StartConstruction(4)
	g.NewEdgeOrder(0, 2, 2)
	g.NewEdgeOrder(2, 1, 1)
	g.NewEdgeOrder(2, 3, 5)
	g.NewEdgeOrder(3, 1, 1)

	terminals := []da.Index{0, 1}
	fixed := []bool{true, true, false, false}
	sol := []da.Index{0, 1, 0, 1}
	return g, terminals, fixed, sol
}

func newTestSearch(cfg Config, g *da.MutableGraph, terminals []da.Index,
	fixed []bool, sol []da.Index) *LocalSearch {
	problem := NewProblem(g, terminals)
	return NewLocalSearch(cfg, problem, g, terminals, fixed, sol, zap.NewNop())
}

func TestImproveSolutionKeepsHeavyEdgeTogether(t *testing.T) {
	g, terminals, fixed, sol := buildS5()
	before := CutWeight(g, sol)

	ls := newTestSearch(Config{NumTerminals: 2, Seed: 1}, g, terminals, fixed, sol)
	total := ls.ImproveSolution()

	require.Equal(t, sol[2], sol[3], "heavy edge endpoints must share a block")
	require.GreaterOrEqual(t, total, da.FlowType(0))

	after := CutWeight(g, sol)
	require.Equal(t, before-total, after)
	require.Equal(t, da.FlowType(2), after)
}

func TestImproveSolutionKeepsFixedVerticesInPlace(t *testing.T) {
	g, terminals, fixed, sol := buildS5()

	ls := newTestSearch(Config{NumTerminals: 2, Seed: 7}, g, terminals, fixed, sol)
	ls.ImproveSolution()

	require.Equal(t, da.Index(0), sol[0])
	require.Equal(t, da.Index(1), sol[1])
}

func TestImproveSolutionValidAndNonIncreasingOnRandomInstance(t *testing.T) {
	g := da.NewMutableGraph()
	g.StartConstruction(9)
	type edge struct {
		u, v da.Index
		w    da.EdgeWeight
	}
	edges := []edge{
		{0, 3, 2}, {3, 4, 4}, {4, 1, 1}, {4, 5, 3}, {5, 2, 2},
		{3, 6, 1}, {6, 7, 5}, {7, 8, 2}, {8, 5, 1}, {6, 4, 2}, {0, 6, 1},
	}
	for _, e := range edges {
		g.NewEdgeOrder(e.u, e.v, e.w)
	}

	terminals := []da.Index{0, 1, 2}
	fixed := make([]bool, 9)
	for _, tm := range terminals {
		fixed[tm] = true
	}
	sol := []da.Index{0, 1, 2, 0, 1, 2, 0, 1, 2}
	before := CutWeight(g, sol)

	ls := newTestSearch(Config{NumTerminals: 3, Seed: 42}, g, terminals, fixed, sol)
	total := ls.ImproveSolution()

	require.GreaterOrEqual(t, total, da.FlowType(0))
	after := CutWeight(g, sol)
	require.LessOrEqual(t, after, before)
	require.Equal(t, before-total, after)

	for v, block := range sol {
		require.Less(t, int(block), len(terminals), "vertex %d left the terminal range", v)
	}
	require.Equal(t, da.Index(0), sol[0])
	require.Equal(t, da.Index(1), sol[1])
	require.Equal(t, da.Index(2), sol[2])
}

func TestImproveSolutionDeterministicForSeed(t *testing.T) {
	run := func(seed uint64) ([]da.Index, da.FlowType) {
		g, terminals, fixed, sol := buildS5()
		ls := newTestSearch(Config{NumTerminals: 2, Seed: seed}, g, terminals, fixed, sol)
		total := ls.ImproveSolution()
		return sol, total
	}

	sol1, total1 := run(99)
	sol2, total2 := run(99)
	require.Equal(t, sol1, sol2)
	require.Equal(t, total1, total2)
}

func TestContractMovedVerticesPullsMovedVertexIntoTerminalBlock(t *testing.T) {
	// path 0-2-3-1 with terminals 0 and 1; vertex 2 is recorded as moved
	// into block 1, so it must end up contracted with terminal 1's node
	g := da.NewMutableGraph()
	g.StartConstruction(4)
	g.NewEdgeOrder(0, 2, 3)
	g.NewEdgeOrder(2, 3, 1)
	g.NewEdgeOrder(3, 1, 3)

	terminals := []da.Index{0, 1}
	fixed := []bool{true, true, false, false}
	sol := []da.Index{0, 1, 1, 1}

	ls := newTestSearch(Config{NumTerminals: 2, Inexact: true, Seed: 3}, g, terminals, fixed, sol)
	ls.movedToNewBlock[2] = 1

	ls.ContractMovedVertices()

	require.Equal(t, g.GetCurrentPosition(1), g.GetCurrentPosition(2))
	require.NotEqual(t, g.GetCurrentPosition(0), g.GetCurrentPosition(2))

	// terminal positions refreshed after the contraction
	for _, term := range ls.problem.Terminals() {
		orig := terminals[term.OriginalID()]
		require.Equal(t, g.GetCurrentPosition(orig), term.Position())
	}
}

func TestDeleteTermEdgesDropsInterTerminalEdges(t *testing.T) {
	g := da.NewMutableGraph()
	g.StartConstruction(3)
	g.NewEdgeOrder(0, 1, 2)
	g.NewEdgeOrder(1, 2, 1)
	g.NewEdgeOrder(0, 2, 1)

	terminals := []da.Index{0, 1}
	problem := NewProblem(g, terminals)

	DeleteTermEdges(problem, terminals)

	require.Equal(t, 2, g.NumberOfEdges())
	for e := da.Index(0); e < g.GetFirstInvalidEdge(0); e++ {
		require.Equal(t, da.Index(2), g.GetEdgeTarget(0, e))
	}
}
