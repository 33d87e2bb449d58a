package maxflow

import (
	"testing"

	da "github.com/lintang-b-s/mincutx/pkg/datastructure"
	"github.com/stretchr/testify/require"
)

func TestSolveMaxFlowMinCutPath(t *testing.T) {
	// 0 -3- 2 -1- 3 -3- 1: the bottleneck edge {2,3} limits the flow
	g := da.NewMutableGraph()
	g.StartConstruction(4)
	g.NewEdgeOrder(0, 2, 3)
	g.NewEdgeOrder(2, 3, 1)
	g.NewEdgeOrder(3, 1, 3)

	dinic := NewDinicMaxFlow(g)
	flow, sourceSide := dinic.SolveMaxFlowMinCut([]da.Index{0, 1}, 0, true)

	require.Equal(t, da.FlowType(1), flow)
	require.ElementsMatch(t, []da.Index{0, 2}, sourceSide)
}

func TestSolveMaxFlowMinCutParallelPaths(t *testing.T) {
	// two disjoint 0->1 paths of capacity 2 and 1
	g := da.NewMutableGraph()
	g.StartConstruction(4)
	g.NewEdgeOrder(0, 2, 2)
	g.NewEdgeOrder(2, 1, 2)
	g.NewEdgeOrder(0, 3, 1)
	g.NewEdgeOrder(3, 1, 4)

	dinic := NewDinicMaxFlow(g)
	flow, sourceSide := dinic.SolveMaxFlowMinCut([]da.Index{0, 1}, 0, true)

	require.Equal(t, da.FlowType(3), flow)
	require.Contains(t, sourceSide, da.Index(0))
	require.NotContains(t, sourceSide, da.Index(1))
}

func TestSolveMaxFlowMinCutDisconnectedSink(t *testing.T) {
	g := da.NewMutableGraph()
	g.StartConstruction(3)
	g.NewEdgeOrder(0, 2, 5)

	dinic := NewDinicMaxFlow(g)
	flow, sourceSide := dinic.SolveMaxFlowMinCut([]da.Index{0, 1}, 0, true)

	require.Equal(t, da.FlowType(0), flow)
	require.ElementsMatch(t, []da.Index{0, 2}, sourceSide)
}

func TestSolveMaxFlowMinCutSinkSide(t *testing.T) {
	g := da.NewMutableGraph()
	g.StartConstruction(3)
	g.NewEdgeOrder(0, 2, 2)
	g.NewEdgeOrder(2, 1, 1)

	dinic := NewDinicMaxFlow(g)
	flow, sinkSide := dinic.SolveMaxFlowMinCut([]da.Index{0, 1}, 0, false)

	require.Equal(t, da.FlowType(1), flow)
	require.ElementsMatch(t, []da.Index{1}, sinkSide)
}
