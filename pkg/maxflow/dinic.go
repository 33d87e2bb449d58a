package maxflow

import (
	"container/list"

	"github.com/lintang-b-s/mincutx/pkg"
	da "github.com/lintang-b-s/mincutx/pkg/datastructure"
	"github.com/lintang-b-s/mincutx/pkg/util"
)

const INVALID_LEVEL = -1

// DinicMaxFlow computes a maximum flow over an undirected MutableGraph.
// Every undirected edge acts as two antiparallel arcs of equal capacity;
// flow is tracked per half-edge, mirroring the graph's edge arena, so the
// graph itself stays untouched.
type DinicMaxFlow struct {
	graph       *da.MutableGraph
	level       []int
	lastEdgeIdx []da.Index
	flow        [][]da.FlowType
}

func NewDinicMaxFlow(graph *da.MutableGraph) *DinicMaxFlow {
	n := int(graph.NumberOfNodes())
	flow := make([][]da.FlowType, n)
	for i := 0; i < n; i++ {
		flow[i] = make([]da.FlowType, graph.GetFirstInvalidEdge(da.Index(i)))
	}
	return &DinicMaxFlow{
		graph:       graph,
		level:       make([]int, n),
		lastEdgeIdx: make([]da.Index, n),
		flow:        flow,
	}
}

func (dmf *DinicMaxFlow) residual(n, e da.Index) da.FlowType {
	return dmf.graph.GetEdgeWeight(n, e) - dmf.flow[n][e]
}

func (dmf *DinicMaxFlow) bfsLevelGraph(source, target da.Index) bool {
	for i := range dmf.level {
		dmf.level[i] = INVALID_LEVEL
	}

	levelQueue := list.New()
	levelQueue.PushBack(source)
	dmf.level[source] = 0

	for levelQueue.Len() > 0 {
		u := levelQueue.Front().Value.(da.Index)
		levelQueue.Remove(levelQueue.Front())

		if u == target {
			break
		}
		level := dmf.level[u] + 1

		for e := da.Index(0); e < dmf.graph.GetFirstInvalidEdge(u); e++ {
			v := dmf.graph.GetEdgeTarget(u, e)
			if dmf.residual(u, e) > 0 && dmf.level[v] == INVALID_LEVEL {
				dmf.level[v] = level
				levelQueue.PushBack(v)
			}
		}
	}
	return dmf.level[target] != INVALID_LEVEL
}

func (dmf *DinicMaxFlow) dfsAugmentPath(u, t da.Index, f da.FlowType) da.FlowType {
	if u == t || f == 0 {
		return f
	}

	for ; dmf.lastEdgeIdx[u] < dmf.graph.GetFirstInvalidEdge(u); dmf.lastEdgeIdx[u]++ {
		e := dmf.lastEdgeIdx[u]
		v := dmf.graph.GetEdgeTarget(u, e)
		if dmf.level[v] != dmf.level[u]+1 {
			continue
		}

		residual := dmf.residual(u, e)
		if residual <= 0 {
			continue
		}

		if pushed := dmf.dfsAugmentPath(v, t, minFlow(residual, f)); pushed > 0 {
			dmf.flow[u][e] += pushed
			rev := dmf.graph.GetReverseEdge(u, e)
			dmf.flow[v][rev] -= pushed
			return pushed
		}
	}

	return 0
}

func (dmf *DinicMaxFlow) resetCurrentEdges() {
	for i := range dmf.lastEdgeIdx {
		dmf.lastEdgeIdx[i] = 0
	}
}

// SolveMaxFlowMinCut computes the maximum flow between terminals[srcIdx] and
// the other terminal. It returns the flow value and, when keepSourceSide is
// true, the vertices reachable from the source in the final residual graph
// (the source side of a minimum cut); otherwise the sink side.
func (dmf *DinicMaxFlow) SolveMaxFlowMinCut(terminals []da.Index, srcIdx int,
	keepSourceSide bool) (da.FlowType, []da.Index) {
	util.AssertPanic(len(terminals) == 2, "dinic solves two-terminal flow problems")
	s := terminals[srcIdx]
	t := terminals[1-srcIdx]

	var maxFlow da.FlowType
	for dmf.bfsLevelGraph(s, t) {
		dmf.resetCurrentEdges()

		for {
			flow := dmf.dfsAugmentPath(s, t, pkg.INF_FLOW)
			if flow == 0 {
				break
			}
			maxFlow += flow
		}
	}

	sourceSide := make([]da.Index, 0)
	for u := da.Index(0); u < dmf.graph.NumberOfNodes(); u++ {
		reachable := dmf.level[u] != INVALID_LEVEL
		if reachable == keepSourceSide {
			sourceSide = append(sourceSide, u)
		}
	}
	return maxFlow, sourceSide
}

func minFlow(a, b da.FlowType) da.FlowType {
	if a < b {
		return a
	}
	return b
}
