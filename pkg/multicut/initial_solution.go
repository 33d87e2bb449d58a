package multicut

import (
	"container/list"

	da "github.com/lintang-b-s/mincutx/pkg/datastructure"
)

// InitialSolution assigns every vertex to the terminal that reaches it first
// in a multi-source breadth-first search, giving the local search a feasible
// starting point. Unreachable vertices fall into block 0.
func InitialSolution(g *da.MutableGraph, terminals []da.Index) []da.Index {
	sol := make([]da.Index, g.NumberOfNodes())
	visited := make([]bool, g.NumberOfNodes())

	queue := list.New()
	for i, t := range terminals {
		sol[t] = da.Index(i)
		visited[t] = true
		queue.PushBack(t)
	}

	for queue.Len() > 0 {
		u := queue.Front().Value.(da.Index)
		queue.Remove(queue.Front())

		for e := da.Index(0); e < g.GetFirstInvalidEdge(u); e++ {
			v := g.GetEdgeTarget(u, e)
			if !visited[v] {
				visited[v] = true
				sol[v] = sol[u]
				queue.PushBack(v)
			}
		}
	}

	return sol
}

// CutWeight is the total weight of edges whose endpoints lie in different
// blocks of sol.
func CutWeight(g *da.MutableGraph, sol []da.Index) da.FlowType {
	var cut da.FlowType
	for n := da.Index(0); n < g.NumberOfNodes(); n++ {
		for e := da.Index(0); e < g.GetFirstInvalidEdge(n); e++ {
			t, w := g.GetEdge(n, e)
			if n < t && sol[n] != sol[t] {
				cut += w
			}
		}
	}
	return cut
}
