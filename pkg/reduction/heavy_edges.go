package reduction

import (
	"sort"

	da "github.com/lintang-b-s/mincutx/pkg/datastructure"
)

// CactusEdge records a removed degree-1 super-node whose single incident
// edge had weight mincut: Contained was connected to the super-node holding
// Neighbor by a tree edge of the cactus.
type CactusEdge struct {
	Neighbor  da.Index // first contained original of the surviving neighbor
	Contained []da.Index
}

// CycleEdge records a contracted degree-2 super-node of weighted degree
// mincut whose two edges (weight mincut/2 each) led to the super-nodes
// holding P0 and P1; it lies on a 3-cycle of the cactus.
type CycleEdge struct {
	P0, P1    da.Index
	Contained []da.Index
}

// HeavyEdges simplifies a graph with known minimum cut value: edges heavier
// than the mincut cannot cross any minimum cut and are contracted, while
// mincut-weight pendants and half-mincut cycle nodes are logged so the
// cactus structure they represent can be rebuilt by the reinsertion passes.
type HeavyEdges struct {
	mincut da.EdgeWeight
}

func NewHeavyEdges(mincut da.EdgeWeight) *HeavyEdges {
	return &HeavyEdges{mincut: mincut}
}

// RemoveHeavyEdges contracts the endpoints of every edge heavier than the
// mincut, then detaches degree-1 super-nodes whose single edge has weight
// exactly mincut, logging each so ReInsertVertices can restore them.
func (he *HeavyEdges) RemoveHeavyEdges(g *da.MutableGraph) []CactusEdge {
	cactusEdges := make([]CactusEdge, 0)
	contract := make(map[da.Index][]da.Index)
	markForCactus := make([]da.Index, 0)

	for n := da.Index(0); n < g.NumberOfNodes(); n++ {
		if g.IsEmpty(n) {
			continue
		}

		for e := da.Index(0); e < g.GetFirstInvalidEdge(n); e++ {
			target, wgt := g.GetEdge(n, e)
			if g.IsEmpty(target) {
				continue
			}

			if wgt > he.mincut {
				v1 := g.ContainedVertices(n)[0]
				v2 := g.ContainedVertices(target)[0]
				min, max := v1, v2
				if min > max {
					min, max = max, min
				}
				contract[min] = append(contract[min], max)
			}

			if wgt == he.mincut {
				if g.GetFirstInvalidEdge(n) == 1 {
					// each edge is seen from both adjacent nodes,
					// so every pendant registers itself here
					markForCactus = append(markForCactus, g.ContainedVertices(n)[0])
				}
			}
		}
	}

	// group keys sorted so the contraction sequence is reproducible
	lowestIds := make([]da.Index, 0, len(contract))
	for lowest := range contract {
		lowestIds = append(lowestIds, lowest)
	}
	sort.Slice(lowestIds, func(i, j int) bool { return lowestIds[i] < lowestIds[j] })

	for _, lowest := range lowestIds {
		vtxSet := make(map[da.Index]struct{})
		vtxSet[g.GetCurrentPosition(lowest)] = struct{}{}
		for _, v := range contract[lowest] {
			vtxSet[g.GetCurrentPosition(v)] = struct{}{}
		}
		if len(vtxSet) > 1 {
			g.ContractVertexSet(vtxSet)
		}
	}

	for _, mark := range markForCactus {
		if g.NumberOfNodes() <= 2 {
			continue
		}
		n := g.GetCurrentPosition(mark)
		if n == da.UNDEFINED_NODE || g.GetFirstInvalidEdge(n) != 1 {
			// a heavy contraction (or the removal of the pendant's twin)
			// changed this node since it was marked
			continue
		}
		t := g.GetEdgeTarget(n, 0)
		if g.IsEmpty(t) {
			continue
		}
		cactusEdges = append(cactusEdges, CactusEdge{
			Neighbor:  g.ContainedVertices(t)[0],
			Contained: g.ContainedVertices(n),
		})
		g.DeleteVertex(n)
	}

	return cactusEdges
}

// ContractCycleEdges collapses every super-node with exactly two edges of
// weight mincut/2 each into its first neighbor, logging the structure for
// ReInsertCycles. The node bound is re-read every pass because contractions
// shrink the graph while we iterate.
func (he *HeavyEdges) ContractCycleEdges(g *da.MutableGraph) []CycleEdge {
	cycleEdges := make([]CycleEdge, 0)
	for n := da.Index(0); n < g.NumberOfNodes(); n++ {
		if g.GetFirstInvalidEdge(n) != 2 || g.GetWeightedNodeDegree(n) != he.mincut {
			continue
		}
		n0 := g.GetEdgeTarget(n, 0)
		n1 := g.GetEdgeTarget(n, 1)
		if g.IsEmpty(n0) || g.IsEmpty(n1) {
			continue
		}
		// if the edges have different weights, the heavier of them will
		// be contracted in local routines
		if g.GetEdgeWeight(n, 0) != he.mincut/2 || g.GetEdgeWeight(n, 1) != he.mincut/2 {
			continue
		}

		p0 := g.ContainedVertices(n0)[0]
		p1 := g.ContainedVertices(n1)[0]
		contained := g.ContainedVertices(n)
		g.SetContainedVertices(n, nil)
		for _, c := range contained {
			g.SetCurrentPosition(c, da.UNDEFINED_NODE)
		}
		g.ContractEdge(n0, g.GetReverseEdge(n, 0))
		cycleEdges = append(cycleEdges, CycleEdge{P0: p0, P1: p1, Contained: contained})
	}
	return cycleEdges
}

// ReInsertVertices replays a RemoveHeavyEdges log in reverse, reattaching
// each recorded pendant to the current super-node of its former neighbor.
func (he *HeavyEdges) ReInsertVertices(g *da.MutableGraph, toInsert []CactusEdge) {
	for i := len(toInsert) - 1; i >= 0; i-- {
		entry := toInsert[i]
		curr := g.GetCurrentPosition(entry.Neighbor)
		vtx := g.NewEmptyNode()
		g.NewEdgeOrder(curr, vtx, he.mincut)
		g.SetContainedVertices(vtx, entry.Contained)
		for _, v := range entry.Contained {
			g.SetCurrentPosition(v, vtx)
		}
	}
}

// ReInsertCycles replays a ContractCycleEdges log in reverse. When the two
// former neighbors have since merged into one super-node the cycle
// degenerates and the node comes back as a single mincut-weight pendant.
func (he *HeavyEdges) ReInsertCycles(g *da.MutableGraph, toInsert []CycleEdge) {
	for i := len(toInsert) - 1; i >= 0; i-- {
		entry := toInsert[i]
		n0 := g.GetCurrentPosition(entry.P0)
		n1 := g.GetCurrentPosition(entry.P1)
		if n0 == n1 {
			reIns := g.NewEmptyNode()
			g.NewEdgeOrder(n0, reIns, he.mincut)
			g.SetContainedVertices(reIns, entry.Contained)
			for _, v := range entry.Contained {
				g.SetCurrentPosition(v, reIns)
			}
			continue
		}

		e := da.UNDEFINED_EDGE
		for arc := da.Index(0); arc < g.GetFirstInvalidEdge(n0); arc++ {
			if g.GetEdgeTarget(n0, arc) == n1 {
				e = arc
				break
			}
		}

		reIns := g.NewEmptyNode()
		g.NewEdgeOrder(n0, reIns, he.mincut/2)
		g.NewEdgeOrder(n1, reIns, he.mincut/2)

		w01 := g.GetEdgeWeight(n0, e)
		if w01 == he.mincut/2 {
			g.DeleteEdge(n0, e)
		} else {
			g.SetEdgeWeight(n0, e, w01-he.mincut/2)
		}
		g.SetContainedVertices(reIns, entry.Contained)
		for _, v := range entry.Contained {
			g.SetCurrentPosition(v, reIns)
		}
	}
}
