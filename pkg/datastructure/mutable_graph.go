package datastructure

import (
	"math"
	"sort"
)

type Index uint32

type EdgeWeight = int64

type FlowType = int64

const (
	UNDEFINED_NODE Index = math.MaxUint32
	UNDEFINED_EDGE Index = math.MaxUint32
)

// halfEdge is one direction of an undirected edge. reverse is the index of
// the twin half-edge inside target's edge slice (arena+index, no pointers),
// so contraction and compaction never leave dangling references.
type halfEdge struct {
	target  Index
	weight  EdgeWeight
	reverse Index
}

type superNode struct {
	edges     []halfEdge
	contained []Index // original vertex ids merged into this node
}

// MutableGraph is a weighted undirected graph that supports destructive
// vertex contraction. Nodes are super-nodes holding the original vertices
// merged into them; currentPosition maps every original vertex to its live
// super-node or UNDEFINED_NODE once it has been dropped. A node drained of
// its contained vertices but not yet removed acts as a tombstone (IsEmpty).
type MutableGraph struct {
	nodes           []superNode
	currentPosition []Index
}

func NewMutableGraph() *MutableGraph {
	return &MutableGraph{}
}

// StartConstruction allocates numNodes super-nodes, each containing itself.
func (g *MutableGraph) StartConstruction(numNodes int) {
	g.nodes = make([]superNode, numNodes)
	g.currentPosition = make([]Index, numNodes)
	for i := 0; i < numNodes; i++ {
		g.nodes[i].contained = []Index{Index(i)}
		g.currentPosition[i] = Index(i)
	}
}

func (g *MutableGraph) NumberOfNodes() Index {
	return Index(len(g.nodes))
}

// NumberOfOriginalVertices is the vertex count StartConstruction was called
// with; it does not shrink under contraction.
func (g *MutableGraph) NumberOfOriginalVertices() Index {
	return Index(len(g.currentPosition))
}

func (g *MutableGraph) NumberOfEdges() int {
	half := 0
	for n := range g.nodes {
		half += len(g.nodes[n].edges)
	}
	return half / 2
}

func (g *MutableGraph) IsEmpty(n Index) bool {
	return len(g.nodes[n].contained) == 0
}

// GetFirstInvalidEdge returns the current edge count of n.
func (g *MutableGraph) GetFirstInvalidEdge(n Index) Index {
	return Index(len(g.nodes[n].edges))
}

func (g *MutableGraph) GetEdge(n, e Index) (Index, EdgeWeight) {
	he := g.nodes[n].edges[e]
	return he.target, he.weight
}

func (g *MutableGraph) GetEdgeTarget(n, e Index) Index {
	return g.nodes[n].edges[e].target
}

func (g *MutableGraph) GetEdgeWeight(n, e Index) EdgeWeight {
	return g.nodes[n].edges[e].weight
}

// SetEdgeWeight updates both half-edges so twins always agree.
func (g *MutableGraph) SetEdgeWeight(n, e Index, w EdgeWeight) {
	he := &g.nodes[n].edges[e]
	he.weight = w
	g.nodes[he.target].edges[he.reverse].weight = w
}

func (g *MutableGraph) GetReverseEdge(n, e Index) Index {
	return g.nodes[n].edges[e].reverse
}

func (g *MutableGraph) GetWeightedNodeDegree(n Index) EdgeWeight {
	var deg EdgeWeight
	for _, he := range g.nodes[n].edges {
		deg += he.weight
	}
	return deg
}

func (g *MutableGraph) ContainedVertices(n Index) []Index {
	return g.nodes[n].contained
}

// SetContainedVertices replaces n's contained list. The caller is
// responsible for keeping currentPosition consistent, mirroring how the
// reducers clear a node before contracting it away.
func (g *MutableGraph) SetContainedVertices(n Index, contained []Index) {
	g.nodes[n].contained = contained
}

func (g *MutableGraph) GetCurrentPosition(v Index) Index {
	return g.currentPosition[v]
}

func (g *MutableGraph) SetCurrentPosition(v, pos Index) {
	g.currentPosition[v] = pos
}

// NewEmptyNode appends a node with no contained vertices and returns its id.
func (g *MutableGraph) NewEmptyNode() Index {
	g.nodes = append(g.nodes, superNode{})
	return Index(len(g.nodes) - 1)
}

// NewEdgeOrder inserts an undirected edge {u, v} of weight w as two
// index-linked half-edges.
func (g *MutableGraph) NewEdgeOrder(u, v Index, w EdgeWeight) {
	ue := Index(len(g.nodes[u].edges))
	ve := Index(len(g.nodes[v].edges))
	g.nodes[u].edges = append(g.nodes[u].edges, halfEdge{target: v, weight: w, reverse: ve})
	g.nodes[v].edges = append(g.nodes[v].edges, halfEdge{target: u, weight: w, reverse: ue})
}

// findEdge returns the index of u's edge to target, or UNDEFINED_EDGE.
func (g *MutableGraph) findEdge(u, target Index) Index {
	for e, he := range g.nodes[u].edges {
		if he.target == target {
			return Index(e)
		}
	}
	return UNDEFINED_EDGE
}

// removeHalfEdge drops slot e from n's edge list by swapping the last
// half-edge into it and repairing that twin's back link.
func (g *MutableGraph) removeHalfEdge(n, e Index) {
	edges := g.nodes[n].edges
	last := Index(len(edges) - 1)
	if e != last {
		moved := edges[last]
		edges[e] = moved
		g.nodes[moved.target].edges[moved.reverse].reverse = e
	}
	g.nodes[n].edges = edges[:last]
}

// DeleteEdge removes the undirected edge (n, e), both half-edges.
func (g *MutableGraph) DeleteEdge(n, e Index) {
	target := g.nodes[n].edges[e].target
	reverse := g.nodes[n].edges[e].reverse
	g.removeHalfEdge(n, e)
	g.removeHalfEdge(target, reverse)
}

// removeNode compacts the node slice by moving the last node into slot n.
// All twin links and current positions of the moved node are repaired.
func (g *MutableGraph) removeNode(n Index) {
	last := Index(len(g.nodes) - 1)
	if n != last {
		g.nodes[n] = g.nodes[last]
		for _, he := range g.nodes[n].edges {
			g.nodes[he.target].edges[he.reverse].target = n
		}
		for _, c := range g.nodes[n].contained {
			g.currentPosition[c] = n
		}
	}
	g.nodes = g.nodes[:last]
}

// DeleteVertex drops n and all incident edges. Its contained vertices are
// marked UNDEFINED_NODE; they can be reinstalled later through
// SetContainedVertices/SetCurrentPosition on a fresh node.
func (g *MutableGraph) DeleteVertex(n Index) {
	for len(g.nodes[n].edges) > 0 {
		g.DeleteEdge(n, 0)
	}
	for _, c := range g.nodes[n].contained {
		g.currentPosition[c] = UNDEFINED_NODE
	}
	g.nodes[n].contained = nil
	g.removeNode(n)
}

// mergeInto folds v into u: contained vertices move over, v's edges are
// re-linked onto u with parallel edges collapsed (weights summed) and
// would-be self-loops dropped, then v's slot is compacted away. u's id may
// change if u was the last node; callers re-resolve through currentPosition.
func (g *MutableGraph) mergeInto(u, v Index) {
	for _, c := range g.nodes[v].contained {
		g.currentPosition[c] = u
	}
	g.nodes[u].contained = append(g.nodes[u].contained, g.nodes[v].contained...)
	g.nodes[v].contained = nil

	for len(g.nodes[v].edges) > 0 {
		he := g.nodes[v].edges[0]
		if he.target == u {
			g.DeleteEdge(v, 0)
			continue
		}
		if k := g.findEdge(u, he.target); k != UNDEFINED_EDGE {
			g.nodes[u].edges[k].weight += he.weight
			twin := g.nodes[u].edges[k].reverse
			g.nodes[he.target].edges[twin].weight += he.weight
			g.DeleteEdge(v, 0)
			continue
		}
		g.nodes[he.target].edges[he.reverse].target = u
		g.nodes[he.target].edges[he.reverse].reverse = Index(len(g.nodes[u].edges))
		g.nodes[u].edges = append(g.nodes[u].edges, he)
		g.removeHalfEdge(v, 0)
	}
	g.removeNode(v)
}

// ContractEdge contracts edge (u, e), folding the edge's target into u.
func (g *MutableGraph) ContractEdge(u, e Index) {
	g.mergeInto(u, g.nodes[u].edges[e].target)
}

// ContractVertexSet merges every node in vtxSet into a single super-node.
// Members are tracked through a representative contained vertex because the
// compaction inside mergeInto renumbers nodes; representatives are processed
// in ascending order so the merge sequence is reproducible.
func (g *MutableGraph) ContractVertexSet(vtxSet map[Index]struct{}) {
	if len(vtxSet) < 2 {
		return
	}
	reps := make([]Index, 0, len(vtxSet))
	for n := range vtxSet {
		reps = append(reps, g.nodes[n].contained[0])
	}
	sort.Slice(reps, func(i, j int) bool { return reps[i] < reps[j] })

	for _, r := range reps[1:] {
		target := g.currentPosition[reps[0]]
		cur := g.currentPosition[r]
		if cur == target {
			continue
		}
		g.mergeInto(target, cur)
	}
}
