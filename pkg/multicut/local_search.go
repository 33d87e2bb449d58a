package multicut

import (
	"sort"

	da "github.com/lintang-b-s/mincutx/pkg/datastructure"
	"github.com/lintang-b-s/mincutx/pkg/maxflow"
	"github.com/lintang-b-s/mincutx/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

// moveCandidate is a deferred relocation target for a boundary vertex with
// negative solo gain; it only fires as half of a paired move.
type moveCandidate struct {
	block da.Index
	gain  int64
	valid bool
}

type blockPair struct {
	a, b    da.Index
	connect da.FlowType
}

// LocalSearch improves a k-way multicut solution by alternating max-flow
// re-partitioning of block pairs with gain-driven single and paired vertex
// moves. The solution vector is owned by the caller and mutated in place.
type LocalSearch struct {
	cfg     Config
	log     *zap.Logger
	problem *Problem

	originalGraph     *da.MutableGraph
	originalTerminals []da.Index
	fixedVertex       []bool
	sol               []da.Index

	movedToNewBlock      map[da.Index]da.Index
	previousConnectivity [][]da.FlowType
	noImprovement        []da.FlowType
	rng                  *rand.Rand
}

func NewLocalSearch(cfg Config, problem *Problem, originalGraph *da.MutableGraph,
	originalTerminals []da.Index, fixedVertex []bool, sol []da.Index,
	log *zap.Logger) *LocalSearch {

	previousConnectivity := make([][]da.FlowType, len(originalTerminals))
	for i := range previousConnectivity {
		previousConnectivity[i] = make([]da.FlowType, len(originalTerminals))
	}

	return &LocalSearch{
		cfg:                  cfg,
		log:                  log,
		problem:              problem,
		originalGraph:        originalGraph,
		originalTerminals:    originalTerminals,
		fixedVertex:          fixedVertex,
		sol:                  sol,
		movedToNewBlock:      make(map[da.Index]da.Index),
		previousConnectivity: previousConnectivity,
		rng:                  util.NewRng(cfg.Seed),
	}
}

// flowBetweenBlocks rebuilds the bipartition between terminal1's and
// terminal2's blocks by solving a max-flow problem on the induced subgraph.
// Node 0 aggregates terminal1's fixed vertices, node 1 terminal2's; every
// non-fixed vertex gets a fresh id from 2 upward. Returns the improvement
// over the previous inter-block weight and the new flow value.
func (ls *LocalSearch) flowBetweenBlocks(terminal1, terminal2 da.Index) (da.EdgeWeight, da.FlowType) {
	numOriginal := ls.originalGraph.NumberOfNodes()
	mapping := make([]da.Index, numOriginal)
	for i := range mapping {
		mapping[i] = da.UNDEFINED_NODE
	}

	var solWeight da.FlowType
	id := da.Index(2)
	for n := da.Index(0); n < numOriginal; n++ {
		if ls.sol[n] != terminal1 && ls.sol[n] != terminal2 {
			continue
		}
		if ls.fixedVertex[n] {
			if ls.sol[n] == terminal1 {
				mapping[n] = 0
			} else {
				mapping[n] = 1
			}
		} else {
			mapping[n] = id
			id++
		}
	}

	flowGraph := da.NewMutableGraph()
	flowGraph.StartConstruction(int(id))

	edgesToFixed0 := make(map[da.Index]da.EdgeWeight)
	edgesToFixed1 := make(map[da.Index]da.EdgeWeight)
	for n := da.Index(0); n < numOriginal; n++ {
		if ls.sol[n] != terminal1 && ls.sol[n] != terminal2 {
			continue
		}
		mN := mapping[n]
		for e := da.Index(0); e < ls.originalGraph.GetFirstInvalidEdge(n); e++ {
			t, w := ls.originalGraph.GetEdge(n, e)
			if ls.sol[t] != terminal1 && ls.sol[t] != terminal2 {
				continue
			}
			mT := mapping[t]
			// each undirected edge is inserted once, from the lower-mapped
			// endpoint, and never between the two super-sources
			if mN >= mT || mT < 2 {
				continue
			}

			if ls.sol[t] != ls.sol[n] {
				solWeight += w
			}

			if mN < 2 {
				if mN == 0 {
					edgesToFixed0[mT] += w
				} else {
					edgesToFixed1[mT] += w
				}
			} else {
				flowGraph.NewEdgeOrder(mN, mT, w)
			}
		}
	}
	for _, n := range sortedKeys(edgesToFixed0) {
		flowGraph.NewEdgeOrder(n, 0, edgesToFixed0[n])
	}
	for _, n := range sortedKeys(edgesToFixed1) {
		flowGraph.NewEdgeOrder(n, 1, edgesToFixed1[n])
	}

	dinic := maxflow.NewDinicMaxFlow(flowGraph)
	f, s := dinic.SolveMaxFlowMinCut([]da.Index{0, 1}, 0, true)

	zero := make(map[da.Index]struct{}, len(s))
	for _, v := range s {
		zero[v] = struct{}{}
	}

	if f < solWeight {
		ls.log.Debug("flow refinement improved block pair",
			zap.Uint32("terminal1", uint32(terminal1)), zap.Uint32("terminal2", uint32(terminal2)),
			zap.Int64("before", solWeight), zap.Int64("after", f))
	} else {
		ls.noImprovement = append(ls.noImprovement, f)
	}

	improvement := da.EdgeWeight(solWeight - f)
	for n := da.Index(0); n < numOriginal; n++ {
		if ls.sol[n] != terminal1 && ls.sol[n] != terminal2 {
			continue
		}
		_, onSourceSide := zero[mapping[n]]
		if ls.fixedVertex[n] {
			util.AssertPanic(onSourceSide == (ls.sol[n] == terminal1),
				"fixed vertex changed sides in flow-based refinement")
		}
		if onSourceSide {
			ls.sol[n] = terminal1
		} else {
			ls.sol[n] = terminal2
		}
	}
	return improvement, f
}

// flowLocalSearch recomputes the inter-block connectivity matrix and runs
// flowBetweenBlocks, in random order, on every pair whose connectivity
// changed since the previous pass.
func (ls *LocalSearch) flowLocalSearch() da.EdgeWeight {
	numTerminals := len(ls.originalTerminals)
	blockConnectivity := make([][]da.FlowType, numTerminals)
	for i := range blockConnectivity {
		blockConnectivity[i] = make([]da.FlowType, numTerminals)
	}

	var improvement da.EdgeWeight

	for n := da.Index(0); n < ls.originalGraph.NumberOfNodes(); n++ {
		blockN := ls.sol[n]
		for e := da.Index(0); e < ls.originalGraph.GetFirstInvalidEdge(n); e++ {
			t, w := ls.originalGraph.GetEdge(n, e)
			if ls.sol[t] > blockN {
				if !ls.fixedVertex[n] || !ls.fixedVertex[t] {
					blockConnectivity[blockN][ls.sol[t]] += w
				}
			}
		}
	}

	neighboringBlocks := make([]blockPair, 0)
	for i := 0; i < numTerminals; i++ {
		for j := 0; j < numTerminals; j++ {
			connect := blockConnectivity[i][j]
			if connect != ls.previousConnectivity[i][j] {
				neighboringBlocks = append(neighboringBlocks,
					blockPair{a: da.Index(i), b: da.Index(j), connect: connect})
			}
		}
	}

	util.PermutateVectorGood(neighboringBlocks, ls.rng)

	for _, nb := range neighboringBlocks {
		impr, connect := ls.flowBetweenBlocks(nb.a, nb.b)
		improvement += impr
		ls.previousConnectivity[nb.a][nb.b] = connect
	}

	if len(ls.noImprovement) > 0 {
		ls.log.Debug("block pairs without flow improvement",
			zap.Int("pairs", len(ls.noImprovement)))
	}
	ls.noImprovement = ls.noImprovement[:0]

	return improvement
}

// gainLocalSearch walks the vertices in a random order and relocates
// boundary vertices whose gain allows it, either alone or paired with a
// same-block neighbor that is already waiting to move to the same block.
func (ls *LocalSearch) gainLocalSearch() da.EdgeWeight {
	var improvement da.EdgeWeight
	numOriginal := int(ls.originalGraph.NumberOfNodes())

	inBoundary := make([]bool, numOriginal)
	for i := range inBoundary {
		inBoundary[i] = true
	}
	nextBest := make([]moveCandidate, numOriginal)

	isTerm := make([]bool, ls.problem.Graph().NumberOfNodes())
	for _, t := range ls.problem.Terminals() {
		isTerm[t.position] = true
	}

	permute := util.PermutateIndexVector[da.Index](numOriginal, ls.rng)

	for v := 0; v < numOriginal; v++ {
		n := permute[v]
		o := ls.problem.Mapped(n)
		pos := ls.problem.Graph().GetCurrentPosition(o)
		if ls.fixedVertex[n] || !inBoundary[n] ||
			pos == da.UNDEFINED_NODE || isTerm[pos] {
			continue
		}

		blockwgt := make([]da.EdgeWeight, ls.cfg.NumTerminals)
		ownBlockID := ls.sol[n]
		for e := da.Index(0); e < ls.originalGraph.GetFirstInvalidEdge(n); e++ {
			t, w := ls.originalGraph.GetEdge(n, e)
			blockwgt[ls.sol[t]] += w
		}

		ownBlockWgt := blockwgt[ownBlockID]
		maxBlockID := da.Index(0)
		var maxBlockWgt da.EdgeWeight
		for i := range blockwgt {
			if da.Index(i) != ownBlockID && blockwgt[i] > maxBlockWgt {
				maxBlockID = da.Index(i)
				maxBlockWgt = blockwgt[i]
			}
		}

		if maxBlockWgt > 0 {
			inBoundary[n] = false
		}

		gain := int64(maxBlockWgt) - int64(ownBlockWgt)

		doublemoved := false
		for e := da.Index(0); e < ls.originalGraph.GetFirstInvalidEdge(n); e++ {
			t, w := ls.originalGraph.GetEdge(n, e)
			nbr := nextBest[t]
			movegain := nbr.gain + gain + 2*w
			if ls.sol[t] == ls.sol[n] && nbr.valid && nbr.block == maxBlockID &&
				movegain > 0 && movegain > gain {
				ls.sol[n] = maxBlockID
				ls.sol[t] = maxBlockID
				improvement += da.EdgeWeight(movegain)
				if ls.cfg.Inexact {
					ls.movedToNewBlock[n] = maxBlockID
					ls.movedToNewBlock[t] = maxBlockID
				}

				doublemoved = true

				ls.invalidateNeighbors(n, nextBest, inBoundary)
				nextBest[t] = moveCandidate{}
				ls.invalidateNeighbors(t, nextBest, inBoundary)
				break
			}
		}

		if doublemoved {
			continue
		}

		if gain >= 0 {
			ls.sol[n] = maxBlockID
			if ls.cfg.Inexact {
				ls.movedToNewBlock[n] = maxBlockID
			}
			improvement += da.EdgeWeight(gain)
			ls.invalidateNeighbors(n, nextBest, inBoundary)
		} else {
			nextBest[n] = moveCandidate{block: maxBlockID, gain: gain, valid: true}
		}
	}
	return improvement
}

func (ls *LocalSearch) invalidateNeighbors(n da.Index, nextBest []moveCandidate,
	inBoundary []bool) {
	for e := da.Index(0); e < ls.originalGraph.GetFirstInvalidEdge(n); e++ {
		b := ls.originalGraph.GetEdgeTarget(n, e)
		nextBest[b] = moveCandidate{}
		inBoundary[b] = true
	}
}

// ImproveSolution alternates flow-based and gain-based passes until a full
// round yields no improvement. The returned total is non-negative.
func (ls *LocalSearch) ImproveSolution() da.FlowType {
	var totalImprovement da.FlowType
	changeFound := true
	lsIter := 0
	for changeFound {
		changeFound = false
		impFlow := ls.flowLocalSearch()
		totalImprovement += da.FlowType(impFlow)
		impGain := ls.gainLocalSearch()
		totalImprovement += da.FlowType(impGain)

		if impFlow > 0 || impGain > 0 {
			changeFound = true
		}

		ls.log.Info("local search iteration complete",
			zap.Int("iteration", lsIter),
			zap.Int64("flow_improvement", impFlow),
			zap.Int64("gain_improvement", impGain))
		lsIter++
	}
	return totalImprovement
}

// ContractMovedVertices contracts, block by block in ascending id order, the
// current super-nodes of every vertex the gain search moved into that block,
// together with the block's terminal. Terminal positions are refreshed after
// every contraction and leftover inter-terminal edges dropped at the end.
func (ls *LocalSearch) ContractMovedVertices() {
	numTerminals := len(ls.originalTerminals)

	movedVertices := make([]da.Index, 0, len(ls.movedToNewBlock))
	for v := range ls.movedToNewBlock {
		movedVertices = append(movedVertices, v)
	}
	sort.Slice(movedVertices, func(i, j int) bool { return movedVertices[i] < movedVertices[j] })

	for i := 0; i < numTerminals; i++ {
		isTerm := make(map[da.Index]struct{}, numTerminals)
		ctrSet := make(map[da.Index]struct{})
		for _, t := range ls.problem.Terminals() {
			isTerm[t.position] = struct{}{}
			if int(t.originalID) == i {
				ctrSet[t.position] = struct{}{}
			}
		}

		for _, v := range movedVertices {
			if int(ls.movedToNewBlock[v]) != i {
				continue
			}
			m := ls.problem.Mapped(v)
			curr := ls.problem.Graph().GetCurrentPosition(m)
			if curr == da.UNDEFINED_NODE {
				continue
			}
			if _, ok := isTerm[curr]; !ok {
				ctrSet[curr] = struct{}{}
			}
		}

		if len(ctrSet) > 1 {
			ls.problem.Graph().ContractVertexSet(ctrSet)
		}
		SetTerminals(ls.problem, ls.originalTerminals)
	}
	DeleteTermEdges(ls.problem, ls.originalTerminals)
}

func sortedKeys(m map[da.Index]da.EdgeWeight) []da.Index {
	keys := make([]da.Index, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
