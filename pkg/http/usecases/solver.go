package usecases

import (
	"fmt"

	da "github.com/lintang-b-s/mincutx/pkg/datastructure"
	"github.com/lintang-b-s/mincutx/pkg/multicut"
	"github.com/lintang-b-s/mincutx/pkg/reduction"
	"github.com/lintang-b-s/mincutx/pkg/util"
	"go.uber.org/zap"
)

type Edge struct {
	From   da.Index
	To     da.Index
	Weight da.EdgeWeight
}

type SolverService struct {
	log *zap.Logger
}

func NewSolverService(log *zap.Logger) *SolverService {
	return &SolverService{log: log}
}

func buildGraph(numVertices int, edges []Edge) (*da.MutableGraph, error) {
	g := da.NewMutableGraph()
	g.StartConstruction(numVertices)
	for _, e := range edges {
		if int(e.From) >= numVertices || int(e.To) >= numVertices {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
				"edge {%d,%d} references a vertex outside 0..%d", e.From, e.To, numVertices-1)
		}
		if e.From == e.To {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
				"self loop on vertex %d", e.From)
		}
		g.NewEdgeOrder(e.From, e.To, e.Weight)
	}
	return g, nil
}

// SolveMulticut improves a k-way multicut over the submitted graph and
// returns the final block assignment, its cut weight, and the improvement
// over the breadth-first initial solution.
func (s *SolverService) SolveMulticut(numVertices int, edges []Edge,
	terminals []da.Index, seed uint64) ([]da.Index, da.FlowType, da.FlowType, error) {

	g, err := buildGraph(numVertices, edges)
	if err != nil {
		return nil, 0, 0, err
	}
	for _, t := range terminals {
		if int(t) >= numVertices {
			return nil, 0, 0, util.WrapErrorf(nil, util.ErrBadParamInput,
				"terminal %d outside vertex range", t)
		}
	}

	sol := multicut.InitialSolution(g, terminals)
	fixed := make([]bool, numVertices)
	for _, t := range terminals {
		fixed[t] = true
	}

	problem := multicut.NewProblem(g, terminals)
	cfg := multicut.Config{NumTerminals: len(terminals), Seed: seed}
	ls := multicut.NewLocalSearch(cfg, problem, g, terminals, fixed, sol, s.log)
	improvement := ls.ImproveSolution()
	cut := multicut.CutWeight(g, sol)

	s.log.Info("multicut job solved",
		zap.Int("vertices", numVertices), zap.Int("terminals", len(terminals)),
		zap.Int64("cut", cut), zap.Int64("improvement", improvement))

	return sol, cut, improvement, nil
}

// ReduceGraph runs the heavy-edge and cycle-edge reductions for a known
// minimum cut value and returns the surviving graph as an edge list plus the
// sizes of the two reduction logs.
func (s *SolverService) ReduceGraph(numVertices int, edges []Edge,
	mincut da.EdgeWeight) (int, []Edge, int, int, error) {

	if mincut <= 0 {
		return 0, nil, 0, 0, util.WrapErrorf(nil, util.ErrBadParamInput,
			"mincut must be positive, got %d", mincut)
	}
	g, err := buildGraph(numVertices, edges)
	if err != nil {
		return 0, nil, 0, 0, err
	}

	he := reduction.NewHeavyEdges(mincut)
	cactusEdges := he.RemoveHeavyEdges(g)
	cycleEdges := he.ContractCycleEdges(g)

	reduced := make([]Edge, 0, g.NumberOfEdges())
	for n := da.Index(0); n < g.NumberOfNodes(); n++ {
		for e := da.Index(0); e < g.GetFirstInvalidEdge(n); e++ {
			target, w := g.GetEdge(n, e)
			if n < target {
				reduced = append(reduced, Edge{From: n, To: target, Weight: w})
			}
		}
	}

	s.log.Info(fmt.Sprintf("reduce job: %d -> %d nodes", numVertices, g.NumberOfNodes()),
		zap.Int("cactus_edges", len(cactusEdges)), zap.Int("cycle_edges", len(cycleEdges)))

	return int(g.NumberOfNodes()), reduced, len(cactusEdges), len(cycleEdges), nil
}
