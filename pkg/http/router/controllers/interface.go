package controllers

import (
	da "github.com/lintang-b-s/mincutx/pkg/datastructure"
	"github.com/lintang-b-s/mincutx/pkg/http/usecases"
)

type SolverService interface {
	SolveMulticut(numVertices int, edges []usecases.Edge, terminals []da.Index,
		seed uint64) ([]da.Index, da.FlowType, da.FlowType, error)
	ReduceGraph(numVertices int, edges []usecases.Edge,
		mincut da.EdgeWeight) (int, []usecases.Edge, int, int, error)
}
