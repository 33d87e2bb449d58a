package multicut

import (
	da "github.com/lintang-b-s/mincutx/pkg/datastructure"
)

// Terminal is a block anchor: originalID is the block id (the terminal's
// index in the original terminal list), position its current super-node in
// the problem graph.
type Terminal struct {
	originalID da.Index
	position   da.Index
}

func NewTerminal(originalID, position da.Index) Terminal {
	return Terminal{originalID: originalID, position: position}
}

func (t Terminal) OriginalID() da.Index {
	return t.originalID
}

func (t Terminal) Position() da.Index {
	return t.position
}

// Problem is one k-way multicut instance: a live (possibly contracted)
// graph, the terminal anchors, and the mapping from original-graph vertices
// to the original ids tracked by the graph's currentPosition table.
type Problem struct {
	graph     *da.MutableGraph
	terminals []Terminal
	mapped    []da.Index
}

// NewProblem builds a problem over graph with the given terminal vertices.
// The mapping starts as the identity; it survives later contractions because
// positions are always re-resolved through the graph.
func NewProblem(graph *da.MutableGraph, terminalVertices []da.Index) *Problem {
	mapped := make([]da.Index, graph.NumberOfOriginalVertices())
	for i := range mapped {
		mapped[i] = da.Index(i)
	}

	p := &Problem{
		graph:     graph,
		terminals: make([]Terminal, 0, len(terminalVertices)),
		mapped:    mapped,
	}
	for i, t := range terminalVertices {
		p.terminals = append(p.terminals,
			NewTerminal(da.Index(i), graph.GetCurrentPosition(p.mapped[t])))
	}
	return p
}

func (p *Problem) Graph() *da.MutableGraph {
	return p.graph
}

func (p *Problem) Terminals() []Terminal {
	return p.terminals
}

// Mapped returns the original id of an original-graph vertex.
func (p *Problem) Mapped(v da.Index) da.Index {
	return p.mapped[v]
}
