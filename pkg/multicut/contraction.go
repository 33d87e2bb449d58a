package multicut

import (
	da "github.com/lintang-b-s/mincutx/pkg/datastructure"
)

// SetTerminals refreshes every terminal's position after a contraction by
// re-resolving its original vertex through the graph.
func SetTerminals(p *Problem, originalTerminals []da.Index) {
	terminals := p.terminals[:0]
	for i, t := range originalTerminals {
		terminals = append(terminals,
			NewTerminal(da.Index(i), p.graph.GetCurrentPosition(p.Mapped(t))))
	}
	p.terminals = terminals
}

// DeleteTermEdges drops every edge that directly connects two terminal
// super-nodes; such edges always count toward the cut and carry no
// refinement signal.
func DeleteTermEdges(p *Problem, originalTerminals []da.Index) {
	isTerm := make(map[da.Index]struct{}, len(p.terminals))
	for _, t := range p.terminals {
		isTerm[t.position] = struct{}{}
	}

	for _, t := range p.terminals {
		n := t.position
		for e := int(p.graph.GetFirstInvalidEdge(n)) - 1; e >= 0; e-- {
			target := p.graph.GetEdgeTarget(n, da.Index(e))
			if _, ok := isTerm[target]; ok {
				p.graph.DeleteEdge(n, da.Index(e))
			}
		}
	}
}
