package controllers

type graphEdge struct {
	From   uint32 `json:"from"`
	To     uint32 `json:"to"`
	Weight int64  `json:"weight" validate:"required,min=1"`
}

type multicutRequest struct {
	NumVertices int         `json:"num_vertices" validate:"required,min=2"`
	Edges       []graphEdge `json:"edges" validate:"required,min=1,dive"`
	Terminals   []uint32    `json:"terminals" validate:"required,min=2"`
	Seed        uint64      `json:"seed"`
}

type multicutResponse struct {
	Solution    []uint32 `json:"solution"`
	CutWeight   int64    `json:"cut_weight"`
	Improvement int64    `json:"improvement"`
}

func NewMulticutResponse(solution []uint32, cutWeight, improvement int64) multicutResponse {
	return multicutResponse{
		Solution:    solution,
		CutWeight:   cutWeight,
		Improvement: improvement,
	}
}

type reduceRequest struct {
	NumVertices int         `json:"num_vertices" validate:"required,min=2"`
	Edges       []graphEdge `json:"edges" validate:"required,min=1,dive"`
	Mincut      int64       `json:"mincut" validate:"required,min=1"`
}

type reduceResponse struct {
	NumVertices int         `json:"num_vertices"`
	Edges       []graphEdge `json:"edges"`
	CactusEdges int         `json:"cactus_edges"`
	CycleEdges  int         `json:"cycle_edges"`
}

func NewReduceResponse(numVertices int, edges []graphEdge, cactusEdges, cycleEdges int) reduceResponse {
	return reduceResponse{
		NumVertices: numVertices,
		Edges:       edges,
		CactusEdges: cactusEdges,
		CycleEdges:  cycleEdges,
	}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
