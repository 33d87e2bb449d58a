package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	da "github.com/lintang-b-s/mincutx/pkg/datastructure"
	helper "github.com/lintang-b-s/mincutx/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/mincutx/pkg/http/usecases"
	"go.uber.org/zap"
)

type solverAPI struct {
	solverService SolverService
	log           *zap.Logger
}

func New(solverService SolverService, log *zap.Logger) *solverAPI {
	return &solverAPI{
		solverService: solverService,
		log:           log,
	}
}

func (api *solverAPI) Routes(group *helper.RouteGroup) {
	group.POST("/multicut", api.solveMulticut)
	group.POST("/reduce", api.reduceGraph)
}

func (api *solverAPI) validateRequest(w http.ResponseWriter, r *http.Request, request interface{}) bool {
	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return false
	}
	return true
}

func (api *solverAPI) solveMulticut(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request multicutRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if !api.validateRequest(w, r, request) {
		return
	}

	edges := make([]usecases.Edge, 0, len(request.Edges))
	for _, e := range request.Edges {
		edges = append(edges, usecases.Edge{
			From:   da.Index(e.From),
			To:     da.Index(e.To),
			Weight: e.Weight,
		})
	}
	terminals := make([]da.Index, 0, len(request.Terminals))
	for _, t := range request.Terminals {
		terminals = append(terminals, da.Index(t))
	}

	sol, cut, improvement, err := api.solverService.SolveMulticut(
		request.NumVertices, edges, terminals, request.Seed)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	solution := make([]uint32, len(sol))
	for i, b := range sol {
		solution[i] = uint32(b)
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": NewMulticutResponse(solution, cut, improvement)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *solverAPI) reduceGraph(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request reduceRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if !api.validateRequest(w, r, request) {
		return
	}

	edges := make([]usecases.Edge, 0, len(request.Edges))
	for _, e := range request.Edges {
		edges = append(edges, usecases.Edge{
			From:   da.Index(e.From),
			To:     da.Index(e.To),
			Weight: e.Weight,
		})
	}

	numVertices, reduced, cactusEdges, cycleEdges, err := api.solverService.ReduceGraph(
		request.NumVertices, edges, request.Mincut)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	outEdges := make([]graphEdge, 0, len(reduced))
	for _, e := range reduced {
		outEdges = append(outEdges, graphEdge{
			From:   uint32(e.From),
			To:     uint32(e.To),
			Weight: e.Weight,
		})
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": NewReduceResponse(numVertices, outEdges, cactusEdges, cycleEdges)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
