package main

import (
	"flag"

	"github.com/lintang-b-s/mincutx/pkg/datastructure"
	log "github.com/lintang-b-s/mincutx/pkg/logger"
	"github.com/lintang-b-s/mincutx/pkg/reduction"
	"go.uber.org/zap"
)

var (
	graphFile  = flag.String("graph", "./data/graph.metis", "input graph in METIS format (optionally .bz2)")
	outFile    = flag.String("out", "./data/graph_reduced.metis", "output file for the reduced graph")
	mincut     = flag.Int64("mincut", 0, "known minimum cut value of the input graph")
	withCycles = flag.Bool("cycles", true, "also contract half-mincut cycle super-nodes")
)

func main() {
	flag.Parse()
	logger, err := log.New()
	if err != nil {
		panic(err)
	}

	graph, err := datastructure.ReadMetisGraph(*graphFile)
	if err != nil {
		panic(err)
	}

	nodesBefore := graph.NumberOfNodes()
	edgesBefore := graph.NumberOfEdges()

	he := reduction.NewHeavyEdges(*mincut)
	cactusEdges := he.RemoveHeavyEdges(graph)

	var cycleEdges []reduction.CycleEdge
	if *withCycles {
		cycleEdges = he.ContractCycleEdges(graph)
	}

	logger.Info("graph reduced",
		zap.Int64("mincut", *mincut),
		zap.Uint32("nodes_before", uint32(nodesBefore)),
		zap.Uint32("nodes_after", uint32(graph.NumberOfNodes())),
		zap.Int("edges_before", edgesBefore),
		zap.Int("edges_after", graph.NumberOfEdges()),
		zap.Int("cactus_edges", len(cactusEdges)),
		zap.Int("cycle_edges", len(cycleEdges)))

	if err := datastructure.WriteMetisGraph(graph, *outFile); err != nil {
		panic(err)
	}
}
