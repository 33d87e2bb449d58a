package main

import (
	"flag"

	"github.com/lintang-b-s/mincutx/pkg/concurrent"
	da "github.com/lintang-b-s/mincutx/pkg/datastructure"
	log "github.com/lintang-b-s/mincutx/pkg/logger"
	"github.com/lintang-b-s/mincutx/pkg/multicut"
	"github.com/lintang-b-s/mincutx/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	graphFile    = flag.String("graph", "./data/graph.metis", "input graph in METIS format (optionally .bz2)")
	terminalFile = flag.String("terminals", "./data/terminals.txt", "terminal vertices, one id per line")
	inexact      = flag.Bool("inexact", false, "contract gain-moved vertices into their new blocks afterwards")
)

type searchJob struct {
	seed uint64
}

type searchResult struct {
	seed uint64
	sol  []da.Index
	cut  da.FlowType
}

func main() {
	flag.Parse()
	logger, err := log.New()
	if err != nil {
		panic(err)
	}
	_ = util.ReadConfig() // defaults apply when no config file is present

	viper.SetDefault("NUM_SEARCH_SEEDS", 4)
	viper.SetDefault("SEARCH_WORKERS", 4)
	numSeeds := viper.GetInt("NUM_SEARCH_SEEDS")
	numWorkers := viper.GetInt("SEARCH_WORKERS")

	graph, err := da.ReadMetisGraph(*graphFile)
	if err != nil {
		panic(err)
	}
	terminals, err := da.ReadTerminals(*terminalFile)
	if err != nil {
		panic(err)
	}

	initial := multicut.InitialSolution(graph, terminals)
	fixed := make([]bool, graph.NumberOfNodes())
	for _, t := range terminals {
		fixed[t] = true
	}

	logger.Info("starting multicut local search",
		zap.Uint32("nodes", uint32(graph.NumberOfNodes())),
		zap.Int("edges", graph.NumberOfEdges()),
		zap.Int("terminals", len(terminals)),
		zap.Int64("initial_cut", multicut.CutWeight(graph, initial)))

	// independent restarts: the kernels are single-threaded, but each job
	// owns its solution copy and only reads the shared graph
	pool := concurrent.NewWorkerPool[searchJob, searchResult](numWorkers, numSeeds)
	for s := 0; s < numSeeds; s++ {
		pool.AddJob(searchJob{seed: uint64(s + 1)})
	}
	pool.Close()
	pool.Start(func(job searchJob) searchResult {
		sol := make([]da.Index, len(initial))
		copy(sol, initial)

		problem := multicut.NewProblem(graph, terminals)
		cfg := multicut.Config{
			NumTerminals: len(terminals),
			Inexact:      false,
			Seed:         job.seed,
		}
		ls := multicut.NewLocalSearch(cfg, problem, graph, terminals, fixed, sol, logger)
		ls.ImproveSolution()

		return searchResult{seed: job.seed, sol: sol, cut: multicut.CutWeight(graph, sol)}
	})
	pool.Wait()

	var best *searchResult
	for res := range pool.CollectResults() {
		res := res
		logger.Info("restart finished", zap.Uint64("seed", res.seed), zap.Int64("cut", res.cut))
		if best == nil || res.cut < best.cut {
			best = &res
		}
	}

	if *inexact {
		// rerun the winning seed with move recording on, then contract the
		// moved vertices into their blocks
		problem := multicut.NewProblem(graph, terminals)
		sol := make([]da.Index, len(initial))
		copy(sol, initial)
		cfg := multicut.Config{NumTerminals: len(terminals), Inexact: true, Seed: best.seed}
		ls := multicut.NewLocalSearch(cfg, problem, graph, terminals, fixed, sol, logger)
		ls.ImproveSolution()
		ls.ContractMovedVertices()
		logger.Info("contracted moved vertices",
			zap.Uint32("remaining_nodes", uint32(problem.Graph().NumberOfNodes())))
	}

	logger.Info("multicut local search finished",
		zap.Uint64("best_seed", best.seed),
		zap.Int64("best_cut", best.cut))
}
