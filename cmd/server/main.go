package main

import (
	"context"

	"github.com/lintang-b-s/mincutx/pkg/http"
	"github.com/lintang-b-s/mincutx/pkg/http/usecases"
	"github.com/lintang-b-s/mincutx/pkg/logger"
	"github.com/lintang-b-s/mincutx/pkg/util"
)

func main() {
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	_ = util.ReadConfig() // defaults apply when no config file is present

	solverService := usecases.NewSolverService(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	api := http.NewServer(logger)
	if _, err := api.Use(ctx, logger, solverService); err != nil {
		panic(err)
	}

	signal := http.GracefulShutdown()
	<-signal
	logger.Info("shutting down server")
	cancel()
}
