package main

import (
	"github.com/lucasaveiro/service-scheduler/config"
	"github.com/lucasaveiro/service-scheduler/di"
	"github.com/lucasaveiro/service-scheduler/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.Init(cfg, "worker")

	worker := di.InitializeWorker()
	worker.Serve()
}
