package main

import (
	"os"

	"github.com/lucasaveiro/service-scheduler/config"
	"github.com/lucasaveiro/service-scheduler/helper"
	"github.com/lucasaveiro/service-scheduler/shared/logger"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	cfg := config.Get()

	logger.Init(cfg, "migrate")

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration action is required: up, down, step-up, drop, version or force <version>")
	}

	if err := helper.Runner(cfg, helper.Action(os.Args[1]), os.Args[2:]...); err != nil {
		log.Fatal().Err(err).Str("action", os.Args[1]).Msg("Migration failed")
	}
}
