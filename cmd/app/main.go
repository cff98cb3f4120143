package main

import (
	"github.com/lucasaveiro/service-scheduler/config"
	"github.com/lucasaveiro/service-scheduler/di"
	"github.com/lucasaveiro/service-scheduler/helper"
	"github.com/lucasaveiro/service-scheduler/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Service Scheduler API
// @version 1.0
// @description Booking core for small service businesses.
// @BasePath /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.Init(cfg, "http")

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid service configuration")
	}

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate database")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
