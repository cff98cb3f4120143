package logger

import (
	"io"
	"os"
	"time"

	"github.com/lucasaveiro/service-scheduler/config"
	"github.com/lucasaveiro/service-scheduler/shared/constant"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultLevel = zerolog.InfoLevel

// Init replaces the global logger with New writing to stdout and applies the configured level.
func Init(cfg *config.Config, component string) {
	zerolog.TimeFieldFormat = time.RFC3339

	log.Logger = New(cfg, component, os.Stdout)

	level := Level(cfg)
	zerolog.SetGlobalLevel(level)

	log.Info().Str("loglevel", level.String()).Msg("Zerolog initialized.")
}

// New writes human readable lines in development and JSON everywhere else.
// Every event carries the app name and the component that emitted it.
func New(cfg *config.Config, component string, out io.Writer) zerolog.Logger {
	if cfg.Server.Env == constant.ServerEnvDevelopment {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).With().
		Timestamp().
		Str("app", cfg.App.Name).
		Str("component", component).
		Logger()
}

// Level parses SERVER_LOG_LEVEL, defaulting to info.
func Level(cfg *config.Config) zerolog.Level {
	if cfg.Server.LogLevel == "" {
		return defaultLevel
	}

	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		return defaultLevel
	}

	return level
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}
