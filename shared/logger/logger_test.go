package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/lucasaveiro/service-scheduler/config"
	"github.com/lucasaveiro/service-scheduler/shared/constant"
	"github.com/lucasaveiro/service-scheduler/shared/logger"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{name: "unset", level: "", want: zerolog.InfoLevel},
		{name: "debug", level: "debug", want: zerolog.DebugLevel},
		{name: "warn", level: "warn", want: zerolog.WarnLevel},
		{name: "unknown", level: "loud", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.level

			assert.Equal(t, tt.want, logger.Level(cfg))
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("json outside development", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.App.Name = "service-scheduler"
		cfg.Server.Env = constant.ServerEnvProduction

		var buf bytes.Buffer

		log := logger.New(cfg, "worker", &buf)
		log.Info().Str("booking_id", "b-1").Msg("reminder sent")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))

		assert.Equal(t, "service-scheduler", line["app"])
		assert.Equal(t, "worker", line["component"])
		assert.Equal(t, "b-1", line["booking_id"])
		assert.Equal(t, "reminder sent", line["message"])
		assert.Contains(t, line, "time")
	})

	t.Run("console in development", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Server.Env = constant.ServerEnvDevelopment

		var buf bytes.Buffer

		log := logger.New(cfg, "http", &buf)
		log.Info().Msg("Starting up HTTP server.")

		assert.Contains(t, buf.String(), "Starting up HTTP server.")
		assert.False(t, json.Valid(buf.Bytes()))
	})
}
