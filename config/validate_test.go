package config_test

import (
	"testing"

	"github.com/lucasaveiro/service-scheduler/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = "access"
	cfg.JWT.RefreshSecret = "refresh"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 10080
	cfg.App.RateLimiter.MaxRequests = 100
	cfg.App.RateLimiter.WindowSeconds = 60
	cfg.External.Otel.SampleRatio = 1

	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(cfg *config.Config)
		wantField string
	}{
		{
			name:   "valid",
			mutate: func(*config.Config) {},
		},
		{
			name:      "missing access secret",
			mutate:    func(cfg *config.Config) { cfg.JWT.AccessSecret = "" },
			wantField: "AccessSecret",
		},
		{
			name:      "refresh secret reuses access secret",
			mutate:    func(cfg *config.Config) { cfg.JWT.RefreshSecret = "access" },
			wantField: "RefreshSecret",
		},
		{
			name:      "refresh token outlived by access token",
			mutate:    func(cfg *config.Config) { cfg.JWT.RefreshExpireMin = 10 },
			wantField: "RefreshExpireMin",
		},
		{
			name: "reminders enabled without a schedule",
			mutate: func(cfg *config.Config) {
				cfg.Reminder.Enable = true
				cfg.Reminder.Cron = ""
			},
			wantField: "Cron",
		},
		{
			name:      "sample ratio above one",
			mutate:    func(cfg *config.Config) { cfg.External.Otel.SampleRatio = 1.5 },
			wantField: "SampleRatio",
		},
		{
			name:      "empty rate limit window",
			mutate:    func(cfg *config.Config) { cfg.App.RateLimiter.WindowSeconds = 0 },
			wantField: "WindowSeconds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.wantField == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantField)
		})
	}
}
