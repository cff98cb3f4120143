// Package timezone pins every wall clock reading of the app to APP_TIMEZONE.
// Booking dates and times are stored without an offset and are read in this location.
package timezone

import (
	"sync"
	"time"

	"github.com/lucasaveiro/service-scheduler/config"

	"github.com/rs/zerolog/log"
)

var (
	appLocation = time.UTC

	mu    sync.RWMutex
	clock = time.Now
)

func init() {
	cfg := config.Get()

	if cfg.App.Timezone == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")

		return
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", cfg.App.Timezone).
			Msg("Failed to load timezone, falling back to UTC. Use IANA names like 'America/New_York'")

		return
	}

	appLocation = loc

	log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")
}

// Now returns the current time in the application timezone.
func Now() time.Time {
	mu.RLock()
	defer mu.RUnlock()

	return clock().In(appLocation)
}

// Today returns midnight of the current day in the application timezone.
func Today() time.Time {
	now := Now()

	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, appLocation)
}

// Freeze makes Now return at until the returned func is called.
func Freeze(at time.Time) (restore func()) {
	mu.Lock()
	defer mu.Unlock()

	previous := clock
	clock = func() time.Time { return at }

	return func() {
		mu.Lock()
		defer mu.Unlock()

		clock = previous
	}
}

func ToAppTime(t time.Time) time.Time {
	return t.In(appLocation)
}

func GetLocation() *time.Location {
	return appLocation
}

// Parse reads value as a wall clock reading in the application timezone.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, appLocation)
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
