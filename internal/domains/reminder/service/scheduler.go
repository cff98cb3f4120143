package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lucasaveiro/service-scheduler/config"
	"github.com/lucasaveiro/service-scheduler/shared/timezone"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const runTimeout = 10 * time.Minute

// Scheduler runs day-before reminders on the configured cron spec.
type Scheduler struct {
	cron     *cron.Cron
	reminder Reminder
	spec     string
}

func NewScheduler(reminder Reminder, cfg *config.Config) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(timezone.GetLocation())),
		reminder: reminder,
		spec:     cfg.Reminder.Cron,
	}
}

// Start registers the job and returns once the cron loop is running. The loop stops with ctx.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), runTimeout)
		defer cancel()

		if _, err := s.reminder.SendDayBefore(runCtx); err != nil {
			log.Error().Err(err).Msg("day-before reminder run failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", s.spec, err)
	}

	s.cron.Start()
	log.Info().Str("spec", s.spec).Msg("reminder scheduler started")

	go func() {
		<-ctx.Done()
		<-s.cron.Stop().Done()
		log.Info().Msg("reminder scheduler stopped")
	}()

	return nil
}

// Entries is the number of scheduled jobs.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
