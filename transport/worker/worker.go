package worker

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/lucasaveiro/service-scheduler/config"
	reminderService "github.com/lucasaveiro/service-scheduler/internal/domains/reminder/service"
	"github.com/lucasaveiro/service-scheduler/internal/notification"

	"github.com/rs/zerolog/log"
)

// Worker runs the background side of the app: booking event notifications and the reminder schedule.
type Worker struct {
	Config    *config.Config
	Consumer  *notification.Consumer
	Scheduler *reminderService.Scheduler
}

func New(cfg *config.Config, consumer *notification.Consumer, scheduler *reminderService.Scheduler) *Worker {
	return &Worker{
		Config:    cfg,
		Consumer:  consumer,
		Scheduler: scheduler,
	}
}

// Serve runs until SIGINT or SIGTERM.
func (w *Worker) Serve() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := w.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to start worker")
	}

	log.Info().Msg("Worker stopped.")
}

// Run starts the reminder schedule when enabled and consumes booking events until ctx is done.
func (w *Worker) Run(ctx context.Context) error {
	if w.Config.Reminder.Enable {
		if err := w.Scheduler.Start(ctx); err != nil {
			return fmt.Errorf("failed to start reminder scheduler: %w", err)
		}
	} else {
		log.Info().Msg("Reminder scheduler disabled.")
	}

	w.Consumer.Run(ctx)

	return nil
}
