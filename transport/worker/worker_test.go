package worker_test

import (
	"context"
	"testing"

	"github.com/lucasaveiro/service-scheduler/config"
	kafkaMocks "github.com/lucasaveiro/service-scheduler/infras/kafka/mocks"
	reminderService "github.com/lucasaveiro/service-scheduler/internal/domains/reminder/service"
	reminderMocks "github.com/lucasaveiro/service-scheduler/internal/domains/reminder/service/mocks"
	"github.com/lucasaveiro/service-scheduler/internal/notification"
	notificationMocks "github.com/lucasaveiro/service-scheduler/internal/notification/mocks"
	"github.com/lucasaveiro/service-scheduler/transport/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestWorker_Run(t *testing.T) {
	tests := []struct {
		name        string
		enable      bool
		cron        string
		wantConsume bool
		wantEntries int
		wantErr     bool
	}{
		{
			name:        "reminders disabled",
			cron:        "0 9 * * *",
			wantConsume: true,
		},
		{
			name:        "reminders enabled",
			enable:      true,
			cron:        "0 9 * * *",
			wantConsume: true,
			wantEntries: 1,
		},
		{
			name:    "invalid reminder schedule",
			enable:  true,
			cron:    "every morning",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			cfg := &config.Config{}
			cfg.Kafka.ConsumerGroup = "scheduler-worker"
			cfg.Kafka.Topic.BookingEvents = "booking-events"
			cfg.Reminder.Enable = tt.enable
			cfg.Reminder.Cron = tt.cron

			client := kafkaMocks.NewMockClient(ctrl)
			if tt.wantConsume {
				client.EXPECT().Consume(gomock.Any(), "scheduler-worker", "booking-events", gomock.Any())
			}

			consumer := notification.NewConsumer(client, notificationMocks.NewMockNotifier(ctrl), cfg)
			scheduler := reminderService.NewScheduler(reminderMocks.NewMockReminder(ctrl), cfg)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			err := worker.New(cfg, consumer, scheduler).Run(ctx)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "failed to start reminder scheduler")

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantEntries, scheduler.Entries())
		})
	}
}
