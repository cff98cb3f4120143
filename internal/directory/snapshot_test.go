package directory_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lucasaveiro/service-scheduler/config"
	otelMocks "github.com/lucasaveiro/service-scheduler/infras/otel/mocks"
	"github.com/lucasaveiro/service-scheduler/internal/directory"
	directoryMocks "github.com/lucasaveiro/service-scheduler/internal/directory/mocks"
	bookingModel "github.com/lucasaveiro/service-scheduler/internal/domains/booking/model"
	"github.com/lucasaveiro/service-scheduler/shared/cache"
	cacheMocks "github.com/lucasaveiro/service-scheduler/shared/cache/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const generationKey = "directory:generation:biz-1"

var errMiss = fmt.Errorf("failed to get cache value: %w", cache.Nil)

func newSnapshot(t *testing.T) (directory.Directory, *directoryMocks.MockDirectory, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	next := directoryMocks.NewMockDirectory(ctrl)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Booking.SnapshotCacheTTL = 300

	return directory.NewSnapshot(next, redisCache, cfg, otelMocks.NewOtel()), next, redisCache
}

func atGeneration(redisCache *cacheMocks.MockRedisCache, generation *int64) *gomock.Call {
	return redisCache.EXPECT().Get(gomock.Any(), generationKey, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value any) error {
			if *generation == 0 {
				return errMiss
			}

			*(value.(*int64)) = *generation

			return nil
		})
}

func TestSnapshot_GetBookings(t *testing.T) {
	t.Run("cache hit skips the store", func(t *testing.T) {
		dir, _, redisCache := newSnapshot(t)
		generation := int64(3)

		atGeneration(redisCache, &generation)
		redisCache.EXPECT().Get(gomock.Any(), "directory:bookings:biz-1:3:*:*", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				*(value.(*[]bookingModel.Booking)) = []bookingModel.Booking{{ID: "b-1"}}

				return nil
			})

		got, err := dir.GetBookings(context.Background(), "biz-1", directory.Range{})
		require.NoError(t, err)
		assert.Equal(t, []bookingModel.Booking{{ID: "b-1"}}, got)
	})

	t.Run("cache miss loads and saves under the current generation", func(t *testing.T) {
		dir, next, redisCache := newSnapshot(t)
		generation := int64(0)

		atGeneration(redisCache, &generation)
		redisCache.EXPECT().Get(gomock.Any(), "directory:bookings:biz-1:0:*:*", gomock.Any()).Return(errMiss)
		next.EXPECT().GetBookings(gomock.Any(), "biz-1", directory.Range{}).Return([]bookingModel.Booking{{ID: "b-2"}}, nil)
		redisCache.EXPECT().Save(gomock.Any(), "directory:bookings:biz-1:0:*:*", gomock.Any(), 300).Return(nil)

		got, err := dir.GetBookings(context.Background(), "biz-1", directory.Range{})
		require.NoError(t, err)
		assert.Equal(t, []bookingModel.Booking{{ID: "b-2"}}, got)
	})

	t.Run("unknown generation bypasses the snapshot", func(t *testing.T) {
		dir, next, redisCache := newSnapshot(t)

		redisCache.EXPECT().Get(gomock.Any(), generationKey, gomock.Any()).Return(errors.New("connection refused"))
		next.EXPECT().GetBookings(gomock.Any(), "biz-1", directory.Range{}).Return([]bookingModel.Booking{{ID: "b-3"}}, nil)

		got, err := dir.GetBookings(context.Background(), "biz-1", directory.Range{})
		require.NoError(t, err)
		assert.Equal(t, []bookingModel.Booking{{ID: "b-3"}}, got)
	})

	t.Run("store error is returned", func(t *testing.T) {
		dir, next, redisCache := newSnapshot(t)
		generation := int64(0)

		atGeneration(redisCache, &generation)
		redisCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errMiss)
		next.EXPECT().GetBookings(gomock.Any(), "biz-1", directory.Range{}).Return(nil, errors.New("db down"))

		_, err := dir.GetBookings(context.Background(), "biz-1", directory.Range{})
		assert.Error(t, err)
	})
}

func TestSnapshot_MutationsInvalidate(t *testing.T) {
	tests := []struct {
		name   string
		expect func(next *directoryMocks.MockDirectory)
		call   func(dir directory.Directory) error
	}{
		{
			name: "create",
			expect: func(next *directoryMocks.MockDirectory) {
				next.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).Return(bookingModel.Booking{ID: "b-1", BusinessID: "biz-1"}, nil)
			},
			call: func(dir directory.Directory) error {
				_, err := dir.CreateBooking(context.Background(), bookingModel.Booking{ID: "b-1", BusinessID: "biz-1"})

				return err
			},
		},
		{
			name: "status change",
			expect: func(next *directoryMocks.MockDirectory) {
				next.EXPECT().GetBooking(gomock.Any(), "b-1").Return(bookingModel.Booking{ID: "b-1", BusinessID: "biz-1"}, nil)
				next.EXPECT().UpdateBookingStatus(gomock.Any(), "b-1", bookingModel.StatusPending, bookingModel.StatusConfirmed).Return(nil)
			},
			call: func(dir directory.Directory) error {
				return dir.UpdateBookingStatus(context.Background(), "b-1", bookingModel.StatusPending, bookingModel.StatusConfirmed)
			},
		},
		{
			name: "delete",
			expect: func(next *directoryMocks.MockDirectory) {
				next.EXPECT().GetBooking(gomock.Any(), "b-1").Return(bookingModel.Booking{ID: "b-1", BusinessID: "biz-1"}, nil)
				next.EXPECT().DeleteBooking(gomock.Any(), "b-1", bookingModel.StatusPending).Return(nil)
			},
			call: func(dir directory.Directory) error {
				return dir.DeleteBooking(context.Background(), "b-1", bookingModel.StatusPending)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, next, redisCache := newSnapshot(t)

			tt.expect(next)

			gomock.InOrder(
				redisCache.EXPECT().Increment(gomock.Any(), generationKey, 0).Return(int64(1), nil),
				redisCache.EXPECT().Clear(gomock.Any(), "directory:bookings:biz-1:*").Return(nil),
			)

			require.NoError(t, tt.call(dir))
		})
	}
}

func TestSnapshot_LateSaveLandsOnOldGeneration(t *testing.T) {
	dir, next, redisCache := newSnapshot(t)
	ctx := context.Background()
	generation := int64(0)

	atGeneration(redisCache, &generation).Times(2)

	redisCache.EXPECT().Get(gomock.Any(), "directory:bookings:biz-1:0:*:*", gomock.Any()).Return(errMiss)
	next.EXPECT().GetBookings(gomock.Any(), "biz-1", directory.Range{}).
		DoAndReturn(func(context.Context, string, directory.Range) ([]bookingModel.Booking, error) {
			_, err := dir.CreateBooking(ctx, bookingModel.Booking{ID: "b-2", BusinessID: "biz-1"})
			require.NoError(t, err)

			return []bookingModel.Booking{{ID: "b-1"}}, nil
		})
	next.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).Return(bookingModel.Booking{ID: "b-2", BusinessID: "biz-1"}, nil)
	redisCache.EXPECT().Increment(gomock.Any(), generationKey, 0).
		DoAndReturn(func(context.Context, string, int) (int64, error) {
			generation++

			return generation, nil
		})
	redisCache.EXPECT().Clear(gomock.Any(), "directory:bookings:biz-1:*").Return(nil)
	redisCache.EXPECT().Save(gomock.Any(), "directory:bookings:biz-1:0:*:*", gomock.Any(), 300).Return(nil)

	stale, err := dir.GetBookings(ctx, "biz-1", directory.Range{})
	require.NoError(t, err)
	assert.Equal(t, []bookingModel.Booking{{ID: "b-1"}}, stale)

	fresh := []bookingModel.Booking{{ID: "b-1"}, {ID: "b-2"}}

	redisCache.EXPECT().Get(gomock.Any(), "directory:bookings:biz-1:1:*:*", gomock.Any()).Return(errMiss)
	next.EXPECT().GetBookings(gomock.Any(), "biz-1", directory.Range{}).Return(fresh, nil)
	redisCache.EXPECT().Save(gomock.Any(), "directory:bookings:biz-1:1:*:*", fresh, 300).Return(nil)

	got, err := dir.GetBookings(ctx, "biz-1", directory.Range{})
	require.NoError(t, err)
	assert.Equal(t, fresh, got)
}

func TestSnapshot_FailedMutationKeepsSnapshot(t *testing.T) {
	dir, next, _ := newSnapshot(t)

	next.EXPECT().GetBooking(gomock.Any(), "b-1").Return(bookingModel.Booking{ID: "b-1", BusinessID: "biz-1"}, nil)
	next.EXPECT().DeleteBooking(gomock.Any(), "b-1", bookingModel.StatusPending).Return(errors.New("db down"))

	assert.Error(t, dir.DeleteBooking(context.Background(), "b-1", bookingModel.StatusPending))
}
