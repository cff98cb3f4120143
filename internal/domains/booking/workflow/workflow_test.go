package workflow_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/lucasaveiro/service-scheduler/internal/directory"
	directoryMocks "github.com/lucasaveiro/service-scheduler/internal/directory/mocks"
	"github.com/lucasaveiro/service-scheduler/internal/domains/booking/model"
	"github.com/lucasaveiro/service-scheduler/internal/domains/booking/workflow"
	"github.com/lucasaveiro/service-scheduler/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var window = directory.Range{
	From: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	To:   time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC),
}

func booking(id string, status model.Status) model.Booking {
	return model.Booking{ID: id, BusinessID: "biz-1", BookingTime: "09:00", Status: status}
}

func loaded(t *testing.T, dir *directoryMocks.MockDirectory, bookings ...model.Booking) *workflow.Board {
	t.Helper()

	dir.EXPECT().GetBookings(gomock.Any(), "biz-1", window).Return(bookings, nil)

	board := workflow.NewBoard(dir, "biz-1", window)
	require.NoError(t, board.Refresh(context.Background()))

	return board
}

func TestBoard_Advance(t *testing.T) {
	tests := []struct {
		name string
		from model.Status
		to   model.Status
	}{
		{name: "pending to confirmed", from: model.StatusPending, to: model.StatusConfirmed},
		{name: "confirmed to in-progress", from: model.StatusConfirmed, to: model.StatusInProgress},
		{name: "in-progress to completed", from: model.StatusInProgress, to: model.StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			dir := directoryMocks.NewMockDirectory(ctrl)
			board := loaded(t, dir, booking("b-1", tt.from))

			dir.EXPECT().UpdateBookingStatus(gomock.Any(), "b-1", tt.from, tt.to).Return(nil)
			dir.EXPECT().GetBookings(gomock.Any(), "biz-1", window).Return([]model.Booking{booking("b-1", tt.to)}, nil)

			got, err := board.Advance(context.Background(), "b-1")

			require.NoError(t, err)
			assert.Equal(t, tt.from, got.Previous)
			assert.Equal(t, tt.to, got.Booking.Status)
			assert.Equal(t, tt.to, board.Bookings()[0].Status)
			assert.False(t, board.Stale())
		})
	}
}

func TestBoard_StateViolations(t *testing.T) {
	tests := []struct {
		name   string
		status model.Status
		action func(*workflow.Board) error
	}{
		{
			name:   "advance completed",
			status: model.StatusCompleted,
			action: func(b *workflow.Board) error { _, err := b.Advance(context.Background(), "b-1"); return err },
		},
		{
			name:   "advance cancelled",
			status: model.StatusCancelled,
			action: func(b *workflow.Board) error { _, err := b.Advance(context.Background(), "b-1"); return err },
		},
		{
			name:   "cancel completed",
			status: model.StatusCompleted,
			action: func(b *workflow.Board) error { _, err := b.Cancel(context.Background(), "b-1"); return err },
		},
		{
			name:   "delete confirmed",
			status: model.StatusConfirmed,
			action: func(b *workflow.Board) error { _, err := b.Delete(context.Background(), "b-1"); return err },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			dir := directoryMocks.NewMockDirectory(ctrl)
			board := loaded(t, dir, booking("b-1", tt.status))

			err := tt.action(board)

			require.Error(t, err)
			assert.True(t, failure.Is(err, failure.KindStateViolation))
			assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
			assert.Equal(t, tt.status, board.Bookings()[0].Status)
		})
	}
}

func TestBoard_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := directoryMocks.NewMockDirectory(ctrl)
	board := loaded(t, dir, booking("b-1", model.StatusInProgress))

	dir.EXPECT().UpdateBookingStatus(gomock.Any(), "b-1", model.StatusInProgress, model.StatusCancelled).Return(nil)
	dir.EXPECT().GetBookings(gomock.Any(), "biz-1", window).Return([]model.Booking{booking("b-1", model.StatusCancelled)}, nil)

	got, err := board.Cancel(context.Background(), "b-1")

	require.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, got.Previous)
	assert.Equal(t, model.StatusCancelled, got.Booking.Status)
	assert.Len(t, board.Filter(model.StatusCancelled), 1)
	assert.Empty(t, board.Filter(model.StatusPending))
}

func TestBoard_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := directoryMocks.NewMockDirectory(ctrl)
	board := loaded(t, dir, booking("b-1", model.StatusPending), booking("b-2", model.StatusConfirmed))

	dir.EXPECT().DeleteBooking(gomock.Any(), "b-1", model.StatusPending).Return(nil)
	dir.EXPECT().GetBookings(gomock.Any(), "biz-1", window).Return([]model.Booking{booking("b-2", model.StatusConfirmed)}, nil)

	got, err := board.Delete(context.Background(), "b-1")

	require.NoError(t, err)
	assert.True(t, got.Deleted)
	assert.Len(t, board.Bookings(), 1)
}

func TestBoard_MutationFailureKeepsSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := directoryMocks.NewMockDirectory(ctrl)
	board := loaded(t, dir, booking("b-1", model.StatusPending))

	dir.EXPECT().UpdateBookingStatus(gomock.Any(), "b-1", model.StatusPending, model.StatusConfirmed).Return(failure.Collaborator(errors.New("permission denied")))

	_, err := board.Advance(context.Background(), "b-1")

	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, failure.GetCode(err))
	assert.Equal(t, "permission denied", errors.Unwrap(err).Error())
	assert.Equal(t, model.StatusPending, board.Bookings()[0].Status)
}

func TestBoard_ChangedSinceRead(t *testing.T) {
	tests := []struct {
		name     string
		read     model.Status
		stored   []model.Booking
		setWrite func(dir *directoryMocks.MockDirectory)
		action   func(*workflow.Board) error
		wantCode int
	}{
		{
			name:   "advance after a concurrent cancel",
			read:   model.StatusPending,
			stored: []model.Booking{booking("b-1", model.StatusCancelled)},
			setWrite: func(dir *directoryMocks.MockDirectory) {
				dir.EXPECT().UpdateBookingStatus(gomock.Any(), "b-1", model.StatusPending, model.StatusConfirmed).
					Return(failure.StateViolation(directory.MessageStatusChanged))
			},
			action:   func(b *workflow.Board) error { _, err := b.Advance(context.Background(), "b-1"); return err },
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name:   "cancel after a concurrent completion",
			read:   model.StatusInProgress,
			stored: []model.Booking{booking("b-1", model.StatusCompleted)},
			setWrite: func(dir *directoryMocks.MockDirectory) {
				dir.EXPECT().UpdateBookingStatus(gomock.Any(), "b-1", model.StatusInProgress, model.StatusCancelled).
					Return(failure.StateViolation(directory.MessageStatusChanged))
			},
			action:   func(b *workflow.Board) error { _, err := b.Cancel(context.Background(), "b-1"); return err },
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name:   "delete after a concurrent confirm",
			read:   model.StatusPending,
			stored: []model.Booking{booking("b-1", model.StatusConfirmed)},
			setWrite: func(dir *directoryMocks.MockDirectory) {
				dir.EXPECT().DeleteBooking(gomock.Any(), "b-1", model.StatusPending).
					Return(failure.StateViolation(directory.MessageStatusChanged))
			},
			action:   func(b *workflow.Board) error { _, err := b.Delete(context.Background(), "b-1"); return err },
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name:   "advance after a concurrent delete",
			read:   model.StatusPending,
			stored: []model.Booking{},
			setWrite: func(dir *directoryMocks.MockDirectory) {
				dir.EXPECT().UpdateBookingStatus(gomock.Any(), "b-1", model.StatusPending, model.StatusConfirmed).
					Return(failure.NotFound("booking not found"))
			},
			action:   func(b *workflow.Board) error { _, err := b.Advance(context.Background(), "b-1"); return err },
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			dir := directoryMocks.NewMockDirectory(ctrl)
			board := loaded(t, dir, booking("b-1", tt.read))

			tt.setWrite(dir)
			dir.EXPECT().GetBookings(gomock.Any(), "biz-1", window).Return(tt.stored, nil)

			err := tt.action(board)

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
			assert.Equal(t, tt.stored, board.Bookings())
			assert.False(t, board.Stale())
		})
	}
}

func TestBoard_RefreshFailureMarksStale(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := directoryMocks.NewMockDirectory(ctrl)
	board := loaded(t, dir, booking("b-1", model.StatusPending))

	dir.EXPECT().UpdateBookingStatus(gomock.Any(), "b-1", model.StatusPending, model.StatusConfirmed).Return(nil)
	dir.EXPECT().GetBookings(gomock.Any(), "biz-1", window).Return(nil, errors.New("timeout"))

	got, err := board.Advance(context.Background(), "b-1")

	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, got.Booking.Status)
	assert.True(t, board.Stale())
	assert.Equal(t, model.StatusPending, board.Bookings()[0].Status)
}

func TestBoard_Find(t *testing.T) {
	t.Run("booking outside the snapshot is fetched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		dir := directoryMocks.NewMockDirectory(ctrl)
		board := workflow.NewBoard(dir, "biz-1", window)

		dir.EXPECT().GetBooking(gomock.Any(), "b-9").Return(booking("b-9", model.StatusConfirmed), nil)
		dir.EXPECT().UpdateBookingStatus(gomock.Any(), "b-9", model.StatusConfirmed, model.StatusInProgress).Return(nil)
		dir.EXPECT().GetBookings(gomock.Any(), "biz-1", window).Return([]model.Booking{}, nil)

		_, err := board.Advance(context.Background(), "b-9")
		require.NoError(t, err)
	})

	t.Run("other business is not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		dir := directoryMocks.NewMockDirectory(ctrl)
		board := workflow.NewBoard(dir, "biz-1", window)

		other := booking("b-9", model.StatusPending)
		other.BusinessID = "biz-2"
		dir.EXPECT().GetBooking(gomock.Any(), "b-9").Return(other, nil)

		_, err := board.Delete(context.Background(), "b-9")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
