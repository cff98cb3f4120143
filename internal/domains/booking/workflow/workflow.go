// Package workflow applies staff status actions to the bookings of one business.
package workflow

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"sync"

	"github.com/lucasaveiro/service-scheduler/internal/directory"
	"github.com/lucasaveiro/service-scheduler/internal/domains/booking/model"
	"github.com/lucasaveiro/service-scheduler/shared/constant"
	"github.com/lucasaveiro/service-scheduler/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	MessageNoNextStatus = "Booking has no next status"
	MessageCannotCancel = "Booking can no longer be cancelled"
	MessageCannotDelete = "Only pending bookings can be deleted"
)

// Transition describes one applied action.
type Transition struct {
	Booking  model.Booking
	Previous model.Status
	Deleted  bool
}

// Board holds a snapshot of a business's bookings over a window. The snapshot is only
// ever replaced as a whole, after each successful mutation.
type Board struct {
	mu sync.Mutex

	directory  directory.Directory
	businessID string
	window     directory.Range

	bookings []model.Booking
	stale    bool
}

func NewBoard(directory directory.Directory, businessID string, window directory.Range) *Board {
	return &Board{
		directory:  directory,
		businessID: businessID,
		window:     window,
	}
}

// Refresh reloads the snapshot. On failure the previous snapshot is kept and marked stale.
func (b *Board) Refresh(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.refresh(ctx)
}

func (b *Board) refresh(ctx context.Context) error {
	bookings, err := b.directory.GetBookings(ctx, b.businessID, b.window)
	if err != nil {
		b.stale = true

		return err //nolint:wrapcheck
	}

	b.bookings = bookings
	b.stale = false

	return nil
}

// Bookings returns a copy of the snapshot.
func (b *Board) Bookings() []model.Booking {
	b.mu.Lock()
	defer b.mu.Unlock()

	return slices.Clone(b.bookings)
}

// Stale reports whether the last refresh failed.
func (b *Board) Stale() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.stale
}

// Filter returns the snapshot bookings in status, or all of them when status is empty.
func (b *Board) Filter(status model.Status) []model.Booking {
	b.mu.Lock()
	defer b.mu.Unlock()

	if status == constant.Empty {
		return slices.Clone(b.bookings)
	}

	out := []model.Booking{}

	for _, booking := range b.bookings {
		if booking.Status == status {
			out = append(out, booking)
		}
	}

	return out
}

// Advance moves a booking one step along pending, confirmed, in-progress, completed.
func (b *Board) Advance(ctx context.Context, id string) (Transition, error) {
	return b.transition(ctx, id, func(current model.Status) (model.Status, error) {
		next, ok := current.Next()
		if !ok {
			return constant.Empty, failure.StateViolation(MessageNoNextStatus) // nolint:wrapcheck
		}

		return next, nil
	})
}

func (b *Board) Cancel(ctx context.Context, id string) (Transition, error) {
	return b.transition(ctx, id, func(current model.Status) (model.Status, error) {
		if !current.CanCancel() {
			return constant.Empty, failure.StateViolation(MessageCannotCancel) // nolint:wrapcheck
		}

		return model.StatusCancelled, nil
	})
}

func (b *Board) transition(ctx context.Context, id string, next func(model.Status) (model.Status, error)) (Transition, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	booking, err := b.find(ctx, id)
	if err != nil {
		return Transition{}, err
	}

	status, err := next(booking.Status)
	if err != nil {
		return Transition{}, err
	}

	if err = b.directory.UpdateBookingStatus(ctx, booking.ID, booking.Status, status); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Str("status", string(status)).Msg("failed to update booking status")

		b.afterRejection(ctx, err)

		return Transition{}, fmt.Errorf("failed to update booking status: %w", err)
	}

	t := Transition{Booking: booking, Previous: booking.Status}
	t.Booking.Status = status

	b.afterMutation(ctx)

	return t, nil
}

// Delete removes a pending booking.
func (b *Board) Delete(ctx context.Context, id string) (Transition, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	booking, err := b.find(ctx, id)
	if err != nil {
		return Transition{}, err
	}

	if !booking.Status.CanDelete() {
		return Transition{}, failure.StateViolation(MessageCannotDelete) // nolint:wrapcheck
	}

	if err = b.directory.DeleteBooking(ctx, booking.ID, booking.Status); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to delete booking")

		b.afterRejection(ctx, err)

		return Transition{}, fmt.Errorf("failed to delete booking: %w", err)
	}

	b.afterMutation(ctx)

	return Transition{Booking: booking, Previous: booking.Status, Deleted: true}, nil
}

func (b *Board) afterMutation(ctx context.Context) {
	if err := b.refresh(ctx); err != nil {
		log.Warn().Err(err).Str("business_id", b.businessID).Msg("bookings changed but could not be reloaded")
	}
}

// afterRejection reloads the snapshot when the store refused a write because the booking
// changed or disappeared since it was read.
func (b *Board) afterRejection(ctx context.Context, err error) {
	if failure.Is(err, failure.KindStateViolation) || failure.GetCode(err) == http.StatusNotFound {
		b.afterMutation(ctx)
	}
}

// find looks the booking up in the snapshot, then in the directory. Bookings of other
// businesses are reported as missing.
func (b *Board) find(ctx context.Context, id string) (model.Booking, error) {
	idx := slices.IndexFunc(b.bookings, func(booking model.Booking) bool { return booking.ID == id })
	if idx >= 0 {
		return b.bookings[idx], nil
	}

	booking, err := b.directory.GetBooking(ctx, id)
	if err != nil {
		return model.Booking{}, err //nolint:wrapcheck
	}

	if booking.BusinessID != b.businessID {
		return model.Booking{}, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}
