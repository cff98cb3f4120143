// Package directory is the persistence boundary for businesses, services, clients and bookings.
// Records leaving it carry explicit defaults for every field the store may leave empty.
package directory

//go:generate go run go.uber.org/mock/mockgen -source=./directory.go -destination=./mocks/directory_mock.go -package=mocks

import (
	"context"
	"time"

	bookingModel "github.com/lucasaveiro/service-scheduler/internal/domains/booking/model"
	businessModel "github.com/lucasaveiro/service-scheduler/internal/domains/business/model"
	catalogModel "github.com/lucasaveiro/service-scheduler/internal/domains/catalog/model"
	clientModel "github.com/lucasaveiro/service-scheduler/internal/domains/client/model"
	"github.com/lucasaveiro/service-scheduler/shared/constant"
)

// Range bounds a bookings query by booking date, inclusive. A zero bound is open.
type Range struct {
	From time.Time
	To   time.Time
}

func (r Range) key() []string {
	return []string{day(r.From), day(r.To)}
}

func day(t time.Time) string {
	if t.IsZero() {
		return constant.Asterix
	}

	return t.Format(constant.DayFormat)
}

// MessageStatusChanged reports a status write whose expected current status no longer matches the store.
const MessageStatusChanged = "Booking was changed by someone else. Reload and try again."

// Directory is the store of businesses, services, clients and bookings. Status writes and deletes
// carry the status the caller read and only apply while the stored booking still has it.
type Directory interface {
	GetBusiness(ctx context.Context, businessID string) (businessModel.Business, error)
	GetServices(ctx context.Context, businessID string) ([]catalogModel.Service, error)
	GetBookings(ctx context.Context, businessID string, window Range) ([]bookingModel.Booking, error)
	GetBooking(ctx context.Context, bookingID string) (bookingModel.Booking, error)
	CreateBooking(ctx context.Context, booking bookingModel.Booking) (bookingModel.Booking, error)
	UpdateBookingStatus(ctx context.Context, bookingID string, from, to bookingModel.Status) error
	UpdateBookingPayment(ctx context.Context, bookingID, paymentStatus, intentID string) error
	DeleteBooking(ctx context.Context, bookingID string, expected bookingModel.Status) error
	GetClients(ctx context.Context, businessID string) ([]clientModel.Client, error)
}

// ActiveServices keeps the services open for booking, preserving order.
func ActiveServices(services []catalogModel.Service) []catalogModel.Service {
	active := make([]catalogModel.Service, 0, len(services))

	for _, svc := range services {
		if svc.IsActive {
			active = append(active, svc)
		}
	}

	return active
}

// FindService returns the service with id, false when absent.
func FindService(services []catalogModel.Service, id string) (catalogModel.Service, bool) {
	for _, svc := range services {
		if svc.ID == id {
			return svc, true
		}
	}

	return catalogModel.Service{}, false
}
