// Package session drives one customer through choosing a service, a date and a time,
// filling in contact details and submitting the booking.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/lucasaveiro/service-scheduler/internal/directory"
	"github.com/lucasaveiro/service-scheduler/internal/domains/availability/filter"
	"github.com/lucasaveiro/service-scheduler/internal/domains/availability/model"
	bookingModel "github.com/lucasaveiro/service-scheduler/internal/domains/booking/model"
	"github.com/lucasaveiro/service-scheduler/internal/domains/calendar/navigator"
	catalogModel "github.com/lucasaveiro/service-scheduler/internal/domains/catalog/model"
	"github.com/lucasaveiro/service-scheduler/shared/constant"
	"github.com/lucasaveiro/service-scheduler/shared/failure"
	gModel "github.com/lucasaveiro/service-scheduler/shared/model"
	"github.com/lucasaveiro/service-scheduler/shared/timezone"
	"github.com/lucasaveiro/service-scheduler/shared/validator"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	FieldService = "service"
	FieldDate    = "date"
	FieldTime    = "time"
	FieldName    = "name"
	FieldContact = "contact"
	FieldEmail   = "email"
	FieldPhone   = "phone"
)

const (
	MessageSelectService   = "Please select a service"
	MessageSelectDate      = "Please select a date"
	MessageSelectTime      = "Please select a time"
	MessageNameRequired    = "Name is required"
	MessageContactRequired = "Either email or phone is required"
	MessageInvalidEmail    = "Invalid email address"
	MessageInvalidPhone    = "Invalid phone number"
)

var (
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
	ErrAlreadyConfirmed   = errors.New("booking already confirmed")
	ErrUnknownService     = errors.New("service is not offered")
)

type Phase int

const (
	PhaseEditing Phase = iota
	PhaseSubmitting
	PhaseConfirmed
)

// Form is the contact step.
type Form struct {
	Name    string `json:"client_name"`
	Email   string `json:"client_email"`
	Phone   string `json:"client_phone"`
	Address string `json:"client_address"`
	Notes   string `json:"notes"`
}

// Result is what a confirmed session shows: the stored booking and the service it was priced from.
type Result struct {
	Booking bookingModel.Booking
	Service catalogModel.Service
}

// Store is the part of the directory a session submits through.
type Store interface {
	GetBookings(ctx context.Context, businessID string, window directory.Range) ([]bookingModel.Booking, error)
	CreateBooking(ctx context.Context, booking bookingModel.Booking) (bookingModel.Booking, error)
}

// SlotsFunc computes the free slots of a date for a service duration.
type SlotsFunc func(date string, duration int) ([]model.Slot, error)

type Session struct {
	mu sync.Mutex

	businessID string
	services   []catalogModel.Service
	service    *catalogModel.Service
	calendar   *navigator.Navigator
	form       Form

	phase  Phase
	result *Result
}

// New starts a session over the active services of a business. The calendar spans
// [minDate, maxDate] restricted to available, and slots follow the selected service's duration.
func New(businessID string, services []catalogModel.Service, minDate, maxDate time.Time, available filter.DateSet, slots SlotsFunc) (*Session, error) {
	s := &Session{
		businessID: businessID,
		services:   services,
	}

	nav, err := navigator.New(minDate, maxDate, available, func(date string) ([]model.Slot, error) {
		if s.service == nil {
			return nil, nil
		}

		return slots(date, s.service.Duration)
	})
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	s.calendar = nav

	return s, nil
}

// Calendar exposes the navigator for month browsing.
func (s *Session) Calendar() *navigator.Navigator {
	return s.calendar
}

// Service is the selected service, nil until one is chosen.
func (s *Session) Service() *catalogModel.Service {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.service == nil {
		return nil
	}

	svc := *s.service

	return &svc
}

// SelectService picks one of the session's services. With a date already chosen its
// slots are recomputed for the new duration and the chosen time is cleared.
func (s *Session) SelectService(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseEditing {
		return s.lockedErr()
	}

	svc, ok := directory.FindService(s.services, id)
	if !ok {
		return ErrUnknownService
	}

	previous := s.service
	s.service = &svc

	if date := s.calendar.SelectedDate(); date != constant.Empty {
		if err := s.calendar.SelectDate(date); err != nil {
			s.service = previous

			return err //nolint:wrapcheck
		}
	}

	return nil
}

func (s *Session) SelectDate(date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseEditing {
		return s.lockedErr()
	}

	return s.calendar.SelectDate(date) //nolint:wrapcheck
}

func (s *Session) SelectTime(clock string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseEditing {
		return s.lockedErr()
	}

	return s.calendar.SelectTime(clock) //nolint:wrapcheck
}

func (s *Session) SetForm(form Form) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseEditing {
		return s.lockedErr()
	}

	s.form = form

	return nil
}

func (s *Session) lockedErr() error {
	if s.phase == PhaseSubmitting {
		return ErrSubmissionInFlight
	}

	return ErrAlreadyConfirmed
}

func (s *Session) Form() Form {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.form
}

func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.phase
}

// Submitting reports whether a submission is outstanding.
func (s *Session) Submitting() bool {
	return s.Phase() == PhaseSubmitting
}

// Result is set once the session is confirmed.
func (s *Session) Result() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.result
}

// Validate checks every step and returns one message per failing field, nil when all pass.
func (s *Session) Validate() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.validate()
}

func (s *Session) validate() map[string]string {
	fields := map[string]string{}

	if s.service == nil {
		fields[FieldService] = MessageSelectService
	}

	if s.calendar.SelectedDate() == constant.Empty {
		fields[FieldDate] = MessageSelectDate
	}

	if s.calendar.SelectedTime() == constant.Empty {
		fields[FieldTime] = MessageSelectTime
	}

	if strings.TrimSpace(s.form.Name) == constant.Empty {
		fields[FieldName] = MessageNameRequired
	}

	email := strings.TrimSpace(s.form.Email)
	phone := strings.TrimSpace(s.form.Phone)

	if email == constant.Empty && phone == constant.Empty {
		fields[FieldContact] = MessageContactRequired
	}

	if email != constant.Empty && !validator.IsEmail(email) {
		fields[FieldEmail] = MessageInvalidEmail
	}

	if phone != constant.Empty && !validator.IsPhone(phone) {
		fields[FieldPhone] = MessageInvalidPhone
	}

	if len(fields) == 0 {
		return nil
	}

	return fields
}

// Submit validates the session and stores the booking. A second call while one is
// outstanding returns ErrSubmissionInFlight and changes nothing. On failure the form
// and selections are kept so the caller can retry.
func (s *Session) Submit(ctx context.Context, store Store, actor string) (*Result, error) {
	s.mu.Lock()

	if s.phase != PhaseEditing {
		err := s.lockedErr()
		s.mu.Unlock()

		return nil, err
	}

	if fields := s.validate(); fields != nil {
		s.mu.Unlock()

		return nil, failure.Validation(fields) // nolint:wrapcheck
	}

	booking, err := s.build(actor)
	if err != nil {
		s.mu.Unlock()

		return nil, err
	}

	svc := *s.service
	s.phase = PhaseSubmitting
	s.mu.Unlock()

	created, err := s.store(ctx, store, booking)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.phase = PhaseEditing

		return nil, err
	}

	s.phase = PhaseConfirmed
	s.result = &Result{Booking: created, Service: svc}

	return s.result, nil
}

func (s *Session) store(ctx context.Context, store Store, booking bookingModel.Booking) (bookingModel.Booking, error) {
	day := booking.BookingDate

	current, err := store.GetBookings(ctx, s.businessID, directory.Range{From: day, To: day})
	if err != nil {
		log.Warn().Err(err).Str("business_id", s.businessID).Msg("could not re-check availability before submit")
	} else if filter.ExcludedTimes(booking.Day(), current).Contains(booking.BookingTime) {
		return bookingModel.Booking{}, failure.AvailabilityConflict(constant.Empty) // nolint:wrapcheck
	}

	created, err := store.CreateBooking(ctx, booking)
	if err != nil {
		if failure.Is(err, failure.KindAvailabilityConflict) {
			return bookingModel.Booking{}, err //nolint:wrapcheck
		}

		log.Error().Err(err).Str("business_id", s.businessID).Msg("failed to submit booking")

		return bookingModel.Booking{}, failure.CollaboratorWithMessage(failure.MessageBookingFailed) // nolint:wrapcheck
	}

	return created, nil
}

func (s *Session) build(actor string) (bookingModel.Booking, error) {
	date, err := time.Parse(constant.DayFormat, s.calendar.SelectedDate())
	if err != nil {
		return bookingModel.Booking{}, failure.ValidationField(FieldDate, MessageSelectDate) // nolint:wrapcheck
	}

	if actor == constant.Empty {
		actor = constant.ContextGuest
	}

	now := timezone.Now()

	return bookingModel.Booking{
		ID:            uuid.NewString(),
		BusinessID:    s.businessID,
		ServiceID:     s.service.ID,
		ServiceName:   s.service.Name,
		BookingDate:   date,
		BookingTime:   s.calendar.SelectedTime(),
		Duration:      s.service.Duration,
		ClientName:    strings.TrimSpace(s.form.Name),
		ClientEmail:   strings.TrimSpace(s.form.Email),
		ClientPhone:   strings.TrimSpace(s.form.Phone),
		Address:       strings.TrimSpace(s.form.Address),
		Notes:         strings.TrimSpace(s.form.Notes),
		TotalAmount:   s.service.Price,
		Status:        bookingModel.StatusPending,
		PaymentStatus: bookingModel.PaymentStatusNone,
		Metadata:      gModel.NewMetadata(actor, now),
	}, nil
}
