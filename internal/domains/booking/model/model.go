package model

import (
	"fmt"
	"time"

	"github.com/lucasaveiro/service-scheduler/shared/constant"
	"github.com/lucasaveiro/service-scheduler/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldBusinessID      = "business_id"
	FieldServiceID       = "service_id"
	FieldBookingDate     = "booking_date"
	FieldBookingTime     = "booking_time"
	FieldDuration        = "duration"
	FieldClientName      = "client_name"
	FieldClientEmail     = "client_email"
	FieldClientPhone     = "client_phone"
	FieldAddress         = "address"
	FieldNotes           = "notes"
	FieldTotalAmount     = "total_amount"
	FieldStatus          = "status"
	FieldPaymentStatus   = "payment_status"
	FieldPaymentIntentID = "payment_intent_id"
	FieldCreatedBy       = "created_by"
)

const (
	PaymentStatusNone      = "none"
	PaymentStatusPending   = "pending"
	PaymentStatusSucceeded = "succeeded"
	PaymentStatusFailed    = "failed"
)

type Booking struct {
	ID              string    `db:"id"`
	BusinessID      string    `db:"business_id"`
	ServiceID       string    `db:"service_id"`
	ServiceName     string    `db:"service_name"      table:"services" column:"name"`
	BookingDate     time.Time `db:"booking_date"`
	BookingTime     string    `db:"booking_time"`
	Duration        int       `db:"duration"`
	ClientName      string    `db:"client_name"`
	ClientEmail     string    `db:"client_email"`
	ClientPhone     string    `db:"client_phone"`
	Address         string    `db:"address"`
	Notes           string    `db:"notes"`
	TotalAmount     float64   `db:"total_amount"`
	Status          Status    `db:"status"`
	PaymentStatus   string    `db:"payment_status"`
	PaymentIntentID string    `db:"payment_intent_id"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return fmt.Sprintf("LEFT JOIN services ON services.id = %s.%s", TableName, FieldServiceID)
}

// Day returns the booking date as YYYY-MM-DD. The date column carries no zone, so it is formatted as stored.
func (b Booking) Day() string {
	return b.BookingDate.Format(constant.DayFormat)
}
