package model

import (
	availabilityModel "github.com/lucasaveiro/service-scheduler/internal/domains/availability/model"
	"github.com/lucasaveiro/service-scheduler/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "businesses"
	EntityName = "business"

	FieldID            = "id"
	FieldOwnerID       = "owner_id"
	FieldBusinessName  = "business_name"
	FieldBusinessType  = "business_type"
	FieldTagline       = "tagline"
	FieldDescription   = "description"
	FieldLogoURL       = "logo_url"
	FieldLocation      = "location"
	FieldBusinessHours = "business_hours"
	FieldOpenTime      = "open_time"
	FieldCloseTime     = "close_time"
	FieldWorkingDays   = "working_days"
	FieldRating        = "rating"
	FieldReviewCount   = "review_count"
)

const (
	TypeHousekeeping         = "housekeeping"
	TypeLandscaping          = "landscaping"
	TypePersonalCare         = "personal_care"
	TypeProfessionalServices = "professional_services"
	TypeOther                = "other"
)

// Types lists the accepted business types, in display order.
var Types = []string{TypeHousekeeping, TypeLandscaping, TypePersonalCare, TypeProfessionalServices, TypeOther}

type Business struct {
	ID            string        `db:"id"`
	OwnerID       string        `db:"owner_id"`
	BusinessName  string        `db:"business_name"`
	BusinessType  string        `db:"business_type"`
	Tagline       string        `db:"tagline"`
	Description   string        `db:"description"`
	LogoURL       string        `db:"logo_url"`
	Location      string        `db:"location"`
	BusinessHours string        `db:"business_hours"`
	OpenTime      string        `db:"open_time"`
	CloseTime     string        `db:"close_time"`
	WorkingDays   pq.Int64Array `db:"working_days"`
	Rating        float64       `db:"rating"`
	ReviewCount   int           `db:"review_count"`
	model.Metadata
}

// Hours returns the configured opening hours as an availability window.
func (b Business) Hours() availabilityModel.BusinessHours {
	return availabilityModel.BusinessHours{Start: b.OpenTime, End: b.CloseTime}
}

// WorkingWeekdays returns the ISO weekdays the business accepts bookings on.
func (b Business) WorkingWeekdays() []int {
	days := make([]int, len(b.WorkingDays))
	for i, d := range b.WorkingDays {
		days[i] = int(d)
	}

	return days
}
