package dto

import (
	"mime/multipart"

	"github.com/lucasaveiro/service-scheduler/internal/domains/business/model"
	"github.com/lucasaveiro/service-scheduler/shared/constant"
	gDto "github.com/lucasaveiro/service-scheduler/shared/dto"
	gModel "github.com/lucasaveiro/service-scheduler/shared/model"
	"github.com/lucasaveiro/service-scheduler/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// CreateBusinessRequest is built during registration, never decoded from a request body.
type CreateBusinessRequest struct {
	OwnerID      string `json:"owner_id"      validate:"required"`
	BusinessName string `json:"business_name" validate:"required,max=150"`
	BusinessType string `json:"business_type" validate:"omitempty,oneof=housekeeping landscaping personal_care professional_services other"`
}

func (c *CreateBusinessRequest) ToModel(user string) model.Business {
	businessType := c.BusinessType
	if businessType == constant.Empty {
		businessType = model.TypeOther
	}

	now := timezone.Now()

	return model.Business{
		ID:           uuid.NewString(),
		OwnerID:      c.OwnerID,
		BusinessName: c.BusinessName,
		BusinessType: businessType,
		Metadata:     gModel.NewMetadata(user, now),
	}
}

type UpdateBusinessRequest struct {
	BusinessName  string                `db:"business_name"  json:"business_name"  validate:"omitempty,max=150"`
	BusinessType  string                `db:"business_type"  json:"business_type"  validate:"omitempty,oneof=housekeeping landscaping personal_care professional_services other"`
	Tagline       string                `db:"tagline"        json:"tagline"        validate:"omitempty,max=200"`
	Description   string                `db:"description"    json:"description"    validate:"omitempty"`
	Location      string                `db:"location"       json:"location"       validate:"omitempty,max=200"`
	BusinessHours string                `db:"business_hours" json:"business_hours" validate:"omitempty,max=200"`
	OpenTime      string                `db:"open_time"      json:"open_time"      validate:"omitempty,clock"`
	CloseTime     string                `db:"close_time"     json:"close_time"     validate:"omitempty,clock"`
	WorkingDays   []int64               `db:"working_days"   json:"working_days"   validate:"omitempty,dive,min=1,max=7"`
	Logo          *multipart.FileHeader `json:"logo"          validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	LogoFile      multipart.File        `json:"-"`
}

// ToUpdate returns the columns to change; empty fields are left untouched.
func (u *UpdateBusinessRequest) ToUpdate(user, logoURL string) map[string]any {
	fields := gModel.Modified(nil, user, timezone.Now())

	set := func(field, value string) {
		if value != constant.Empty {
			fields[field] = value
		}
	}

	set(model.FieldBusinessName, u.BusinessName)
	set(model.FieldBusinessType, u.BusinessType)
	set(model.FieldTagline, u.Tagline)
	set(model.FieldDescription, u.Description)
	set(model.FieldLocation, u.Location)
	set(model.FieldBusinessHours, u.BusinessHours)
	set(model.FieldOpenTime, u.OpenTime)
	set(model.FieldCloseTime, u.CloseTime)
	set(model.FieldLogoURL, logoURL)

	if len(u.WorkingDays) > 0 {
		fields[model.FieldWorkingDays] = pq.Int64Array(u.WorkingDays)
	}

	return fields
}

type BusinessResponse struct {
	ID            string  `json:"id"`
	OwnerID       string  `json:"owner_id,omitempty"`
	BusinessName  string  `json:"business_name"`
	BusinessType  string  `json:"business_type"`
	Tagline       string  `json:"tagline"`
	Description   string  `json:"description"`
	LogoURL       string  `json:"logo_url"`
	Location      string  `json:"location"`
	BusinessHours string  `json:"business_hours"`
	OpenTime      string  `json:"open_time"`
	CloseTime     string  `json:"close_time"`
	WorkingDays   []int   `json:"working_days"`
	Rating        float64 `json:"rating"`
	ReviewCount   int     `json:"review_count"`
	gDto.Metadata
}

func (r *BusinessResponse) FromModel(model model.Business) {
	r.ID = model.ID
	r.OwnerID = model.OwnerID
	r.BusinessName = model.BusinessName
	r.BusinessType = model.BusinessType
	r.Tagline = model.Tagline
	r.Description = model.Description
	r.LogoURL = model.LogoURL
	r.Location = model.Location
	r.BusinessHours = model.BusinessHours
	r.OpenTime = model.OpenTime
	r.CloseTime = model.CloseTime
	r.WorkingDays = model.WorkingWeekdays()
	r.Rating = model.Rating
	r.ReviewCount = model.ReviewCount
	r.Metadata.FromModel(model.Metadata)
}

// PublicBusinessResponse hides owner details from anonymous visitors.
type PublicBusinessResponse struct {
	ID            string  `json:"id"`
	BusinessName  string  `json:"business_name"`
	BusinessType  string  `json:"business_type"`
	Tagline       string  `json:"tagline"`
	Description   string  `json:"description"`
	LogoURL       string  `json:"logo_url"`
	Location      string  `json:"location"`
	BusinessHours string  `json:"business_hours"`
	Rating        float64 `json:"rating"`
	ReviewCount   int     `json:"review_count"`
}

func (r *PublicBusinessResponse) FromModel(model model.Business) {
	r.ID = model.ID
	r.BusinessName = model.BusinessName
	r.BusinessType = model.BusinessType
	r.Tagline = model.Tagline
	r.Description = model.Description
	r.LogoURL = model.LogoURL
	r.Location = model.Location
	r.BusinessHours = model.BusinessHours
	r.Rating = model.Rating
	r.ReviewCount = model.ReviewCount
}
