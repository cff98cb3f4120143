package dto

import (
	"slices"
	"strings"

	"github.com/lucasaveiro/service-scheduler/internal/domains/client/model"
	"github.com/lucasaveiro/service-scheduler/shared"
	"github.com/lucasaveiro/service-scheduler/shared/constant"
	gDto "github.com/lucasaveiro/service-scheduler/shared/dto"
	gModel "github.com/lucasaveiro/service-scheduler/shared/model"
	"github.com/lucasaveiro/service-scheduler/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Address struct {
	Street  string `json:"street"   validate:"omitempty,max=200"`
	City    string `json:"city"     validate:"omitempty,max=100"`
	State   string `json:"state"    validate:"omitempty,max=100"`
	ZipCode string `json:"zip_code" validate:"omitempty,zip_code"`
}

type ClientRequest struct {
	FirstName              string   `json:"first_name"               validate:"required,max=100"`
	LastName               string   `json:"last_name"                validate:"required,max=100"`
	Email                  string   `json:"email"                    validate:"required,contact_email,max=150"`
	Phone                  string   `json:"phone"                    validate:"omitempty,booking_phone,max=30"`
	Address                Address  `json:"address"`
	PreferredContactMethod string   `json:"preferred_contact_method" validate:"omitempty,oneof=email phone sms"`
	Status                 string   `json:"status"                   validate:"omitempty,oneof=active inactive"`
	Tags                   []string `json:"tags"                     validate:"omitempty,dive,max=50"`
	Notes                  string   `json:"notes"                    validate:"omitempty"`
}

func (c *ClientRequest) ToModel(businessID, user string) model.Client {
	now := timezone.Now()

	return model.Client{
		ID:                     uuid.NewString(),
		BusinessID:             businessID,
		FirstName:              strings.TrimSpace(c.FirstName),
		LastName:               strings.TrimSpace(c.LastName),
		Email:                  strings.TrimSpace(c.Email),
		Phone:                  strings.TrimSpace(c.Phone),
		Street:                 c.Address.Street,
		City:                   c.Address.City,
		State:                  c.Address.State,
		ZipCode:                c.Address.ZipCode,
		PreferredContactMethod: fallback(c.PreferredContactMethod, model.ContactEmail),
		Status:                 fallback(c.Status, model.StatusActive),
		Tags:                   NormalizeTags(c.Tags),
		Notes:                  c.Notes,
		Metadata:               gModel.NewMetadata(user, now),
	}
}

// ToUpdate lists every editable column; a client form always submits the full record.
func (c *ClientRequest) ToUpdate(user string) map[string]any {
	return map[string]any{
		model.FieldFirstName:              strings.TrimSpace(c.FirstName),
		model.FieldLastName:               strings.TrimSpace(c.LastName),
		model.FieldEmail:                  strings.TrimSpace(c.Email),
		model.FieldPhone:                  strings.TrimSpace(c.Phone),
		model.FieldStreet:                 c.Address.Street,
		model.FieldCity:                   c.Address.City,
		model.FieldState:                  c.Address.State,
		model.FieldZipCode:                c.Address.ZipCode,
		model.FieldPreferredContactMethod: fallback(c.PreferredContactMethod, model.ContactEmail),
		model.FieldStatus:                 fallback(c.Status, model.StatusActive),
		model.FieldTags:                   NormalizeTags(c.Tags),
		model.FieldNotes:                  c.Notes,
		constant.FieldModifiedAt:          timezone.Now(),
		constant.FieldModifiedBy:          user,
	}
}

func fallback(value, def string) string {
	if value == constant.Empty {
		return def
	}

	return value
}

// NormalizeTags trims tags and drops blanks and repeats, keeping first occurrence order.
func NormalizeTags(tags []string) pq.StringArray {
	out := pq.StringArray{}

	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == constant.Empty || slices.Contains(out, tag) {
			continue
		}

		out = append(out, tag)
	}

	return out
}

type ClientResponse struct {
	ID                     string   `json:"id"`
	FirstName              string   `json:"first_name"`
	LastName               string   `json:"last_name"`
	FullName               string   `json:"full_name"`
	Email                  string   `json:"email"`
	Phone                  string   `json:"phone"`
	Address                Address  `json:"address"`
	PreferredContactMethod string   `json:"preferred_contact_method"`
	Status                 string   `json:"status"`
	Tags                   []string `json:"tags"`
	Notes                  string   `json:"notes"`
	gDto.Metadata
}

func (r *ClientResponse) FromModel(model model.Client) {
	r.ID = model.ID
	r.FirstName = model.FirstName
	r.LastName = model.LastName
	r.FullName = model.FullName()
	r.Email = model.Email
	r.Phone = model.Phone
	r.Address = Address{
		Street:  model.Street,
		City:    model.City,
		State:   model.State,
		ZipCode: model.ZipCode,
	}
	r.PreferredContactMethod = model.PreferredContactMethod
	r.Status = model.Status
	r.Tags = []string(model.Tags)
	r.Notes = model.Notes
	r.Metadata.FromModel(model.Metadata)

	if r.Tags == nil {
		r.Tags = []string{}
	}
}

type GetClientsResponse struct {
	Clients   []ClientResponse `json:"clients"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetClientsResponse) FromModels(models []model.Client, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Clients = make([]ClientResponse, len(models))
	for i, mod := range models {
		r.Clients[i].FromModel(mod)
	}
}
