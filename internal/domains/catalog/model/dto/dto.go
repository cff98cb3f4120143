package dto

import (
	"github.com/lucasaveiro/service-scheduler/internal/domains/catalog/model"
	"github.com/lucasaveiro/service-scheduler/shared"
	"github.com/lucasaveiro/service-scheduler/shared/constant"
	gDto "github.com/lucasaveiro/service-scheduler/shared/dto"
	"github.com/lucasaveiro/service-scheduler/shared/failure"
	gModel "github.com/lucasaveiro/service-scheduler/shared/model"
	"github.com/lucasaveiro/service-scheduler/shared/timezone"

	"github.com/google/uuid"
)

const MessageDepositRequired = "Deposit amount must be greater than zero"

type CreateServiceRequest struct {
	Name            string  `json:"name"             validate:"required,max=150"`
	Description     string  `json:"description"      validate:"omitempty"`
	Category        string  `json:"category"         validate:"omitempty,max=100"`
	Duration        int     `json:"duration"         validate:"required,gt=0"`
	Price           float64 `json:"price"            validate:"required,gt=0"`
	Location        string  `json:"location"         validate:"omitempty,oneof=client_location business_location remote"`
	IsActive        *bool   `json:"is_active"        validate:"omitempty"`
	RequiresDeposit bool    `json:"requires_deposit" validate:"omitempty"`
	DepositAmount   float64 `json:"deposit_amount"   validate:"omitempty,gte=0"`
}

// Validate checks the rules struct tags cannot express.
func (c *CreateServiceRequest) Validate() error {
	if c.RequiresDeposit && c.DepositAmount <= 0 {
		return failure.ValidationField("deposit_amount", MessageDepositRequired) // nolint:wrapcheck
	}

	return nil
}

func (c *CreateServiceRequest) ToModel(businessID, user string) model.Service {
	active := true
	if c.IsActive != nil {
		active = *c.IsActive
	}

	location := c.Location
	if location == constant.Empty {
		location = model.LocationClient
	}

	deposit := 0.0
	if c.RequiresDeposit {
		deposit = c.DepositAmount
	}

	now := timezone.Now()

	return model.Service{
		ID:              uuid.NewString(),
		BusinessID:      businessID,
		Name:            c.Name,
		Description:     c.Description,
		Category:        c.Category,
		Duration:        c.Duration,
		Price:           c.Price,
		Location:        location,
		IsActive:        active,
		RequiresDeposit: c.RequiresDeposit,
		DepositAmount:   deposit,
		Metadata:        gModel.NewMetadata(user, now),
	}
}

type UpdateServiceRequest struct {
	Name            string   `json:"name"             validate:"omitempty,max=150"`
	Description     *string  `json:"description"      validate:"omitempty"`
	Category        *string  `json:"category"         validate:"omitempty,max=100"`
	Duration        *int     `json:"duration"         validate:"omitempty,gt=0"`
	Price           *float64 `json:"price"            validate:"omitempty,gt=0"`
	Location        string   `json:"location"         validate:"omitempty,oneof=client_location business_location remote"`
	IsActive        *bool    `json:"is_active"        validate:"omitempty"`
	RequiresDeposit *bool    `json:"requires_deposit" validate:"omitempty"`
	DepositAmount   *float64 `json:"deposit_amount"   validate:"omitempty,gte=0"`
}

// Apply merges the request into current and checks the deposit rule against the result.
func (u *UpdateServiceRequest) Apply(current model.Service) (model.Service, error) {
	next := current

	if u.Name != constant.Empty {
		next.Name = u.Name
	}

	if u.Description != nil {
		next.Description = *u.Description
	}

	if u.Category != nil {
		next.Category = *u.Category
	}

	if u.Duration != nil {
		next.Duration = *u.Duration
	}

	if u.Price != nil {
		next.Price = *u.Price
	}

	if u.Location != constant.Empty {
		next.Location = u.Location
	}

	if u.IsActive != nil {
		next.IsActive = *u.IsActive
	}

	if u.RequiresDeposit != nil {
		next.RequiresDeposit = *u.RequiresDeposit
	}

	if u.DepositAmount != nil {
		next.DepositAmount = *u.DepositAmount
	}

	if !next.RequiresDeposit {
		next.DepositAmount = 0
	} else if next.DepositAmount <= 0 {
		return current, failure.ValidationField("deposit_amount", MessageDepositRequired) // nolint:wrapcheck
	}

	return next, nil
}

// ToUpdate lists the columns written for an applied update.
func ToUpdate(svc model.Service, user string) map[string]any {
	return map[string]any{
		model.FieldName:            svc.Name,
		model.FieldDescription:     svc.Description,
		model.FieldCategory:        svc.Category,
		model.FieldDuration:        svc.Duration,
		model.FieldPrice:           svc.Price,
		model.FieldLocation:        svc.Location,
		model.FieldIsActive:        svc.IsActive,
		model.FieldRequiresDeposit: svc.RequiresDeposit,
		model.FieldDepositAmount:   svc.DepositAmount,
		constant.FieldModifiedAt:   timezone.Now(),
		constant.FieldModifiedBy:   user,
	}
}

type ServiceResponse struct {
	ID              string  `json:"id"`
	BusinessID      string  `json:"business_id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Category        string  `json:"category"`
	Duration        int     `json:"duration"`
	Price           float64 `json:"price"`
	Location        string  `json:"location"`
	IsActive        bool    `json:"is_active"`
	RequiresDeposit bool    `json:"requires_deposit"`
	DepositAmount   float64 `json:"deposit_amount"`
	gDto.Metadata
}

func (r *ServiceResponse) FromModel(model model.Service) {
	r.ID = model.ID
	r.BusinessID = model.BusinessID
	r.Name = model.Name
	r.Description = model.Description
	r.Category = model.Category
	r.Duration = model.Duration
	r.Price = model.Price
	r.Location = model.Location
	r.IsActive = model.IsActive
	r.RequiresDeposit = model.RequiresDeposit
	r.DepositAmount = model.DepositAmount
	r.Metadata.FromModel(model.Metadata)
}

// FromModels converts services and never returns nil.
func FromModels(models []model.Service) []ServiceResponse {
	res := make([]ServiceResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

type GetServicesResponse struct {
	Services  []ServiceResponse `json:"services"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetServicesResponse) FromModels(models []model.Service, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)
	r.Services = FromModels(models)
}
