package dto

import (
	"github.com/lucasaveiro/service-scheduler/internal/domains/user/model"
	"github.com/lucasaveiro/service-scheduler/shared/constant"
	gDto "github.com/lucasaveiro/service-scheduler/shared/dto"
	"github.com/lucasaveiro/service-scheduler/shared/timezone"
)

type UserResponse struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	Role       string `json:"role"`
	BusinessID string `json:"business_id,omitempty"`
	LastLogin  string `json:"last_login,omitempty"`
	Active     bool   `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User, businessID string) {
	r.ID = model.ID
	r.Email = model.Email
	r.FullName = model.FullName
	r.Role = model.Role
	r.BusinessID = businessID
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)

	if model.LastLogin != nil {
		r.LastLogin = timezone.Format(*model.LastLogin, constant.DateFormat)
	}
}
