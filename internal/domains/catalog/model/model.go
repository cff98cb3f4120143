package model

import "github.com/lucasaveiro/service-scheduler/shared/model"

const (
	TableName  = "services"
	EntityName = "service"

	FieldID              = "id"
	FieldBusinessID      = "business_id"
	FieldName            = "name"
	FieldDescription     = "description"
	FieldCategory        = "category"
	FieldDuration        = "duration"
	FieldPrice           = "price"
	FieldLocation        = "location"
	FieldIsActive        = "is_active"
	FieldRequiresDeposit = "requires_deposit"
	FieldDepositAmount   = "deposit_amount"
)

const (
	LocationClient   = "client_location"
	LocationBusiness = "business_location"
	LocationRemote   = "remote"
)

type Service struct {
	ID              string  `db:"id"`
	BusinessID      string  `db:"business_id"`
	Name            string  `db:"name"`
	Description     string  `db:"description"`
	Category        string  `db:"category"`
	Duration        int     `db:"duration"`
	Price           float64 `db:"price"`
	Location        string  `db:"location"`
	IsActive        bool    `db:"is_active"`
	RequiresDeposit bool    `db:"requires_deposit"`
	DepositAmount   float64 `db:"deposit_amount"`
	model.Metadata
}

// Deposit returns the amount to collect up front, zero when the service takes no deposit.
func (s Service) Deposit() float64 {
	if !s.RequiresDeposit || s.DepositAmount <= 0 {
		return 0
	}

	return s.DepositAmount
}
