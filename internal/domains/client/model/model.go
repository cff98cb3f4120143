package model

import (
	"strings"

	"github.com/lucasaveiro/service-scheduler/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "clients"
	EntityName = "client"

	FieldID                     = "id"
	FieldBusinessID             = "business_id"
	FieldFirstName              = "first_name"
	FieldLastName               = "last_name"
	FieldEmail                  = "email"
	FieldPhone                  = "phone"
	FieldStreet                 = "street"
	FieldCity                   = "city"
	FieldState                  = "state"
	FieldZipCode                = "zip_code"
	FieldPreferredContactMethod = "preferred_contact_method"
	FieldStatus                 = "status"
	FieldTags                   = "tags"
	FieldNotes                  = "notes"
)

const (
	ContactEmail = "email"
	ContactPhone = "phone"
	ContactSMS   = "sms"

	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Client struct {
	ID                     string         `db:"id"`
	BusinessID             string         `db:"business_id"`
	FirstName              string         `db:"first_name"`
	LastName               string         `db:"last_name"`
	Email                  string         `db:"email"`
	Phone                  string         `db:"phone"`
	Street                 string         `db:"street"`
	City                   string         `db:"city"`
	State                  string         `db:"state"`
	ZipCode                string         `db:"zip_code"`
	PreferredContactMethod string         `db:"preferred_contact_method"`
	Status                 string         `db:"status"`
	Tags                   pq.StringArray `db:"tags"`
	Notes                  string         `db:"notes"`
	model.Metadata
}

func (c Client) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
