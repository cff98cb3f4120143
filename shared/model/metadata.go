package model

import (
	"time"

	"github.com/lucasaveiro/service-scheduler/shared/constant"
)

// Metadata holds the audit columns every table carries.
type Metadata struct {
	CreatedAt  time.Time `db:"created_at"  json:"created_at"`
	ModifiedAt time.Time `db:"modified_at" json:"modified_at"`
	CreatedBy  string    `db:"created_by"`
	ModifiedBy string    `db:"modified_by"`
}

func NewMetadata(actor string, at time.Time) Metadata {
	return Metadata{
		CreatedAt:  at,
		ModifiedAt: at,
		CreatedBy:  actor,
		ModifiedBy: actor,
	}
}

// Modified adds the audit columns of an update by actor to fields.
func Modified(fields map[string]any, actor string, at time.Time) map[string]any {
	if fields == nil {
		fields = make(map[string]any, 2)
	}

	fields[constant.FieldModifiedAt] = at
	fields[constant.FieldModifiedBy] = actor

	return fields
}
