package model

import (
	"github.com/google/uuid"
)

// ContactInfo is the per-tenant contact block. One row per tenant.
type ContactInfo struct {
	AutoTimeModel

	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Email    string    `gorm:"type:varchar(255);not null;default:''"`
	Phone    string    `gorm:"type:varchar(20);not null;default:''"`
	Heading  string    `gorm:"type:text;not null;default:''"`
}

// TableName returns the table name for ContactInfo
func (ContactInfo) TableName() string {
	return "contact_infos"
}
