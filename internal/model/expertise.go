package model

import (
	"github.com/google/uuid"
)

// Expertise is one headline competency shown in the hero section.
type Expertise struct {
	AutoTimeModel

	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"type:varchar(100);not null"`
	Position int       `gorm:"not null;default:0"`
}

// TableName returns the table name for Expertise
func (Expertise) TableName() string {
	return "expertises"
}
