package model

import (
	"github.com/google/uuid"
)

// Experience is one entry in the tenant's ordered work history.
type Experience struct {
	AutoTimeModel

	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Company     string    `gorm:"type:varchar(200);not null"`
	Role        string    `gorm:"type:varchar(200);not null"`
	Timeframe   string    `gorm:"type:varchar(100);not null"`
	Description string    `gorm:"type:text;not null;default:''"`
	Position    int       `gorm:"not null;default:0"`
}

// TableName returns the table name for Experience
func (Experience) TableName() string {
	return "experiences"
}
