package model

import (
	"github.com/google/uuid"
)

// Education is one entry in the tenant's ordered education history.
type Education struct {
	AutoTimeModel

	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Institution string    `gorm:"type:varchar(200);not null"`
	Degree      string    `gorm:"type:varchar(200);not null"`
	Timeframe   string    `gorm:"type:varchar(100);not null"`
	Description string    `gorm:"type:text;not null;default:''"`
	Position    int       `gorm:"not null;default:0"`
}

// TableName returns the table name for Education
func (Education) TableName() string {
	return "educations"
}
