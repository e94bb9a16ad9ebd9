package model

import (
	"github.com/google/uuid"
)

// Skill is one entry in the tenant's ordered skill list, grouped by Category
// when rendered.
type Skill struct {
	AutoTimeModel

	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Category    string    `gorm:"type:varchar(100);not null;default:''"`
	IconURL     string    `gorm:"type:varchar(500);not null;default:''"`
	Description string    `gorm:"type:text;not null;default:''"`
	Position    int       `gorm:"not null;default:0"`
}

// TableName returns the table name for Skill
func (Skill) TableName() string {
	return "skills"
}
