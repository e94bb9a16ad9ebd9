package model

import (
	"github.com/google/uuid"
)

// Project is one entry in the tenant's ordered portfolio of works.
type Project struct {
	AutoTimeModel

	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"type:varchar(200);not null"`
	Category    string    `gorm:"type:varchar(100);not null;default:''"`
	URL         string    `gorm:"type:varchar(500);not null;default:''"`
	Description string    `gorm:"type:text;not null;default:''"`
	IconURL     string    `gorm:"type:varchar(500);not null;default:''"`
	Position    int       `gorm:"not null;default:0"`
}

// TableName returns the table name for Project
func (Project) TableName() string {
	return "projects"
}
