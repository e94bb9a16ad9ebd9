package model

import (
	"github.com/google/uuid"
)

// CustomItem is one card inside a custom section.
type CustomItem struct {
	AutoTimeModel

	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	SectionID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"type:varchar(200);not null"`
	Subtitle    string    `gorm:"type:varchar(200);not null;default:''"`
	Description string    `gorm:"type:text;not null;default:''"`
	Link        string    `gorm:"type:varchar(500);not null;default:''"`
	IconURL     string    `gorm:"type:varchar(500);not null;default:''"`
	Position    int       `gorm:"not null;default:0"`
}

// TableName returns the table name for CustomItem
func (CustomItem) TableName() string {
	return "custom_items"
}
