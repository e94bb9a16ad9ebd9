package model

import (
	"github.com/google/uuid"
)

// SavedTheme is a palette snapshot the tenant can re-apply later.
type SavedTheme struct {
	AutoTimeModel

	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"type:varchar(100);not null"`

	PrimaryColor    string `gorm:"type:varchar(7);not null;default:'#6366f1'"`
	SecondaryColor  string `gorm:"type:varchar(7);not null;default:'#a5b4fc'"`
	BackgroundColor string `gorm:"type:varchar(7);not null;default:'#0a0a0a'"`
	TextColor       string `gorm:"type:varchar(7);not null;default:'#ffffff'"`
	HeadingFont     string `gorm:"type:varchar(50);not null;default:'DM Sans'"`
	BodyFont        string `gorm:"type:varchar(50);not null;default:'DM Sans'"`
	BackgroundStyle string `gorm:"type:varchar(20);not null;default:'circles'"`
	CircleColor     string `gorm:"type:varchar(7);not null;default:'#6366f1'"`
	ButtonStyle     string `gorm:"type:varchar(20);not null;default:'rounded'"`

	NameFontSize           float64 `gorm:"not null;default:4.5"`
	GreetingFontSize       float64 `gorm:"not null;default:1.3"`
	SectionHeadingFontSize float64 `gorm:"not null;default:1.0"`
}

// TableName returns the table name for SavedTheme
func (SavedTheme) TableName() string {
	return "saved_themes"
}
