package model

import (
	"encoding/json"

	"github.com/google/uuid"
)

// ThemePreset is a platform-wide theme catalog entry. Not tenant-scoped.
type ThemePreset struct {
	AutoTimeModel

	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name          string          `gorm:"type:varchar(50);not null"`
	Slug          string          `gorm:"type:varchar(60);not null;uniqueIndex"`
	Description   string          `gorm:"type:text;not null;default:''"`
	PreviewImage  string          `gorm:"type:varchar(200);not null;default:''"`
	IsPremium     bool            `gorm:"not null;default:false"`
	IsActive      bool            `gorm:"not null;default:true"`
	DefaultConfig json.RawMessage `gorm:"type:jsonb"`
	CSSFile       string          `gorm:"type:varchar(100);not null;default:''"`
	JSFile        string          `gorm:"type:varchar(100);not null;default:''"`
	Position      int             `gorm:"not null;default:0"`
}

// TableName returns the table name for ThemePreset
func (ThemePreset) TableName() string {
	return "theme_presets"
}
