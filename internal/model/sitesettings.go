package model

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Theme identifiers selectable as SiteSettings.ActiveTheme.
const (
	ThemeClassic   = "classic"
	ThemeTerminalX = "terminal_x"
)

// SiteSettings is the per-tenant appearance configuration. One row per
// tenant, created with defaults on registration.
type SiteSettings struct {
	AutoTimeModel

	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`

	PrimaryColor       string `gorm:"type:varchar(7);not null;default:'#eabe7c'"`
	SecondaryColor     string `gorm:"type:varchar(7);not null;default:'#23967f'"`
	BackgroundColor    string `gorm:"type:varchar(7);not null;default:'#0a0a0a'"`
	HeroAboutTextColor string `gorm:"type:varchar(7);not null;default:'#ffffff'"`
	GeneralTextColor   string `gorm:"type:varchar(7);not null;default:'#a0a0a0'"`

	NameFontSize           float64 `gorm:"not null;default:11.0"`
	GreetingFontSize       float64 `gorm:"not null;default:2.0"`
	NameFontSizeMobile     float64 `gorm:"not null;default:4.0"`
	GreetingFontSizeMobile float64 `gorm:"not null;default:1.5"`

	HeadingFont string `gorm:"type:varchar(50);not null;default:'DM Serif Display'"`
	BodyFont    string `gorm:"type:varchar(50);not null;default:'Public Sans'"`

	SectionHeadingColor          string  `gorm:"type:varchar(7);not null;default:'#ffffff'"`
	SectionHeadingFontSize       float64 `gorm:"not null;default:1.6"`
	SectionHeadingFontSizeMobile float64 `gorm:"not null;default:1.4"`

	ShowIntroSection   bool `gorm:"not null;default:true"`
	ShowAboutSection   bool `gorm:"not null;default:true"`
	ShowSkillsSection  bool `gorm:"not null;default:true"`
	ShowWorksSection   bool `gorm:"not null;default:true"`
	ShowContactSection bool `gorm:"not null;default:true"`

	BackgroundStyle string `gorm:"type:varchar(20);not null;default:'circles'"`
	CircleColor     string `gorm:"type:varchar(7);not null;default:'#6366f1'"`

	ActiveTheme string          `gorm:"type:varchar(30);not null;default:'classic'"`
	ThemeConfig json.RawMessage `gorm:"type:jsonb"`
	ButtonStyle string          `gorm:"type:varchar(20);not null;default:'rounded'"`
}

// TableName returns the table name for SiteSettings
func (SiteSettings) TableName() string {
	return "site_settings"
}

func (s SiteSettings) GetThemeConfig() map[string]any {
	if s.ThemeConfig == nil {
		return nil
	}

	var data map[string]any

	err := json.Unmarshal(s.ThemeConfig, &data)
	if err != nil {
		return nil // Return nil if unmarshalling fails to avoid panic
	}

	return data
}
