package model

import (
	"github.com/google/uuid"
)

// Card layouts selectable for a custom section.
const (
	CardLayoutGrid     = "grid"
	CardLayoutList     = "list"
	CardLayoutTimeline = "timeline"
)

// CustomSection is a tenant-defined portfolio section. The slug is unique
// per tenant, derived from the title with a numeric suffix on collision.
// System sections are seeded on registration and cannot be deleted.
type CustomSection struct {
	AutoTimeModel

	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index:idx_custom_sections_tenant_slug,unique"`
	Title    string    `gorm:"type:varchar(100);not null"`
	Slug     string    `gorm:"type:varchar(120);not null;index:idx_custom_sections_tenant_slug,unique"`
	Icon     string    `gorm:"type:varchar(50);not null;default:'fas fa-layer-group'"`
	Position int       `gorm:"not null;default:0"`

	IsVisible bool `gorm:"not null;default:true"`
	IsSystem  bool `gorm:"not null;default:false"`

	ShowImage      bool   `gorm:"not null;default:true"`
	ShowLinkButton bool   `gorm:"not null;default:true"`
	ButtonText     string `gorm:"type:varchar(50);not null;default:'View Details'"`
	CardLayout     string `gorm:"type:varchar(20);not null;default:'grid'"`

	Items []CustomItem `gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for CustomSection
func (CustomSection) TableName() string {
	return "custom_sections"
}
