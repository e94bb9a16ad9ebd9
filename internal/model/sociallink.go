package model

import (
	"github.com/google/uuid"
)

// SocialLink is one entry in the tenant's ordered list of social profiles.
type SocialLink struct {
	AutoTimeModel

	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Platform    string    `gorm:"type:varchar(20);not null"`
	DisplayName string    `gorm:"type:varchar(50);not null;default:''"`
	URL         string    `gorm:"type:varchar(500);not null;default:''"`
	Position    int       `gorm:"not null;default:0"`
}

// TableName returns the table name for SocialLink
func (SocialLink) TableName() string {
	return "social_links"
}
