package model

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is a registered portfolio owner or platform administrator.
// The subdomain is the tenant's public address under the main domain.
type Tenant struct {
	AutoTimeModel

	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Username      string     `gorm:"type:varchar(150);not null;uniqueIndex"`
	Email         string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	Subdomain     string     `gorm:"type:varchar(63);not null;uniqueIndex"`
	PasswordHash  string     `gorm:"type:varchar(128);not null"`
	Role          TenantRole `gorm:"type:varchar(50);not null;default:'OWNER'"`
	Active        bool       `gorm:"not null;default:true"`
	Banned        bool       `gorm:"not null;default:false"`
	EmailVerified bool       `gorm:"not null;default:false"`
	LastLogin     *time.Time
}

// TableName returns the table name for Tenant
func (Tenant) TableName() string {
	return "tenants"
}

// Servable reports whether the tenant's portfolio may be served publicly.
func (t Tenant) Servable() bool {
	return t.Active && !t.Banned
}

func (t Tenant) IsPlatformAdmin() bool {
	return t.Role == RolePlatformAdmin
}
