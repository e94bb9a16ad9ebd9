package model

import (
	"github.com/google/uuid"
)

// Profile is the per-tenant hero and about content. Exactly one row per
// tenant, created with defaults on registration.
type Profile struct {
	AutoTimeModel

	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Name              string    `gorm:"type:varchar(100);not null;default:'Your Name'"`
	Greeting          string    `gorm:"type:varchar(200);not null;default:'Hi, I am'"`
	HeroBio           string    `gorm:"type:text;not null;default:''"`
	AboutText         string    `gorm:"type:text;not null;default:''"`
	AboutPhotoURL     string    `gorm:"type:varchar(500);not null;default:''"`
	CVLink            string    `gorm:"type:varchar(500);not null;default:''"`
	AIAssistantScript string    `gorm:"type:text;not null;default:''"`
}

// TableName returns the table name for Profile
func (Profile) TableName() string {
	return "profiles"
}
