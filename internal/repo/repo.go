package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/portfoliopro/folio/internal/model"
)

const DefaultLimit = 100

var (
	ErrNotFound         = errors.New("resource not found")
	ErrTenantNotFound   = errors.New("tenant not found")
	ErrUniqueConstraint = errors.New("unique constraint violation")
	ErrCreateResource   = errors.New("failed to create resource")
	ErrUpdateResource   = errors.New("failed to update resource")
	ErrDeleteResource   = errors.New("failed to delete resource")
	ErrGetResource      = errors.New("failed to get resource")
)

// TenantQuery narrows and pages Directory listings.
type TenantQuery struct {
	Role   *model.TenantRole
	Active *bool
	Banned *bool

	// Search matches username, email or subdomain, case-insensitive.
	Search string

	Limit  int
	Offset int
}

// Directory is the authoritative lookup for tenants. FindServable is the
// only query the request path uses; everything else serves auth and fleet
// management.
type Directory interface {
	// FindServable returns the tenant owning the subdomain if it is active
	// and not banned. Matching is case-insensitive. Missing, banned and
	// deactivated tenants all yield ErrTenantNotFound.
	FindServable(ctx context.Context, subdomain string) (*model.Tenant, error)

	FindByID(ctx context.Context, id uuid.UUID) (*model.Tenant, error)
	FindByUsername(ctx context.Context, username string) (*model.Tenant, error)
	FindByEmail(ctx context.Context, email string) (*model.Tenant, error)
	FindBySubdomain(ctx context.Context, subdomain string) (*model.Tenant, error)

	CreateTenant(ctx context.Context, tenant *model.Tenant) error
	UpdateTenant(ctx context.Context, tenant *model.Tenant) error

	ListTenants(ctx context.Context, query TenantQuery) ([]*model.Tenant, int, error)
	CountTenants(ctx context.Context, query TenantQuery) (int, error)
}

// ContentStore persists the per-tenant portfolio content. Listings of
// ordered collections return rows by ascending position, ties broken by id.
type ContentStore interface {
	GetProfile(ctx context.Context, tenantID uuid.UUID) (*model.Profile, error)
	SaveProfile(ctx context.Context, profile *model.Profile) error
	GetContactInfo(ctx context.Context, tenantID uuid.UUID) (*model.ContactInfo, error)
	SaveContactInfo(ctx context.Context, info *model.ContactInfo) error
	GetSiteSettings(ctx context.Context, tenantID uuid.UUID) (*model.SiteSettings, error)
	SaveSiteSettings(ctx context.Context, settings *model.SiteSettings) error

	ListSocialLinks(ctx context.Context, tenantID uuid.UUID) ([]model.SocialLink, error)
	CreateSocialLink(ctx context.Context, link *model.SocialLink) error
	UpdateSocialLink(ctx context.Context, link *model.SocialLink) error
	DeleteSocialLink(ctx context.Context, tenantID, id uuid.UUID) error

	ListExpertises(ctx context.Context, tenantID uuid.UUID) ([]model.Expertise, error)
	CreateExpertise(ctx context.Context, expertise *model.Expertise) error
	UpdateExpertise(ctx context.Context, expertise *model.Expertise) error
	DeleteExpertise(ctx context.Context, tenantID, id uuid.UUID) error

	ListExperiences(ctx context.Context, tenantID uuid.UUID) ([]model.Experience, error)
	CreateExperience(ctx context.Context, experience *model.Experience) error
	UpdateExperience(ctx context.Context, experience *model.Experience) error
	DeleteExperience(ctx context.Context, tenantID, id uuid.UUID) error

	ListEducations(ctx context.Context, tenantID uuid.UUID) ([]model.Education, error)
	CreateEducation(ctx context.Context, education *model.Education) error
	UpdateEducation(ctx context.Context, education *model.Education) error
	DeleteEducation(ctx context.Context, tenantID, id uuid.UUID) error

	ListSkills(ctx context.Context, tenantID uuid.UUID) ([]model.Skill, error)
	CreateSkill(ctx context.Context, skill *model.Skill) error
	UpdateSkill(ctx context.Context, skill *model.Skill) error
	DeleteSkill(ctx context.Context, tenantID, id uuid.UUID) error

	ListProjects(ctx context.Context, tenantID uuid.UUID) ([]model.Project, error)
	CreateProject(ctx context.Context, project *model.Project) error
	UpdateProject(ctx context.Context, project *model.Project) error
	DeleteProject(ctx context.Context, tenantID, id uuid.UUID) error

	// ListCustomSections preloads each section's items, both levels ordered.
	ListCustomSections(ctx context.Context, tenantID uuid.UUID) ([]model.CustomSection, error)
	GetCustomSection(ctx context.Context, tenantID, id uuid.UUID) (*model.CustomSection, error)
	SectionSlugExists(ctx context.Context, tenantID uuid.UUID, slug string) (bool, error)
	CreateCustomSection(ctx context.Context, section *model.CustomSection) error
	UpdateCustomSection(ctx context.Context, section *model.CustomSection) error
	DeleteCustomSection(ctx context.Context, tenantID, id uuid.UUID) error

	ListCustomItems(ctx context.Context, sectionID uuid.UUID) ([]model.CustomItem, error)
	CreateCustomItem(ctx context.Context, item *model.CustomItem) error
	UpdateCustomItem(ctx context.Context, item *model.CustomItem) error
	DeleteCustomItem(ctx context.Context, sectionID, id uuid.UUID) error

	ListSavedThemes(ctx context.Context, tenantID uuid.UUID) ([]model.SavedTheme, error)
	CreateSavedTheme(ctx context.Context, theme *model.SavedTheme) error
	DeleteSavedTheme(ctx context.Context, tenantID, id uuid.UUID) error

	// ListThemePresets returns active catalog entries ordered by position.
	// GetThemePresetBySlug only resolves active entries.
	ListThemePresets(ctx context.Context) ([]model.ThemePreset, error)
	GetThemePresetBySlug(ctx context.Context, slug string) (*model.ThemePreset, error)
}
