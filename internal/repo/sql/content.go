package sql

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/portfoliopro/folio/internal/errs"
	"github.com/portfoliopro/folio/internal/model"
	"github.com/portfoliopro/folio/internal/repo"
	"github.com/portfoliopro/folio/internal/repo/violations"
)

// getSingleton fetches the single row a tenant owns in the given table.
func getSingleton[T any](ctx context.Context, db *gorm.DB, tenantID uuid.UUID) (*T, error) {
	var row T

	err := db.WithContext(ctx).Where("tenant_id = ?", tenantID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	} else if err != nil {
		return nil, errs.Wrap(repo.ErrGetResource, err)
	}

	return &row, nil
}

// saveSingleton upserts on the tenant_id unique index so registration
// defaults and later edits go through the same path.
func saveSingleton(ctx context.Context, db *gorm.DB, row any) error {
	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}},
		UpdateAll: true,
	}).Create(row).Error
	if err != nil {
		return errs.Wrap(repo.ErrUpdateResource, err)
	}

	return nil
}

// listOwned returns the owner's rows ordered by position, ties by id.
func listOwned[T any](ctx context.Context, db *gorm.DB, ownerColumn string, ownerID uuid.UUID) ([]T, error) {
	var rows []T

	err := db.WithContext(ctx).
		Where(ownerColumn+" = ?", ownerID).
		Order("position asc, id asc").
		Find(&rows).Error
	if err != nil {
		return nil, errs.Wrap(repo.ErrGetResource, err)
	}

	return rows, nil
}

func createRow(ctx context.Context, db *gorm.DB, row any) error {
	err := db.WithContext(ctx).Create(row).Error
	if violations.IsUniqueConstraint(err) {
		return errs.Wrap(repo.ErrUniqueConstraint, err)
	} else if err != nil {
		return errs.Wrap(repo.ErrCreateResource, err)
	}

	return nil
}

// updateOwned rewrites every column of the row, keyed by primary key and
// guarded by the owner column so a tenant cannot touch foreign rows.
func updateOwned(ctx context.Context, db *gorm.DB, row any, ownerColumn string, ownerID uuid.UUID) error {
	res := db.WithContext(ctx).
		Model(row).
		Where(ownerColumn+" = ?", ownerID).
		Select("*").
		Omit("id", ownerColumn, "created_at").
		Updates(row)

	if violations.IsUniqueConstraint(res.Error) {
		return errs.Wrap(repo.ErrUniqueConstraint, res.Error)
	} else if res.Error != nil {
		return errs.Wrap(repo.ErrUpdateResource, res.Error)
	}

	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}

	return nil
}

func deleteOwned[T any](ctx context.Context, db *gorm.DB, ownerColumn string, ownerID, id uuid.UUID) error {
	var row T

	res := db.WithContext(ctx).
		Where("id = ?", id).
		Where(ownerColumn+" = ?", ownerID).
		Delete(&row)
	if res.Error != nil {
		return errs.Wrap(repo.ErrDeleteResource, res.Error)
	}

	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}

	return nil
}

func (r *Repository) GetProfile(ctx context.Context, tenantID uuid.UUID) (*model.Profile, error) {
	return getSingleton[model.Profile](ctx, r.db, tenantID)
}

func (r *Repository) SaveProfile(ctx context.Context, profile *model.Profile) error {
	return saveSingleton(ctx, r.db, profile)
}

func (r *Repository) GetContactInfo(ctx context.Context, tenantID uuid.UUID) (*model.ContactInfo, error) {
	return getSingleton[model.ContactInfo](ctx, r.db, tenantID)
}

func (r *Repository) SaveContactInfo(ctx context.Context, info *model.ContactInfo) error {
	return saveSingleton(ctx, r.db, info)
}

func (r *Repository) GetSiteSettings(ctx context.Context, tenantID uuid.UUID) (*model.SiteSettings, error) {
	return getSingleton[model.SiteSettings](ctx, r.db, tenantID)
}

func (r *Repository) SaveSiteSettings(ctx context.Context, settings *model.SiteSettings) error {
	return saveSingleton(ctx, r.db, settings)
}

func (r *Repository) ListSocialLinks(ctx context.Context, tenantID uuid.UUID) ([]model.SocialLink, error) {
	return listOwned[model.SocialLink](ctx, r.db, "tenant_id", tenantID)
}

func (r *Repository) CreateSocialLink(ctx context.Context, link *model.SocialLink) error {
	return createRow(ctx, r.db, link)
}

func (r *Repository) UpdateSocialLink(ctx context.Context, link *model.SocialLink) error {
	return updateOwned(ctx, r.db, link, "tenant_id", link.TenantID)
}

func (r *Repository) DeleteSocialLink(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleteOwned[model.SocialLink](ctx, r.db, "tenant_id", tenantID, id)
}

func (r *Repository) ListExpertises(ctx context.Context, tenantID uuid.UUID) ([]model.Expertise, error) {
	return listOwned[model.Expertise](ctx, r.db, "tenant_id", tenantID)
}

func (r *Repository) CreateExpertise(ctx context.Context, expertise *model.Expertise) error {
	return createRow(ctx, r.db, expertise)
}

func (r *Repository) UpdateExpertise(ctx context.Context, expertise *model.Expertise) error {
	return updateOwned(ctx, r.db, expertise, "tenant_id", expertise.TenantID)
}

func (r *Repository) DeleteExpertise(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleteOwned[model.Expertise](ctx, r.db, "tenant_id", tenantID, id)
}

func (r *Repository) ListExperiences(ctx context.Context, tenantID uuid.UUID) ([]model.Experience, error) {
	return listOwned[model.Experience](ctx, r.db, "tenant_id", tenantID)
}

func (r *Repository) CreateExperience(ctx context.Context, experience *model.Experience) error {
	return createRow(ctx, r.db, experience)
}

func (r *Repository) UpdateExperience(ctx context.Context, experience *model.Experience) error {
	return updateOwned(ctx, r.db, experience, "tenant_id", experience.TenantID)
}

func (r *Repository) DeleteExperience(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleteOwned[model.Experience](ctx, r.db, "tenant_id", tenantID, id)
}

func (r *Repository) ListEducations(ctx context.Context, tenantID uuid.UUID) ([]model.Education, error) {
	return listOwned[model.Education](ctx, r.db, "tenant_id", tenantID)
}

func (r *Repository) CreateEducation(ctx context.Context, education *model.Education) error {
	return createRow(ctx, r.db, education)
}

func (r *Repository) UpdateEducation(ctx context.Context, education *model.Education) error {
	return updateOwned(ctx, r.db, education, "tenant_id", education.TenantID)
}

func (r *Repository) DeleteEducation(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleteOwned[model.Education](ctx, r.db, "tenant_id", tenantID, id)
}

func (r *Repository) ListSkills(ctx context.Context, tenantID uuid.UUID) ([]model.Skill, error) {
	return listOwned[model.Skill](ctx, r.db, "tenant_id", tenantID)
}

func (r *Repository) CreateSkill(ctx context.Context, skill *model.Skill) error {
	return createRow(ctx, r.db, skill)
}

func (r *Repository) UpdateSkill(ctx context.Context, skill *model.Skill) error {
	return updateOwned(ctx, r.db, skill, "tenant_id", skill.TenantID)
}

func (r *Repository) DeleteSkill(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleteOwned[model.Skill](ctx, r.db, "tenant_id", tenantID, id)
}

func (r *Repository) ListProjects(ctx context.Context, tenantID uuid.UUID) ([]model.Project, error) {
	return listOwned[model.Project](ctx, r.db, "tenant_id", tenantID)
}

func (r *Repository) CreateProject(ctx context.Context, project *model.Project) error {
	return createRow(ctx, r.db, project)
}

func (r *Repository) UpdateProject(ctx context.Context, project *model.Project) error {
	return updateOwned(ctx, r.db, project, "tenant_id", project.TenantID)
}

func (r *Repository) DeleteProject(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleteOwned[model.Project](ctx, r.db, "tenant_id", tenantID, id)
}

func (r *Repository) ListCustomSections(ctx context.Context, tenantID uuid.UUID) ([]model.CustomSection, error) {
	var sections []model.CustomSection

	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Preload("Items", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position asc, id asc")
		}).
		Order("position asc, id asc").
		Find(&sections).Error
	if err != nil {
		return nil, errs.Wrap(repo.ErrGetResource, err)
	}

	return sections, nil
}

func (r *Repository) GetCustomSection(ctx context.Context, tenantID, id uuid.UUID) (*model.CustomSection, error) {
	var section model.CustomSection

	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Preload("Items", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position asc, id asc")
		}).
		First(&section).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	} else if err != nil {
		return nil, errs.Wrap(repo.ErrGetResource, err)
	}

	return &section, nil
}

func (r *Repository) SectionSlugExists(ctx context.Context, tenantID uuid.UUID, slug string) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&model.CustomSection{}).
		Where("tenant_id = ? AND slug = ?", tenantID, slug).
		Count(&count).Error
	if err != nil {
		return false, errs.Wrap(repo.ErrGetResource, err)
	}

	return count > 0, nil
}

func (r *Repository) CreateCustomSection(ctx context.Context, section *model.CustomSection) error {
	return createRow(ctx, r.db, section)
}

func (r *Repository) UpdateCustomSection(ctx context.Context, section *model.CustomSection) error {
	res := r.db.WithContext(ctx).
		Model(section).
		Where("tenant_id = ?", section.TenantID).
		Select("*").
		Omit("id", "tenant_id", "created_at", "Items").
		Updates(section)

	if violations.IsUniqueConstraint(res.Error) {
		return errs.Wrap(repo.ErrUniqueConstraint, res.Error)
	} else if res.Error != nil {
		return errs.Wrap(repo.ErrUpdateResource, res.Error)
	}

	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}

	return nil
}

func (r *Repository) DeleteCustomSection(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleteOwned[model.CustomSection](ctx, r.db, "tenant_id", tenantID, id)
}

func (r *Repository) ListCustomItems(ctx context.Context, sectionID uuid.UUID) ([]model.CustomItem, error) {
	return listOwned[model.CustomItem](ctx, r.db, "section_id", sectionID)
}

func (r *Repository) CreateCustomItem(ctx context.Context, item *model.CustomItem) error {
	return createRow(ctx, r.db, item)
}

func (r *Repository) UpdateCustomItem(ctx context.Context, item *model.CustomItem) error {
	return updateOwned(ctx, r.db, item, "section_id", item.SectionID)
}

func (r *Repository) DeleteCustomItem(ctx context.Context, sectionID, id uuid.UUID) error {
	return deleteOwned[model.CustomItem](ctx, r.db, "section_id", sectionID, id)
}

func (r *Repository) ListSavedThemes(ctx context.Context, tenantID uuid.UUID) ([]model.SavedTheme, error) {
	var themes []model.SavedTheme

	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at desc, id asc").
		Find(&themes).Error
	if err != nil {
		return nil, errs.Wrap(repo.ErrGetResource, err)
	}

	return themes, nil
}

func (r *Repository) CreateSavedTheme(ctx context.Context, theme *model.SavedTheme) error {
	return createRow(ctx, r.db, theme)
}

func (r *Repository) DeleteSavedTheme(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleteOwned[model.SavedTheme](ctx, r.db, "tenant_id", tenantID, id)
}

func (r *Repository) ListThemePresets(ctx context.Context) ([]model.ThemePreset, error) {
	var presets []model.ThemePreset

	err := r.db.WithContext(ctx).
		Where("is_active").
		Order("position asc, id asc").
		Find(&presets).Error
	if err != nil {
		return nil, errs.Wrap(repo.ErrGetResource, err)
	}

	return presets, nil
}

func (r *Repository) GetThemePresetBySlug(ctx context.Context, slug string) (*model.ThemePreset, error) {
	var preset model.ThemePreset

	err := r.db.WithContext(ctx).Where("slug = ? AND is_active", slug).First(&preset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	} else if err != nil {
		return nil, errs.Wrap(repo.ErrGetResource, err)
	}

	return &preset, nil
}
