package mock

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/portfoliopro/folio/internal/model"
	"github.com/portfoliopro/folio/internal/repo"
)

// getSingleton copies the tenant's row out of the map under the read lock.
func getSingleton[T any](db *InMemoryDB, rows map[uuid.UUID]T, tenantID uuid.UUID) (*T, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.Err != nil {
		return nil, db.Err
	}

	row, ok := rows[tenantID]
	if !ok {
		return nil, repo.ErrNotFound
	}

	return &row, nil
}

func (db *InMemoryDB) GetProfile(_ context.Context, tenantID uuid.UUID) (*model.Profile, error) {
	return getSingleton(db, db.Data.Profiles, tenantID)
}

func (db *InMemoryDB) SaveProfile(_ context.Context, profile *model.Profile) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.Err != nil {
		return db.Err
	}

	db.Data.Profiles[profile.TenantID] = *profile

	return nil
}

func (db *InMemoryDB) GetContactInfo(_ context.Context, tenantID uuid.UUID) (*model.ContactInfo, error) {
	return getSingleton(db, db.Data.ContactInfos, tenantID)
}

func (db *InMemoryDB) SaveContactInfo(_ context.Context, info *model.ContactInfo) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.Err != nil {
		return db.Err
	}

	db.Data.ContactInfos[info.TenantID] = *info

	return nil
}

func (db *InMemoryDB) GetSiteSettings(_ context.Context, tenantID uuid.UUID) (*model.SiteSettings, error) {
	return getSingleton(db, db.Data.SiteSettings, tenantID)
}

func (db *InMemoryDB) SaveSiteSettings(_ context.Context, settings *model.SiteSettings) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.Err != nil {
		return db.Err
	}

	db.Data.SiteSettings[settings.TenantID] = *settings

	return nil
}

// listOrdered filters rows by owner and sorts by position, ties by id.
func listOrdered[T any](db *InMemoryDB, rows map[uuid.UUID]T, owner uuid.UUID,
	ownerOf func(T) uuid.UUID, posOf func(T) int, idOf func(T) uuid.UUID,
) ([]T, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.Err != nil {
		return nil, db.Err
	}

	var out []T

	for _, row := range rows {
		if ownerOf(row) == owner {
			out = append(out, row)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if posOf(out[i]) != posOf(out[j]) {
			return posOf(out[i]) < posOf(out[j])
		}

		return lessUUID(idOf(out[i]), idOf(out[j]))
	})

	return out, nil
}

func createRow[T any](db *InMemoryDB, rows map[uuid.UUID]T, id uuid.UUID, row T) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.Err != nil {
		return db.Err
	}

	rows[id] = row

	return nil
}

func updateRow[T any](db *InMemoryDB, rows map[uuid.UUID]T, id uuid.UUID, row T,
	ownerOf func(T) uuid.UUID, owner uuid.UUID,
) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.Err != nil {
		return db.Err
	}

	existing, ok := rows[id]
	if !ok || ownerOf(existing) != owner {
		return repo.ErrNotFound
	}

	rows[id] = row

	return nil
}

func deleteRow[T any](db *InMemoryDB, rows map[uuid.UUID]T, id uuid.UUID,
	ownerOf func(T) uuid.UUID, owner uuid.UUID,
) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.Err != nil {
		return db.Err
	}

	existing, ok := rows[id]
	if !ok || ownerOf(existing) != owner {
		return repo.ErrNotFound
	}

	delete(rows, id)

	return nil
}

func (db *InMemoryDB) ListSocialLinks(_ context.Context, tenantID uuid.UUID) ([]model.SocialLink, error) {
	return listOrdered(db, db.Data.SocialLinks, tenantID,
		func(r model.SocialLink) uuid.UUID { return r.TenantID },
		func(r model.SocialLink) int { return r.Position },
		func(r model.SocialLink) uuid.UUID { return r.ID })
}

func (db *InMemoryDB) CreateSocialLink(_ context.Context, link *model.SocialLink) error {
	return createRow(db, db.Data.SocialLinks, link.ID, *link)
}

func (db *InMemoryDB) UpdateSocialLink(_ context.Context, link *model.SocialLink) error {
	return updateRow(db, db.Data.SocialLinks, link.ID, *link,
		func(r model.SocialLink) uuid.UUID { return r.TenantID }, link.TenantID)
}

func (db *InMemoryDB) DeleteSocialLink(_ context.Context, tenantID, id uuid.UUID) error {
	return deleteRow(db, db.Data.SocialLinks, id,
		func(r model.SocialLink) uuid.UUID { return r.TenantID }, tenantID)
}

func (db *InMemoryDB) ListExpertises(_ context.Context, tenantID uuid.UUID) ([]model.Expertise, error) {
	return listOrdered(db, db.Data.Expertises, tenantID,
		func(r model.Expertise) uuid.UUID { return r.TenantID },
		func(r model.Expertise) int { return r.Position },
		func(r model.Expertise) uuid.UUID { return r.ID })
}

func (db *InMemoryDB) CreateExpertise(_ context.Context, expertise *model.Expertise) error {
	return createRow(db, db.Data.Expertises, expertise.ID, *expertise)
}

func (db *InMemoryDB) UpdateExpertise(_ context.Context, expertise *model.Expertise) error {
	return updateRow(db, db.Data.Expertises, expertise.ID, *expertise,
		func(r model.Expertise) uuid.UUID { return r.TenantID }, expertise.TenantID)
}

func (db *InMemoryDB) DeleteExpertise(_ context.Context, tenantID, id uuid.UUID) error {
	return deleteRow(db, db.Data.Expertises, id,
		func(r model.Expertise) uuid.UUID { return r.TenantID }, tenantID)
}

func (db *InMemoryDB) ListExperiences(_ context.Context, tenantID uuid.UUID) ([]model.Experience, error) {
	return listOrdered(db, db.Data.Experiences, tenantID,
		func(r model.Experience) uuid.UUID { return r.TenantID },
		func(r model.Experience) int { return r.Position },
		func(r model.Experience) uuid.UUID { return r.ID })
}

func (db *InMemoryDB) CreateExperience(_ context.Context, experience *model.Experience) error {
	return createRow(db, db.Data.Experiences, experience.ID, *experience)
}

func (db *InMemoryDB) UpdateExperience(_ context.Context, experience *model.Experience) error {
	return updateRow(db, db.Data.Experiences, experience.ID, *experience,
		func(r model.Experience) uuid.UUID { return r.TenantID }, experience.TenantID)
}

func (db *InMemoryDB) DeleteExperience(_ context.Context, tenantID, id uuid.UUID) error {
	return deleteRow(db, db.Data.Experiences, id,
		func(r model.Experience) uuid.UUID { return r.TenantID }, tenantID)
}

func (db *InMemoryDB) ListEducations(_ context.Context, tenantID uuid.UUID) ([]model.Education, error) {
	return listOrdered(db, db.Data.Educations, tenantID,
		func(r model.Education) uuid.UUID { return r.TenantID },
		func(r model.Education) int { return r.Position },
		func(r model.Education) uuid.UUID { return r.ID })
}

func (db *InMemoryDB) CreateEducation(_ context.Context, education *model.Education) error {
	return createRow(db, db.Data.Educations, education.ID, *education)
}

func (db *InMemoryDB) UpdateEducation(_ context.Context, education *model.Education) error {
	return updateRow(db, db.Data.Educations, education.ID, *education,
		func(r model.Education) uuid.UUID { return r.TenantID }, education.TenantID)
}

func (db *InMemoryDB) DeleteEducation(_ context.Context, tenantID, id uuid.UUID) error {
	return deleteRow(db, db.Data.Educations, id,
		func(r model.Education) uuid.UUID { return r.TenantID }, tenantID)
}

func (db *InMemoryDB) ListSkills(_ context.Context, tenantID uuid.UUID) ([]model.Skill, error) {
	return listOrdered(db, db.Data.Skills, tenantID,
		func(r model.Skill) uuid.UUID { return r.TenantID },
		func(r model.Skill) int { return r.Position },
		func(r model.Skill) uuid.UUID { return r.ID })
}

func (db *InMemoryDB) CreateSkill(_ context.Context, skill *model.Skill) error {
	return createRow(db, db.Data.Skills, skill.ID, *skill)
}

func (db *InMemoryDB) UpdateSkill(_ context.Context, skill *model.Skill) error {
	return updateRow(db, db.Data.Skills, skill.ID, *skill,
		func(r model.Skill) uuid.UUID { return r.TenantID }, skill.TenantID)
}

func (db *InMemoryDB) DeleteSkill(_ context.Context, tenantID, id uuid.UUID) error {
	return deleteRow(db, db.Data.Skills, id,
		func(r model.Skill) uuid.UUID { return r.TenantID }, tenantID)
}

func (db *InMemoryDB) ListProjects(_ context.Context, tenantID uuid.UUID) ([]model.Project, error) {
	return listOrdered(db, db.Data.Projects, tenantID,
		func(r model.Project) uuid.UUID { return r.TenantID },
		func(r model.Project) int { return r.Position },
		func(r model.Project) uuid.UUID { return r.ID })
}

func (db *InMemoryDB) CreateProject(_ context.Context, project *model.Project) error {
	return createRow(db, db.Data.Projects, project.ID, *project)
}

func (db *InMemoryDB) UpdateProject(_ context.Context, project *model.Project) error {
	return updateRow(db, db.Data.Projects, project.ID, *project,
		func(r model.Project) uuid.UUID { return r.TenantID }, project.TenantID)
}

func (db *InMemoryDB) DeleteProject(_ context.Context, tenantID, id uuid.UUID) error {
	return deleteRow(db, db.Data.Projects, id,
		func(r model.Project) uuid.UUID { return r.TenantID }, tenantID)
}

func (db *InMemoryDB) ListCustomSections(ctx context.Context, tenantID uuid.UUID) ([]model.CustomSection, error) {
	sections, err := listOrdered(db, db.Data.CustomSections, tenantID,
		func(r model.CustomSection) uuid.UUID { return r.TenantID },
		func(r model.CustomSection) int { return r.Position },
		func(r model.CustomSection) uuid.UUID { return r.ID })
	if err != nil {
		return nil, err
	}

	for i := range sections {
		items, err := db.ListCustomItems(ctx, sections[i].ID)
		if err != nil {
			return nil, err
		}

		sections[i].Items = items
	}

	return sections, nil
}

func (db *InMemoryDB) GetCustomSection(ctx context.Context, tenantID, id uuid.UUID) (*model.CustomSection, error) {
	db.mu.RLock()
	section, ok := db.Data.CustomSections[id]
	err := db.Err
	db.mu.RUnlock()

	if err != nil {
		return nil, err
	}

	if !ok || section.TenantID != tenantID {
		return nil, repo.ErrNotFound
	}

	items, err := db.ListCustomItems(ctx, section.ID)
	if err != nil {
		return nil, err
	}

	section.Items = items

	return &section, nil
}

func (db *InMemoryDB) SectionSlugExists(_ context.Context, tenantID uuid.UUID, slug string) (bool, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.Err != nil {
		return false, db.Err
	}

	for _, s := range db.Data.CustomSections {
		if s.TenantID == tenantID && strings.EqualFold(s.Slug, slug) {
			return true, nil
		}
	}

	return false, nil
}

func (db *InMemoryDB) CreateCustomSection(_ context.Context, section *model.CustomSection) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.Err != nil {
		return db.Err
	}

	for _, s := range db.Data.CustomSections {
		if s.TenantID == section.TenantID && s.Slug == section.Slug {
			return repo.ErrUniqueConstraint
		}
	}

	stored := *section
	stored.Items = nil
	db.Data.CustomSections[section.ID] = stored

	return nil
}

func (db *InMemoryDB) UpdateCustomSection(_ context.Context, section *model.CustomSection) error {
	stored := *section
	stored.Items = nil

	return updateRow(db, db.Data.CustomSections, section.ID, stored,
		func(r model.CustomSection) uuid.UUID { return r.TenantID }, section.TenantID)
}

func (db *InMemoryDB) DeleteCustomSection(_ context.Context, tenantID, id uuid.UUID) error {
	err := deleteRow(db, db.Data.CustomSections, id,
		func(r model.CustomSection) uuid.UUID { return r.TenantID }, tenantID)
	if err != nil {
		return err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	for itemID, item := range db.Data.CustomItems {
		if item.SectionID == id {
			delete(db.Data.CustomItems, itemID)
		}
	}

	return nil
}

func (db *InMemoryDB) ListCustomItems(_ context.Context, sectionID uuid.UUID) ([]model.CustomItem, error) {
	return listOrdered(db, db.Data.CustomItems, sectionID,
		func(r model.CustomItem) uuid.UUID { return r.SectionID },
		func(r model.CustomItem) int { return r.Position },
		func(r model.CustomItem) uuid.UUID { return r.ID })
}

func (db *InMemoryDB) CreateCustomItem(_ context.Context, item *model.CustomItem) error {
	return createRow(db, db.Data.CustomItems, item.ID, *item)
}

func (db *InMemoryDB) UpdateCustomItem(_ context.Context, item *model.CustomItem) error {
	return updateRow(db, db.Data.CustomItems, item.ID, *item,
		func(r model.CustomItem) uuid.UUID { return r.SectionID }, item.SectionID)
}

func (db *InMemoryDB) DeleteCustomItem(_ context.Context, sectionID, id uuid.UUID) error {
	return deleteRow(db, db.Data.CustomItems, id,
		func(r model.CustomItem) uuid.UUID { return r.SectionID }, sectionID)
}

func (db *InMemoryDB) ListSavedThemes(_ context.Context, tenantID uuid.UUID) ([]model.SavedTheme, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.Err != nil {
		return nil, db.Err
	}

	var out []model.SavedTheme

	for _, theme := range db.Data.SavedThemes {
		if theme.TenantID == tenantID {
			out = append(out, theme)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}

		return lessUUID(out[i].ID, out[j].ID)
	})

	return out, nil
}

func (db *InMemoryDB) CreateSavedTheme(_ context.Context, theme *model.SavedTheme) error {
	return createRow(db, db.Data.SavedThemes, theme.ID, *theme)
}

func (db *InMemoryDB) DeleteSavedTheme(_ context.Context, tenantID, id uuid.UUID) error {
	return deleteRow(db, db.Data.SavedThemes, id,
		func(r model.SavedTheme) uuid.UUID { return r.TenantID }, tenantID)
}

func (db *InMemoryDB) ListThemePresets(_ context.Context) ([]model.ThemePreset, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.Err != nil {
		return nil, db.Err
	}

	var out []model.ThemePreset

	for _, preset := range db.Data.ThemePresets {
		if preset.IsActive {
			out = append(out, preset)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}

		return lessUUID(out[i].ID, out[j].ID)
	})

	return out, nil
}

func (db *InMemoryDB) GetThemePresetBySlug(_ context.Context, slug string) (*model.ThemePreset, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.Err != nil {
		return nil, db.Err
	}

	for _, preset := range db.Data.ThemePresets {
		if preset.Slug == slug && preset.IsActive {
			return &preset, nil
		}
	}

	return nil, repo.ErrNotFound
}
