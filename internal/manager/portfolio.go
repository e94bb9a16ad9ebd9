package manager

import (
	"context"

	"github.com/google/uuid"

	"github.com/portfoliopro/folio/internal/model"
	"github.com/portfoliopro/folio/internal/repo"
	"github.com/portfoliopro/folio/utils/sanitise"
	"github.com/portfoliopro/folio/utils/slug"
)

// PortfolioManager owns the tenant's content writes. Every mutation is
// sanitised before it is stored and followed by a cache invalidation for the
// tenant's subdomain.
type PortfolioManager struct {
	content     repo.ContentStore
	invalidator CacheInvalidator
}

func NewPortfolioManager(content repo.ContentStore, invalidator CacheInvalidator) *PortfolioManager {
	return &PortfolioManager{
		content:     content,
		invalidator: invalidator,
	}
}

// mutate runs the store write and, only on success, invalidates the
// tenant's cached pages.
func (m *PortfolioManager) mutate(ctx context.Context, tenant *model.Tenant, fn func() error) error {
	err := fn()
	if err != nil {
		return err
	}

	m.invalidator.Invalidate(ctx, tenant.Subdomain)

	return nil
}

func (m *PortfolioManager) GetProfile(ctx context.Context, tenant *model.Tenant) (*model.Profile, error) {
	return m.content.GetProfile(ctx, tenant.ID)
}

func (m *PortfolioManager) SaveProfile(ctx context.Context, tenant *model.Tenant, profile *model.Profile) error {
	err := sanitise.PlainAll(&profile.Name, &profile.Greeting, &profile.CVLink, &profile.AboutPhotoURL)
	if err != nil {
		return err
	}

	profile.HeroBio, err = sanitise.RichText(profile.HeroBio)
	if err != nil {
		return err
	}

	profile.AboutText, err = sanitise.RichText(profile.AboutText)
	if err != nil {
		return err
	}

	profile.TenantID = tenant.ID
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}

	return m.mutate(ctx, tenant, func() error {
		return m.content.SaveProfile(ctx, profile)
	})
}

func (m *PortfolioManager) GetContactInfo(ctx context.Context, tenant *model.Tenant) (*model.ContactInfo, error) {
	return m.content.GetContactInfo(ctx, tenant.ID)
}

func (m *PortfolioManager) SaveContactInfo(ctx context.Context, tenant *model.Tenant, info *model.ContactInfo) error {
	err := sanitise.PlainAll(&info.Email, &info.Phone, &info.Heading)
	if err != nil {
		return err
	}

	info.TenantID = tenant.ID
	if info.ID == uuid.Nil {
		info.ID = uuid.New()
	}

	return m.mutate(ctx, tenant, func() error {
		return m.content.SaveContactInfo(ctx, info)
	})
}

func (m *PortfolioManager) GetSiteSettings(ctx context.Context, tenant *model.Tenant) (*model.SiteSettings, error) {
	return m.content.GetSiteSettings(ctx, tenant.ID)
}

func (m *PortfolioManager) SaveSiteSettings(ctx context.Context, tenant *model.Tenant, settings *model.SiteSettings) error {
	settings.TenantID = tenant.ID
	if settings.ID == uuid.Nil {
		settings.ID = uuid.New()
	}

	return m.mutate(ctx, tenant, func() error {
		return m.content.SaveSiteSettings(ctx, settings)
	})
}

func (m *PortfolioManager) ListSocialLinks(ctx context.Context, tenant *model.Tenant) ([]model.SocialLink, error) {
	return m.content.ListSocialLinks(ctx, tenant.ID)
}

func (m *PortfolioManager) ListExpertises(ctx context.Context, tenant *model.Tenant) ([]model.Expertise, error) {
	return m.content.ListExpertises(ctx, tenant.ID)
}

func (m *PortfolioManager) ListExperiences(ctx context.Context, tenant *model.Tenant) ([]model.Experience, error) {
	return m.content.ListExperiences(ctx, tenant.ID)
}

func (m *PortfolioManager) ListEducations(ctx context.Context, tenant *model.Tenant) ([]model.Education, error) {
	return m.content.ListEducations(ctx, tenant.ID)
}

func (m *PortfolioManager) ListSkills(ctx context.Context, tenant *model.Tenant) ([]model.Skill, error) {
	return m.content.ListSkills(ctx, tenant.ID)
}

func (m *PortfolioManager) ListProjects(ctx context.Context, tenant *model.Tenant) ([]model.Project, error) {
	return m.content.ListProjects(ctx, tenant.ID)
}

func (m *PortfolioManager) CreateSocialLink(ctx context.Context, tenant *model.Tenant, link *model.SocialLink) error {
	err := sanitise.PlainAll(&link.Platform, &link.DisplayName, &link.URL)
	if err != nil {
		return err
	}

	link.ID = uuid.New()
	link.TenantID = tenant.ID

	return m.mutate(ctx, tenant, func() error {
		return m.content.CreateSocialLink(ctx, link)
	})
}

func (m *PortfolioManager) UpdateSocialLink(ctx context.Context, tenant *model.Tenant, link *model.SocialLink) error {
	err := sanitise.PlainAll(&link.Platform, &link.DisplayName, &link.URL)
	if err != nil {
		return err
	}

	link.TenantID = tenant.ID

	return m.mutate(ctx, tenant, func() error {
		return m.content.UpdateSocialLink(ctx, link)
	})
}

func (m *PortfolioManager) DeleteSocialLink(ctx context.Context, tenant *model.Tenant, id uuid.UUID) error {
	return m.mutate(ctx, tenant, func() error {
		return m.content.DeleteSocialLink(ctx, tenant.ID, id)
	})
}

func (m *PortfolioManager) CreateExpertise(ctx context.Context, tenant *model.Tenant, expertise *model.Expertise) error {
	err := sanitise.PlainAll(&expertise.Name)
	if err != nil {
		return err
	}

	if expertise.Name == "" {
		return ErrEmptyTitle
	}

	expertise.ID = uuid.New()
	expertise.TenantID = tenant.ID

	return m.mutate(ctx, tenant, func() error {
		return m.content.CreateExpertise(ctx, expertise)
	})
}

func (m *PortfolioManager) UpdateExpertise(ctx context.Context, tenant *model.Tenant, expertise *model.Expertise) error {
	err := sanitise.PlainAll(&expertise.Name)
	if err != nil {
		return err
	}

	expertise.TenantID = tenant.ID

	return m.mutate(ctx, tenant, func() error {
		return m.content.UpdateExpertise(ctx, expertise)
	})
}

func (m *PortfolioManager) DeleteExpertise(ctx context.Context, tenant *model.Tenant, id uuid.UUID) error {
	return m.mutate(ctx, tenant, func() error {
		return m.content.DeleteExpertise(ctx, tenant.ID, id)
	})
}

func (m *PortfolioManager) CreateExperience(ctx context.Context, tenant *model.Tenant, experience *model.Experience) error {
	err := m.cleanExperience(experience)
	if err != nil {
		return err
	}

	experience.ID = uuid.New()
	experience.TenantID = tenant.ID

	return m.mutate(ctx, tenant, func() error {
		return m.content.CreateExperience(ctx, experience)
	})
}

func (m *PortfolioManager) UpdateExperience(ctx context.Context, tenant *model.Tenant, experience *model.Experience) error {
	err := m.cleanExperience(experience)
	if err != nil {
		return err
	}

	experience.TenantID = tenant.ID

	return m.mutate(ctx, tenant, func() error {
		return m.content.UpdateExperience(ctx, experience)
	})
}

func (m *PortfolioManager) cleanExperience(experience *model.Experience) error {
	err := sanitise.PlainAll(&experience.Company, &experience.Role, &experience.Timeframe)
	if err != nil {
		return err
	}

	experience.Description, err = sanitise.RichText(experience.Description)

	return err
}

func (m *PortfolioManager) DeleteExperience(ctx context.Context, tenant *model.Tenant, id uuid.UUID) error {
	return m.mutate(ctx, tenant, func() error {
		return m.content.DeleteExperience(ctx, tenant.ID, id)
	})
}

func (m *PortfolioManager) CreateEducation(ctx context.Context, tenant *model.Tenant, education *model.Education) error {
	err := m.cleanEducation(education)
	if err != nil {
		return err
	}

	education.ID = uuid.New()
	education.TenantID = tenant.ID

	return m.mutate(ctx, tenant, func() error {
		return m.content.CreateEducation(ctx, education)
	})
}

func (m *PortfolioManager) UpdateEducation(ctx context.Context, tenant *model.Tenant, education *model.Education) error {
	err := m.cleanEducation(education)
	if err != nil {
		return err
	}

	education.TenantID = tenant.ID

	return m.mutate(ctx, tenant, func() error {
		return m.content.UpdateEducation(ctx, education)
	})
}

func (m *PortfolioManager) cleanEducation(education *model.Education) error {
	err := sanitise.PlainAll(&education.Institution, &education.Degree, &education.Timeframe)
	if err != nil {
		return err
	}

	education.Description, err = sanitise.RichText(education.Description)

	return err
}

func (m *PortfolioManager) DeleteEducation(ctx context.Context, tenant *model.Tenant, id uuid.UUID) error {
	return m.mutate(ctx, tenant, func() error {
		return m.content.DeleteEducation(ctx, tenant.ID, id)
	})
}

func (m *PortfolioManager) CreateSkill(ctx context.Context, tenant *model.Tenant, skill *model.Skill) error {
	err := m.cleanSkill(skill)
	if err != nil {
		return err
	}

	skill.ID = uuid.New()
	skill.TenantID = tenant.ID

	return m.mutate(ctx, tenant, func() error {
		return m.content.CreateSkill(ctx, skill)
	})
}

func (m *PortfolioManager) UpdateSkill(ctx context.Context, tenant *model.Tenant, skill *model.Skill) error {
	err := m.cleanSkill(skill)
	if err != nil {
		return err
	}

	skill.TenantID = tenant.ID

	return m.mutate(ctx, tenant, func() error {
		return m.content.UpdateSkill(ctx, skill)
	})
}

func (m *PortfolioManager) cleanSkill(skill *model.Skill) error {
	err := sanitise.PlainAll(&skill.Name, &skill.Category, &skill.IconURL)
	if err != nil {
		return err
	}

	skill.Description, err = sanitise.RichText(skill.Description)

	return err
}

func (m *PortfolioManager) DeleteSkill(ctx context.Context, tenant *model.Tenant, id uuid.UUID) error {
	return m.mutate(ctx, tenant, func() error {
		return m.content.DeleteSkill(ctx, tenant.ID, id)
	})
}

func (m *PortfolioManager) CreateProject(ctx context.Context, tenant *model.Tenant, project *model.Project) error {
	err := m.cleanProject(project)
	if err != nil {
		return err
	}

	project.ID = uuid.New()
	project.TenantID = tenant.ID

	return m.mutate(ctx, tenant, func() error {
		return m.content.CreateProject(ctx, project)
	})
}

func (m *PortfolioManager) UpdateProject(ctx context.Context, tenant *model.Tenant, project *model.Project) error {
	err := m.cleanProject(project)
	if err != nil {
		return err
	}

	project.TenantID = tenant.ID

	return m.mutate(ctx, tenant, func() error {
		return m.content.UpdateProject(ctx, project)
	})
}

func (m *PortfolioManager) cleanProject(project *model.Project) error {
	err := sanitise.PlainAll(&project.Title, &project.Category, &project.URL, &project.IconURL)
	if err != nil {
		return err
	}

	project.Description, err = sanitise.RichText(project.Description)

	return err
}

func (m *PortfolioManager) DeleteProject(ctx context.Context, tenant *model.Tenant, id uuid.UUID) error {
	return m.mutate(ctx, tenant, func() error {
		return m.content.DeleteProject(ctx, tenant.ID, id)
	})
}

func (m *PortfolioManager) ListCustomSections(ctx context.Context, tenant *model.Tenant) ([]model.CustomSection, error) {
	return m.content.ListCustomSections(ctx, tenant.ID)
}

// CreateCustomSection derives the slug from the title. On collision within
// the tenant a numeric suffix is appended: "work", "work-1", "work-2".
func (m *PortfolioManager) CreateCustomSection(ctx context.Context, tenant *model.Tenant, section *model.CustomSection) error {
	err := sanitise.PlainAll(&section.Title, &section.Icon, &section.ButtonText)
	if err != nil {
		return err
	}

	if section.Title == "" {
		return ErrEmptyTitle
	}

	derived, err := m.deriveSlug(ctx, tenant.ID, section.Title)
	if err != nil {
		return err
	}

	section.ID = uuid.New()
	section.TenantID = tenant.ID
	section.Slug = derived
	section.IsSystem = false

	if section.CardLayout == "" {
		section.CardLayout = model.CardLayoutGrid
	}

	return m.mutate(ctx, tenant, func() error {
		return m.content.CreateCustomSection(ctx, section)
	})
}

func (m *PortfolioManager) deriveSlug(ctx context.Context, tenantID uuid.UUID, title string) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = "section"
	}

	var lookupErr error

	derived := slug.Dedupe(base, func(candidate string) bool {
		exists, err := m.content.SectionSlugExists(ctx, tenantID, candidate)
		if err != nil {
			lookupErr = err
			return false
		}

		return exists
	})

	return derived, lookupErr
}

// UpdateCustomSection keeps the existing slug; retitling a section does not
// move its address.
func (m *PortfolioManager) UpdateCustomSection(ctx context.Context, tenant *model.Tenant, section *model.CustomSection) error {
	err := sanitise.PlainAll(&section.Title, &section.Icon, &section.ButtonText)
	if err != nil {
		return err
	}

	existing, err := m.content.GetCustomSection(ctx, tenant.ID, section.ID)
	if err != nil {
		return err
	}

	section.TenantID = tenant.ID
	section.Slug = existing.Slug
	section.IsSystem = existing.IsSystem

	return m.mutate(ctx, tenant, func() error {
		return m.content.UpdateCustomSection(ctx, section)
	})
}

// DeleteCustomSection refuses to remove system sections; they can only be
// hidden.
func (m *PortfolioManager) DeleteCustomSection(ctx context.Context, tenant *model.Tenant, id uuid.UUID) error {
	section, err := m.content.GetCustomSection(ctx, tenant.ID, id)
	if err != nil {
		return err
	}

	if section.IsSystem {
		return ErrSystemSection
	}

	return m.mutate(ctx, tenant, func() error {
		return m.content.DeleteCustomSection(ctx, tenant.ID, id)
	})
}

// ToggleSectionVisibility flips whether the section renders.
func (m *PortfolioManager) ToggleSectionVisibility(ctx context.Context, tenant *model.Tenant, id uuid.UUID) (*model.CustomSection, error) {
	section, err := m.content.GetCustomSection(ctx, tenant.ID, id)
	if err != nil {
		return nil, err
	}

	section.IsVisible = !section.IsVisible

	err = m.mutate(ctx, tenant, func() error {
		return m.content.UpdateCustomSection(ctx, section)
	})
	if err != nil {
		return nil, err
	}

	return section, nil
}

// ReorderSections rewrites positions following the given id order. Unknown
// ids are ignored; sections not listed keep their position.
func (m *PortfolioManager) ReorderSections(ctx context.Context, tenant *model.Tenant, orderedIDs []uuid.UUID) error {
	sections, err := m.content.ListCustomSections(ctx, tenant.ID)
	if err != nil {
		return err
	}

	byID := make(map[uuid.UUID]*model.CustomSection, len(sections))
	for i := range sections {
		byID[sections[i].ID] = &sections[i]
	}

	return m.mutate(ctx, tenant, func() error {
		for position, id := range orderedIDs {
			section, ok := byID[id]
			if !ok {
				continue
			}

			section.Position = position + 1

			err := m.content.UpdateCustomSection(ctx, section)
			if err != nil {
				return err
			}
		}

		return nil
	})
}

func (m *PortfolioManager) CreateCustomItem(ctx context.Context, tenant *model.Tenant, item *model.CustomItem) error {
	// Ownership check: the section must belong to the tenant.
	_, err := m.content.GetCustomSection(ctx, tenant.ID, item.SectionID)
	if err != nil {
		return err
	}

	err = m.cleanCustomItem(item)
	if err != nil {
		return err
	}

	item.ID = uuid.New()

	return m.mutate(ctx, tenant, func() error {
		return m.content.CreateCustomItem(ctx, item)
	})
}

func (m *PortfolioManager) UpdateCustomItem(ctx context.Context, tenant *model.Tenant, item *model.CustomItem) error {
	_, err := m.content.GetCustomSection(ctx, tenant.ID, item.SectionID)
	if err != nil {
		return err
	}

	err = m.cleanCustomItem(item)
	if err != nil {
		return err
	}

	return m.mutate(ctx, tenant, func() error {
		return m.content.UpdateCustomItem(ctx, item)
	})
}

func (m *PortfolioManager) cleanCustomItem(item *model.CustomItem) error {
	err := sanitise.PlainAll(&item.Title, &item.Subtitle, &item.Link, &item.IconURL)
	if err != nil {
		return err
	}

	item.Description, err = sanitise.RichText(item.Description)

	return err
}

func (m *PortfolioManager) DeleteCustomItem(ctx context.Context, tenant *model.Tenant, sectionID, id uuid.UUID) error {
	_, err := m.content.GetCustomSection(ctx, tenant.ID, sectionID)
	if err != nil {
		return err
	}

	return m.mutate(ctx, tenant, func() error {
		return m.content.DeleteCustomItem(ctx, sectionID, id)
	})
}
