package aggregator

import (
	"context"
	"errors"

	"github.com/portfoliopro/folio/internal/errs"
	"github.com/portfoliopro/folio/internal/model"
	"github.com/portfoliopro/folio/internal/repo"
)

// ErrNotAvailable marks a portfolio that must not be served, e.g. a banned
// tenant reached through a stale cache entry.
var ErrNotAvailable = errors.New("portfolio not available")

// orderableSlugs are the system sections whose order the owner can change.
var orderableSlugs = map[string]struct{}{
	"about": {}, "skills": {}, "projects": {},
	"experience": {}, "education": {}, "expertise": {},
}

// SiteOwner is the public slice of the tenant record. The rendering context
// is served unauthenticated and persisted in the page cache, so credential
// and audit fields stay out of it.
type SiteOwner struct {
	Username  string `json:"username"`
	Subdomain string `json:"subdomain"`
}

// PortfolioContext is everything a page renderer needs for one tenant.
type PortfolioContext struct {
	Owner    SiteOwner           `json:"owner"`
	Profile  *model.Profile      `json:"profile"`
	Contact  *model.ContactInfo  `json:"contact"`
	Settings *model.SiteSettings `json:"settings"`

	SocialLinks []model.SocialLink `json:"socialLinks"`
	Expertises  []model.Expertise  `json:"expertises"`
	Experiences []model.Experience `json:"experiences"`
	Educations  []model.Education  `json:"educations"`
	Skills      []model.Skill      `json:"skills"`
	Projects    []model.Project    `json:"projects"`

	// OrderableSections drive the section order on the page: visible system
	// sections from the orderable set plus every visible custom section.
	OrderableSections []model.CustomSection `json:"orderableSections"`

	// CustomSections are the visible non-system sections with their items.
	CustomSections []model.CustomSection `json:"customSections"`

	// EduExpAdjacent is set when education and experience sit next to each
	// other in the section order, which renders them side by side.
	EduExpAdjacent bool `json:"eduExpAdjacent"`
	EduFirst       bool `json:"eduFirst"`

	// Terminal is only populated for the terminal_x theme.
	Terminal *TerminalFS `json:"terminal,omitempty"`
}

// Aggregator assembles portfolio rendering contexts from the content store.
type Aggregator struct {
	content repo.ContentStore
}

func New(content repo.ContentStore) *Aggregator {
	return &Aggregator{content: content}
}

// BuildContext loads every collection the page needs, in display order.
// Singletons missing in the store fall back to their registration defaults
// so a half-initialized tenant still renders.
func (a *Aggregator) BuildContext(ctx context.Context, tenant *model.Tenant) (*PortfolioContext, error) {
	if tenant == nil || !tenant.Servable() {
		return nil, ErrNotAvailable
	}

	pc := &PortfolioContext{
		Owner: SiteOwner{Username: tenant.Username, Subdomain: tenant.Subdomain},
	}

	var err error

	pc.Profile, err = a.profileOrDefault(ctx, tenant)
	if err != nil {
		return nil, err
	}

	pc.Contact, err = a.contactOrDefault(ctx, tenant)
	if err != nil {
		return nil, err
	}

	pc.Settings, err = a.settingsOrDefault(ctx, tenant)
	if err != nil {
		return nil, err
	}

	pc.SocialLinks, err = a.content.ListSocialLinks(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}

	pc.Expertises, err = a.content.ListExpertises(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}

	pc.Experiences, err = a.content.ListExperiences(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}

	pc.Educations, err = a.content.ListEducations(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}

	pc.Skills, err = a.content.ListSkills(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}

	pc.Projects, err = a.content.ListProjects(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}

	sections, err := a.content.ListCustomSections(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}

	for _, section := range sections {
		if !section.IsVisible {
			continue
		}

		if _, orderable := orderableSlugs[section.Slug]; orderable || !section.IsSystem {
			pc.OrderableSections = append(pc.OrderableSections, section)
		}

		if !section.IsSystem {
			pc.CustomSections = append(pc.CustomSections, section)
		}
	}

	pc.EduExpAdjacent, pc.EduFirst = detectAdjacency(pc.OrderableSections)

	if pc.Settings.ActiveTheme == model.ThemeTerminalX {
		pc.Terminal = buildTerminalFS(pc)
	}

	return pc, nil
}

// detectAdjacency scans the ordered slug sequence for education and
// experience sitting next to each other, in either order. The first
// adjacent pair wins.
func detectAdjacency(sections []model.CustomSection) (adjacent, eduFirst bool) {
	for i := 0; i+1 < len(sections); i++ {
		if sections[i].Slug == "education" && sections[i+1].Slug == "experience" {
			return true, true
		}

		if sections[i].Slug == "experience" && sections[i+1].Slug == "education" {
			return true, false
		}
	}

	return false, false
}

func (a *Aggregator) profileOrDefault(ctx context.Context, tenant *model.Tenant) (*model.Profile, error) {
	profile, err := a.content.GetProfile(ctx, tenant.ID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.DefaultProfile(tenant.ID), nil
	} else if err != nil {
		return nil, errs.Wrap(repo.ErrGetResource, err)
	}

	return profile, nil
}

func (a *Aggregator) contactOrDefault(ctx context.Context, tenant *model.Tenant) (*model.ContactInfo, error) {
	contact, err := a.content.GetContactInfo(ctx, tenant.ID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.DefaultContactInfo(tenant.ID), nil
	} else if err != nil {
		return nil, errs.Wrap(repo.ErrGetResource, err)
	}

	return contact, nil
}

func (a *Aggregator) settingsOrDefault(ctx context.Context, tenant *model.Tenant) (*model.SiteSettings, error) {
	settings, err := a.content.GetSiteSettings(ctx, tenant.ID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.DefaultSiteSettings(tenant.ID), nil
	} else if err != nil {
		return nil, errs.Wrap(repo.ErrGetResource, err)
	}

	return settings, nil
}
