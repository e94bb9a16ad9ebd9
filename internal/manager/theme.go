package manager

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/portfoliopro/folio/internal/errs"
	"github.com/portfoliopro/folio/internal/model"
	"github.com/portfoliopro/folio/internal/repo"
	"github.com/portfoliopro/folio/utils/sanitise"
)

// ThemeManager handles saved palette snapshots and the platform preset
// catalog. Applying a preset rewrites the tenant's site settings, so it
// invalidates the tenant's cached pages like any other content write.
type ThemeManager struct {
	content     repo.ContentStore
	invalidator CacheInvalidator
}

func NewThemeManager(content repo.ContentStore, invalidator CacheInvalidator) *ThemeManager {
	return &ThemeManager{
		content:     content,
		invalidator: invalidator,
	}
}

func (m *ThemeManager) ListSavedThemes(ctx context.Context, tenant *model.Tenant) ([]model.SavedTheme, error) {
	return m.content.ListSavedThemes(ctx, tenant.ID)
}

// SaveTheme snapshots the tenant's current palette under a name.
func (m *ThemeManager) SaveTheme(ctx context.Context, tenant *model.Tenant, name string) (*model.SavedTheme, error) {
	err := sanitise.PlainAll(&name)
	if err != nil {
		return nil, err
	}

	if name == "" {
		return nil, ErrEmptyTitle
	}

	settings, err := m.content.GetSiteSettings(ctx, tenant.ID)
	if errors.Is(err, repo.ErrNotFound) {
		settings = model.DefaultSiteSettings(tenant.ID)
	} else if err != nil {
		return nil, err
	}

	theme := &model.SavedTheme{
		ID:       uuid.New(),
		TenantID: tenant.ID,
		Name:     name,

		PrimaryColor:    settings.PrimaryColor,
		SecondaryColor:  settings.SecondaryColor,
		BackgroundColor: settings.BackgroundColor,
		TextColor:       settings.HeroAboutTextColor,
		HeadingFont:     settings.HeadingFont,
		BodyFont:        settings.BodyFont,
		BackgroundStyle: settings.BackgroundStyle,
		CircleColor:     settings.CircleColor,
		ButtonStyle:     settings.ButtonStyle,

		NameFontSize:           settings.NameFontSize,
		GreetingFontSize:       settings.GreetingFontSize,
		SectionHeadingFontSize: settings.SectionHeadingFontSize,
	}

	err = m.content.CreateSavedTheme(ctx, theme)
	if err != nil {
		return nil, err
	}

	return theme, nil
}

// ApplySavedTheme copies a snapshot back onto the live settings.
func (m *ThemeManager) ApplySavedTheme(ctx context.Context, tenant *model.Tenant, id uuid.UUID) error {
	themes, err := m.content.ListSavedThemes(ctx, tenant.ID)
	if err != nil {
		return err
	}

	var theme *model.SavedTheme

	for i := range themes {
		if themes[i].ID == id {
			theme = &themes[i]
			break
		}
	}

	if theme == nil {
		return repo.ErrNotFound
	}

	settings, err := m.settingsOrDefault(ctx, tenant.ID)
	if err != nil {
		return err
	}

	settings.PrimaryColor = theme.PrimaryColor
	settings.SecondaryColor = theme.SecondaryColor
	settings.BackgroundColor = theme.BackgroundColor
	settings.HeroAboutTextColor = theme.TextColor
	settings.HeadingFont = theme.HeadingFont
	settings.BodyFont = theme.BodyFont
	settings.BackgroundStyle = theme.BackgroundStyle
	settings.CircleColor = theme.CircleColor
	settings.ButtonStyle = theme.ButtonStyle
	settings.NameFontSize = theme.NameFontSize
	settings.GreetingFontSize = theme.GreetingFontSize
	settings.SectionHeadingFontSize = theme.SectionHeadingFontSize

	err = m.content.SaveSiteSettings(ctx, settings)
	if err != nil {
		return err
	}

	m.invalidator.Invalidate(ctx, tenant.Subdomain)

	return nil
}

func (m *ThemeManager) DeleteSavedTheme(ctx context.Context, tenant *model.Tenant, id uuid.UUID) error {
	return m.content.DeleteSavedTheme(ctx, tenant.ID, id)
}

// ListPresets returns the active catalog in display order.
func (m *ThemeManager) ListPresets(ctx context.Context) ([]model.ThemePreset, error) {
	return m.content.ListThemePresets(ctx)
}

// ApplyPreset switches the tenant's active theme to a catalog entry and
// resets the theme config to the preset's defaults.
func (m *ThemeManager) ApplyPreset(ctx context.Context, tenant *model.Tenant, slug string) error {
	preset, err := m.content.GetThemePresetBySlug(ctx, slug)
	if errors.Is(err, repo.ErrNotFound) {
		return errs.Wrap(ErrUnknownTheme, err)
	} else if err != nil {
		return err
	}

	settings, err := m.settingsOrDefault(ctx, tenant.ID)
	if err != nil {
		return err
	}

	settings.ActiveTheme = preset.Slug
	settings.ThemeConfig = preset.DefaultConfig

	err = m.content.SaveSiteSettings(ctx, settings)
	if err != nil {
		return err
	}

	m.invalidator.Invalidate(ctx, tenant.Subdomain)

	return nil
}

func (m *ThemeManager) settingsOrDefault(ctx context.Context, tenantID uuid.UUID) (*model.SiteSettings, error) {
	settings, err := m.content.GetSiteSettings(ctx, tenantID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.DefaultSiteSettings(tenantID), nil
	} else if err != nil {
		return nil, err
	}

	return settings, nil
}
