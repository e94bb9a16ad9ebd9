package manager_test

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfoliopro/folio/internal/manager"
	"github.com/portfoliopro/folio/internal/model"
	"github.com/portfoliopro/folio/internal/repo/mock"
)

func newThemeManager(db *mock.InMemoryDB) (*manager.ThemeManager, *recordingInvalidator) {
	inv := &recordingInvalidator{}

	return manager.NewThemeManager(db, inv), inv
}

func TestSaveAndApplySavedTheme(t *testing.T) {
	db := mock.NewInMemoryDB()
	m, inv := newThemeManager(db)
	tenant := seedTenant(db)

	settings := model.DefaultSiteSettings(tenant.ID)
	settings.PrimaryColor = "#123456"
	settings.HeroAboutTextColor = "#abcdef"
	db.Data.SiteSettings[tenant.ID] = *settings

	theme, err := m.SaveTheme(t.Context(), tenant, "Winter")
	require.NoError(t, err)
	assert.Equal(t, "#123456", theme.PrimaryColor)
	assert.Equal(t, "#abcdef", theme.TextColor)

	// Drift the live palette, then restore from the snapshot.
	settings.PrimaryColor = "#000000"
	db.Data.SiteSettings[tenant.ID] = *settings

	err = m.ApplySavedTheme(t.Context(), tenant, theme.ID)
	require.NoError(t, err)

	restored := db.Data.SiteSettings[tenant.ID]
	assert.Equal(t, "#123456", restored.PrimaryColor)
	assert.Equal(t, "#abcdef", restored.HeroAboutTextColor)
	assert.Equal(t, []string{"alice"}, inv.subdomains)
}

func TestSaveThemeEmptyName(t *testing.T) {
	db := mock.NewInMemoryDB()
	m, _ := newThemeManager(db)
	tenant := seedTenant(db)

	_, err := m.SaveTheme(t.Context(), tenant, "  ")
	assert.ErrorIs(t, err, manager.ErrEmptyTitle)
}

func TestApplyPreset(t *testing.T) {
	db := mock.NewInMemoryDB()
	m, inv := newThemeManager(db)
	tenant := seedTenant(db)

	preset := model.ThemePreset{
		ID:            uuid.New(),
		Name:          "Terminal X",
		Slug:          model.ThemeTerminalX,
		IsActive:      true,
		DefaultConfig: json.RawMessage(`{"matrix_effect":true}`),
	}
	db.Data.ThemePresets[preset.ID] = preset

	t.Run("Switches active theme", func(t *testing.T) {
		err := m.ApplyPreset(t.Context(), tenant, model.ThemeTerminalX)
		require.NoError(t, err)

		settings := db.Data.SiteSettings[tenant.ID]
		assert.Equal(t, model.ThemeTerminalX, settings.ActiveTheme)
		assert.JSONEq(t, `{"matrix_effect":true}`, string(settings.ThemeConfig))
		assert.Equal(t, []string{"alice"}, inv.subdomains)
	})

	t.Run("Unknown preset", func(t *testing.T) {
		err := m.ApplyPreset(t.Context(), tenant, "vaporwave")
		assert.ErrorIs(t, err, manager.ErrUnknownTheme)
	})

	t.Run("Inactive preset hidden", func(t *testing.T) {
		inactive := model.ThemePreset{
			ID: uuid.New(), Name: "Retired", Slug: "retired", IsActive: false,
		}
		db.Data.ThemePresets[inactive.ID] = inactive

		err := m.ApplyPreset(t.Context(), tenant, "retired")
		assert.ErrorIs(t, err, manager.ErrUnknownTheme)
	})
}

func TestDeleteSavedTheme(t *testing.T) {
	db := mock.NewInMemoryDB()
	m, _ := newThemeManager(db)
	tenant := seedTenant(db)

	theme, err := m.SaveTheme(t.Context(), tenant, "Winter")
	require.NoError(t, err)

	err = m.DeleteSavedTheme(t.Context(), tenant, theme.ID)
	require.NoError(t, err)

	themes, err := m.ListSavedThemes(t.Context(), tenant)
	require.NoError(t, err)
	assert.Empty(t, themes)
}
