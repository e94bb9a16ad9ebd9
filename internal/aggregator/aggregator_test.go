package aggregator_test

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfoliopro/folio/internal/aggregator"
	"github.com/portfoliopro/folio/internal/model"
	"github.com/portfoliopro/folio/internal/repo/mock"
)

func newTenant() *model.Tenant {
	return &model.Tenant{
		ID:        uuid.New(),
		Username:  "alice",
		Email:     "alice@example.com",
		Subdomain: "alice",
		Active:    true,
	}
}

func seedSections(db *mock.InMemoryDB, tenantID uuid.UUID, slugs ...string) {
	for i, slug := range slugs {
		section := model.CustomSection{
			ID:        uuid.New(),
			TenantID:  tenantID,
			Title:     slug,
			Slug:      slug,
			Position:  i + 1,
			IsVisible: true,
			IsSystem:  true,
		}
		db.Data.CustomSections[section.ID] = section
	}
}

func TestBuildContextNotAvailable(t *testing.T) {
	agg := aggregator.New(mock.NewInMemoryDB())

	tests := map[string]*model.Tenant{
		"Nil tenant":         nil,
		"Banned tenant":      {ID: uuid.New(), Active: true, Banned: true},
		"Deactivated tenant": {ID: uuid.New(), Active: false},
	}

	for name, tenant := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := agg.BuildContext(t.Context(), tenant)
			assert.ErrorIs(t, err, aggregator.ErrNotAvailable)
		})
	}
}

func TestBuildContextDefaultsForMissingSingletons(t *testing.T) {
	db := mock.NewInMemoryDB()
	tenant := newTenant()

	pc, err := aggregator.New(db).BuildContext(t.Context(), tenant)
	require.NoError(t, err)

	assert.Equal(t, "Your Name", pc.Profile.Name)
	assert.Equal(t, model.ThemeClassic, pc.Settings.ActiveTheme)
	assert.NotNil(t, pc.Contact)
	assert.Nil(t, pc.Terminal)
}

func TestBuildContextExposesOnlyPublicOwnerFields(t *testing.T) {
	db := mock.NewInMemoryDB()

	tenant := newTenant()
	tenant.PasswordHash = "$2a$10$secrethash"

	pc, err := aggregator.New(db).BuildContext(t.Context(), tenant)
	require.NoError(t, err)

	assert.Equal(t, "alice", pc.Owner.Username)
	assert.Equal(t, "alice", pc.Owner.Subdomain)

	encoded, err := json.Marshal(pc)
	require.NoError(t, err)

	assert.NotContains(t, string(encoded), tenant.PasswordHash)
	assert.NotContains(t, string(encoded), tenant.Email)
	assert.NotContains(t, string(encoded), "PasswordHash")
}

func TestBuildContextOrdersCollections(t *testing.T) {
	db := mock.NewInMemoryDB()
	tenant := newTenant()

	positions := map[string]int{"first": 1, "second": 2, "third": 3}

	for _, name := range []string{"third", "first", "second"} {
		skill := model.Skill{
			ID:       uuid.New(),
			TenantID: tenant.ID,
			Name:     name,
			Position: positions[name],
		}
		db.Data.Skills[skill.ID] = skill
	}

	pc, err := aggregator.New(db).BuildContext(t.Context(), tenant)
	require.NoError(t, err)

	require.Len(t, pc.Skills, 3)
	assert.Equal(t, "first", pc.Skills[0].Name)
	assert.Equal(t, "second", pc.Skills[1].Name)
	assert.Equal(t, "third", pc.Skills[2].Name)
}

func TestBuildContextAdjacency(t *testing.T) {
	tests := map[string]struct {
		slugs        []string
		wantAdjacent bool
		wantEduFirst bool
	}{
		"Education before experience": {
			slugs:        []string{"about", "education", "experience", "skills"},
			wantAdjacent: true,
			wantEduFirst: true,
		},
		"Experience before education": {
			slugs:        []string{"experience", "education"},
			wantAdjacent: true,
			wantEduFirst: false,
		},
		"Separated": {
			slugs:        []string{"education", "skills", "experience"},
			wantAdjacent: false,
		},
		"Only education": {
			slugs:        []string{"education", "skills"},
			wantAdjacent: false,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			db := mock.NewInMemoryDB()
			tenant := newTenant()
			seedSections(db, tenant.ID, test.slugs...)

			pc, err := aggregator.New(db).BuildContext(t.Context(), tenant)
			require.NoError(t, err)

			assert.Equal(t, test.wantAdjacent, pc.EduExpAdjacent)

			if test.wantAdjacent {
				assert.Equal(t, test.wantEduFirst, pc.EduFirst)
			}
		})
	}
}

func TestBuildContextHiddenSectionsExcluded(t *testing.T) {
	db := mock.NewInMemoryDB()
	tenant := newTenant()

	hidden := model.CustomSection{
		ID:        uuid.New(),
		TenantID:  tenant.ID,
		Title:     "Hidden",
		Slug:      "hidden",
		Position:  1,
		IsVisible: false,
	}
	db.Data.CustomSections[hidden.ID] = hidden

	pc, err := aggregator.New(db).BuildContext(t.Context(), tenant)
	require.NoError(t, err)

	assert.Empty(t, pc.OrderableSections)
	assert.Empty(t, pc.CustomSections)
}

func TestBuildContextTerminalTheme(t *testing.T) {
	db := mock.NewInMemoryDB()
	tenant := newTenant()

	settings := model.DefaultSiteSettings(tenant.ID)
	settings.ActiveTheme = model.ThemeTerminalX
	db.Data.SiteSettings[tenant.ID] = *settings

	profile := model.DefaultProfile(tenant.ID)
	profile.Name = "Jane Doe"
	profile.AboutText = "I build things."
	db.Data.Profiles[tenant.ID] = *profile

	skill := model.Skill{
		ID:       uuid.New(),
		TenantID: tenant.ID,
		Name:     "Go",
		Category: "Backend",
	}
	db.Data.Skills[skill.ID] = skill

	project := model.Project{
		ID:       uuid.New(),
		TenantID: tenant.ID,
		Title:    "Jane's Site",
		Category: "Web",
	}
	db.Data.Projects[project.ID] = project

	pc, err := aggregator.New(db).BuildContext(t.Context(), tenant)
	require.NoError(t, err)
	require.NotNil(t, pc.Terminal)

	assert.Equal(t, "janedoe", pc.Terminal.User)
	assert.Equal(t, "portfolio", pc.Terminal.Hostname)
	assert.Contains(t, pc.Terminal.BootConfig, "enabled_commands")

	home := pc.Terminal.FileSystem["home"].(map[string]any)
	user := home["user"].(map[string]any)
	assert.Equal(t, "I build things.", user["about.txt"])

	skills := user["skills"].(map[string]any)
	assert.Contains(t, skills["Go"], "Level: Backend")

	projects := user["projects"].(map[string]any)
	assert.Contains(t, projects, "janes_site.txt")

	require.Len(t, pc.Terminal.RawData.Skills, 1)
	assert.Equal(t, "Go", pc.Terminal.RawData.Skills[0]["name"])
}
