package manager_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfoliopro/folio/internal/manager"
	"github.com/portfoliopro/folio/internal/model"
	"github.com/portfoliopro/folio/internal/repo"
	"github.com/portfoliopro/folio/internal/repo/mock"
)

func newPortfolioManager(db *mock.InMemoryDB) (*manager.PortfolioManager, *recordingInvalidator) {
	inv := &recordingInvalidator{}

	return manager.NewPortfolioManager(db, inv), inv
}

func seedTenant(db *mock.InMemoryDB) *model.Tenant {
	tenant := model.Tenant{
		ID:        uuid.New(),
		Username:  "alice",
		Email:     "alice@example.com",
		Subdomain: "alice",
		Active:    true,
	}
	db.Data.Tenants[tenant.ID] = tenant

	return &tenant
}

func TestSaveProfileSanitises(t *testing.T) {
	db := mock.NewInMemoryDB()
	m, inv := newPortfolioManager(db)
	tenant := seedTenant(db)

	profile := &model.Profile{
		Name:      "<script>alert(1)</script>Alice",
		Greeting:  "Hello <b>there</b>",
		AboutText: "<p>I build <strong>things</strong>.</p><script>steal()</script>",
	}

	err := m.SaveProfile(t.Context(), tenant, profile)
	require.NoError(t, err)

	stored := db.Data.Profiles[tenant.ID]
	assert.Equal(t, "Alice", stored.Name)
	assert.Equal(t, "Hello there", stored.Greeting)
	assert.Equal(t, "<p>I build <strong>things</strong>.</p>", stored.AboutText)
	assert.Equal(t, []string{"alice"}, inv.subdomains)
}

func TestCreateSkillInvalidatesAfterWrite(t *testing.T) {
	db := mock.NewInMemoryDB()
	m, inv := newPortfolioManager(db)
	tenant := seedTenant(db)

	skill := &model.Skill{Name: "Go", Category: "Backend"}

	err := m.CreateSkill(t.Context(), tenant, skill)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, skill.ID)
	assert.Equal(t, tenant.ID, skill.TenantID)
	assert.Equal(t, []string{"alice"}, inv.subdomains)
}

func TestFailedWriteDoesNotInvalidate(t *testing.T) {
	db := mock.NewInMemoryDB()
	m, inv := newPortfolioManager(db)
	tenant := seedTenant(db)

	err := m.DeleteSkill(t.Context(), tenant, uuid.New())
	assert.ErrorIs(t, err, repo.ErrNotFound)
	assert.Empty(t, inv.subdomains)
}

func TestDeleteIsTenantScoped(t *testing.T) {
	db := mock.NewInMemoryDB()
	m, inv := newPortfolioManager(db)
	tenant := seedTenant(db)

	other := model.Skill{ID: uuid.New(), TenantID: uuid.New(), Name: "Rust"}
	db.Data.Skills[other.ID] = other

	err := m.DeleteSkill(t.Context(), tenant, other.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
	assert.Empty(t, inv.subdomains)
	assert.Contains(t, db.Data.Skills, other.ID)
}

func TestCreateCustomSectionSlugs(t *testing.T) {
	db := mock.NewInMemoryDB()
	m, _ := newPortfolioManager(db)
	tenant := seedTenant(db)

	create := func(title string) *model.CustomSection {
		section := &model.CustomSection{Title: title}
		err := m.CreateCustomSection(t.Context(), tenant, section)
		require.NoError(t, err)

		return section
	}

	t.Run("Derives slug from title", func(t *testing.T) {
		section := create("My Side Projects!")
		assert.Equal(t, "my-side-projects", section.Slug)
		assert.False(t, section.IsSystem)
		assert.Equal(t, model.CardLayoutGrid, section.CardLayout)
	})

	t.Run("Dedupes with numeric suffix", func(t *testing.T) {
		assert.Equal(t, "my-side-projects-1", create("My Side Projects").Slug)
		assert.Equal(t, "my-side-projects-2", create("my side projects").Slug)
	})

	t.Run("Falls back for untitled slugs", func(t *testing.T) {
		assert.Equal(t, "section", create("!!!").Slug)
	})

	t.Run("Empty title rejected", func(t *testing.T) {
		err := m.CreateCustomSection(t.Context(), tenant, &model.CustomSection{})
		assert.ErrorIs(t, err, manager.ErrEmptyTitle)
	})
}

func TestUpdateCustomSectionKeepsSlug(t *testing.T) {
	db := mock.NewInMemoryDB()
	m, _ := newPortfolioManager(db)
	tenant := seedTenant(db)

	section := &model.CustomSection{Title: "Talks"}
	require.NoError(t, m.CreateCustomSection(t.Context(), tenant, section))

	section.Title = "Conference Talks"
	require.NoError(t, m.UpdateCustomSection(t.Context(), tenant, section))

	stored := db.Data.CustomSections[section.ID]
	assert.Equal(t, "Conference Talks", stored.Title)
	assert.Equal(t, "talks", stored.Slug)
}

func TestDeleteCustomSection(t *testing.T) {
	db := mock.NewInMemoryDB()
	m, _ := newPortfolioManager(db)
	tenant := seedTenant(db)

	t.Run("System section refused", func(t *testing.T) {
		system := model.CustomSection{
			ID: uuid.New(), TenantID: tenant.ID, Title: "About", Slug: "about", IsSystem: true,
		}
		db.Data.CustomSections[system.ID] = system

		err := m.DeleteCustomSection(t.Context(), tenant, system.ID)
		assert.ErrorIs(t, err, manager.ErrSystemSection)
		assert.Contains(t, db.Data.CustomSections, system.ID)
	})

	t.Run("Custom section removed with items", func(t *testing.T) {
		section := &model.CustomSection{Title: "Talks"}
		require.NoError(t, m.CreateCustomSection(t.Context(), tenant, section))

		item := &model.CustomItem{SectionID: section.ID, Title: "GopherCon"}
		require.NoError(t, m.CreateCustomItem(t.Context(), tenant, item))

		err := m.DeleteCustomSection(t.Context(), tenant, section.ID)
		require.NoError(t, err)
		assert.NotContains(t, db.Data.CustomSections, section.ID)
		assert.NotContains(t, db.Data.CustomItems, item.ID)
	})
}

func TestToggleSectionVisibility(t *testing.T) {
	db := mock.NewInMemoryDB()
	m, inv := newPortfolioManager(db)
	tenant := seedTenant(db)

	section := &model.CustomSection{Title: "Talks", IsVisible: true}
	require.NoError(t, m.CreateCustomSection(t.Context(), tenant, section))
	inv.subdomains = nil

	toggled, err := m.ToggleSectionVisibility(t.Context(), tenant, section.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsVisible)
	assert.Equal(t, []string{"alice"}, inv.subdomains)

	toggled, err = m.ToggleSectionVisibility(t.Context(), tenant, section.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsVisible)
}

func TestReorderSections(t *testing.T) {
	db := mock.NewInMemoryDB()
	m, _ := newPortfolioManager(db)
	tenant := seedTenant(db)

	first := &model.CustomSection{Title: "First"}
	second := &model.CustomSection{Title: "Second"}
	third := &model.CustomSection{Title: "Third"}

	for _, s := range []*model.CustomSection{first, second, third} {
		require.NoError(t, m.CreateCustomSection(t.Context(), tenant, s))
	}

	err := m.ReorderSections(t.Context(), tenant, []uuid.UUID{third.ID, first.ID, second.ID, uuid.New()})
	require.NoError(t, err)

	assert.Equal(t, 1, db.Data.CustomSections[third.ID].Position)
	assert.Equal(t, 2, db.Data.CustomSections[first.ID].Position)
	assert.Equal(t, 3, db.Data.CustomSections[second.ID].Position)
}

func TestCustomItemOwnershipChecked(t *testing.T) {
	db := mock.NewInMemoryDB()
	m, _ := newPortfolioManager(db)
	tenant := seedTenant(db)

	foreign := model.CustomSection{
		ID: uuid.New(), TenantID: uuid.New(), Title: "Foreign", Slug: "foreign",
	}
	db.Data.CustomSections[foreign.ID] = foreign

	err := m.CreateCustomItem(t.Context(), tenant, &model.CustomItem{
		SectionID: foreign.ID, Title: "Sneaky",
	})
	assert.ErrorIs(t, err, repo.ErrNotFound)
}
