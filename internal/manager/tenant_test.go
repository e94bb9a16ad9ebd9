package manager_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfoliopro/folio/internal/manager"
	"github.com/portfoliopro/folio/internal/model"
	"github.com/portfoliopro/folio/internal/repo"
	"github.com/portfoliopro/folio/internal/repo/mock"
	"github.com/portfoliopro/folio/internal/resolver"
)

// recordingInvalidator captures invalidations in call order.
type recordingInvalidator struct {
	subdomains []string
	flushes    int
}

func (r *recordingInvalidator) Invalidate(_ context.Context, subdomain string) {
	r.subdomains = append(r.subdomains, subdomain)
}

func (r *recordingInvalidator) FlushAll(_ context.Context) {
	r.flushes++
}

func newTenantManager(db *mock.InMemoryDB) (*manager.TenantManager, *recordingInvalidator) {
	inv := &recordingInvalidator{}

	return manager.NewTenantManager(db, db, resolver.NewReservedSet(nil), inv), inv
}

func register(t *testing.T, m *manager.TenantManager, subdomain string) *model.Tenant {
	t.Helper()

	tenant, err := m.Register(t.Context(), manager.RegisterParams{
		Username:  subdomain,
		Email:     subdomain + "@example.com",
		Subdomain: subdomain,
		Password:  "correct-horse",
	})
	require.NoError(t, err)

	return tenant
}

func TestRegister(t *testing.T) {
	db := mock.NewInMemoryDB()
	m, inv := newTenantManager(db)

	tenant := register(t, m, "alice")

	assert.Equal(t, "alice", tenant.Username)
	assert.Equal(t, model.RoleOwner, tenant.Role)
	assert.True(t, tenant.Servable())
	assert.Equal(t, []string{"alice"}, inv.subdomains)

	profile, ok := db.Data.Profiles[tenant.ID]
	require.True(t, ok)
	assert.Equal(t, "alice", profile.Name)
	assert.Equal(t, "Hi, I am alice", profile.Greeting)

	contact, ok := db.Data.ContactInfos[tenant.ID]
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", contact.Email)

	_, ok = db.Data.SiteSettings[tenant.ID]
	assert.True(t, ok)

	assert.Len(t, db.Data.CustomSections, 9)
}

func TestRegisterValidation(t *testing.T) {
	db := mock.NewInMemoryDB()
	m, _ := newTenantManager(db)

	register(t, m, "taken")

	tests := map[string]struct {
		params  manager.RegisterParams
		wantErr error
	}{
		"Reserved subdomain": {
			params: manager.RegisterParams{
				Username: "bob", Email: "bob@example.com", Subdomain: "admin", Password: "correct-horse",
			},
			wantErr: resolver.ErrSubdomainReserved,
		},
		"Short subdomain": {
			params: manager.RegisterParams{
				Username: "bob", Email: "bob@example.com", Subdomain: "ab", Password: "correct-horse",
			},
			wantErr: resolver.ErrSubdomainTooShort,
		},
		"Invalid subdomain": {
			params: manager.RegisterParams{
				Username: "bob", Email: "bob@example.com", Subdomain: "-bob-", Password: "correct-horse",
			},
			wantErr: resolver.ErrSubdomainInvalid,
		},
		"Weak password": {
			params: manager.RegisterParams{
				Username: "bob", Email: "bob@example.com", Subdomain: "bobsite", Password: "short",
			},
			wantErr: manager.ErrWeakPassword,
		},
		"Empty username": {
			params: manager.RegisterParams{
				Username: "  ", Email: "bob@example.com", Subdomain: "bobsite", Password: "correct-horse",
			},
			wantErr: manager.ErrEmptyUsername,
		},
		"Duplicate subdomain": {
			params: manager.RegisterParams{
				Username: "other", Email: "other@example.com", Subdomain: "taken", Password: "correct-horse",
			},
			wantErr: manager.ErrAccountExists,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := m.Register(t.Context(), test.params)
			assert.ErrorIs(t, err, test.wantErr)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	db := mock.NewInMemoryDB()
	m, _ := newTenantManager(db)

	tenant := register(t, m, "alice")

	t.Run("By username", func(t *testing.T) {
		got, err := m.Authenticate(t.Context(), "alice", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, tenant.ID, got.ID)
		assert.NotNil(t, got.LastLogin)
	})

	t.Run("By email", func(t *testing.T) {
		got, err := m.Authenticate(t.Context(), "alice@example.com", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, tenant.ID, got.ID)
	})

	t.Run("Wrong password", func(t *testing.T) {
		_, err := m.Authenticate(t.Context(), "alice", "wrong-password")
		assert.ErrorIs(t, err, manager.ErrInvalidCredentials)
	})

	t.Run("Unknown login", func(t *testing.T) {
		_, err := m.Authenticate(t.Context(), "nobody", "correct-horse")
		assert.ErrorIs(t, err, manager.ErrInvalidCredentials)
	})

	t.Run("Banned account", func(t *testing.T) {
		_, err := m.Ban(t.Context(), tenant.ID)
		require.NoError(t, err)

		_, err = m.Authenticate(t.Context(), "alice", "correct-horse")
		assert.ErrorIs(t, err, manager.ErrAccountBanned)

		_, err = m.Unban(t.Context(), tenant.ID)
		require.NoError(t, err)
	})

	t.Run("Deactivated account", func(t *testing.T) {
		_, err := m.Deactivate(t.Context(), tenant.ID)
		require.NoError(t, err)

		_, err = m.Authenticate(t.Context(), "alice", "correct-horse")
		assert.ErrorIs(t, err, manager.ErrAccountDeactivated)
	})
}

func TestStatusTransitionsInvalidate(t *testing.T) {
	db := mock.NewInMemoryDB()
	m, inv := newTenantManager(db)

	tenant := register(t, m, "alice")
	inv.subdomains = nil

	banned, err := m.Ban(t.Context(), tenant.ID)
	require.NoError(t, err)
	assert.True(t, banned.Banned)
	assert.False(t, banned.Servable())

	unbanned, err := m.Unban(t.Context(), tenant.ID)
	require.NoError(t, err)
	assert.True(t, unbanned.Servable())

	// Each transition invalidates after the row is saved.
	assert.Equal(t, []string{"alice", "alice"}, inv.subdomains)

	stored := db.Data.Tenants[tenant.ID]
	assert.Equal(t, model.StatusActive, stored.Status())
}

func TestInvalidTransition(t *testing.T) {
	db := mock.NewInMemoryDB()
	m, _ := newTenantManager(db)

	tenant := register(t, m, "alice")

	_, err := m.Unban(t.Context(), tenant.ID)
	assert.ErrorIs(t, err, model.ErrInvalidStatusTransition)
}

func TestRenameSubdomain(t *testing.T) {
	db := mock.NewInMemoryDB()
	m, inv := newTenantManager(db)

	tenant := register(t, m, "alice")
	register(t, m, "claimed")
	inv.subdomains = nil

	t.Run("Moves and invalidates both addresses", func(t *testing.T) {
		renamed, err := m.RenameSubdomain(t.Context(), tenant.ID, "Alice-New")
		require.NoError(t, err)
		assert.Equal(t, "alice-new", renamed.Subdomain)
		assert.Equal(t, []string{"alice", "alice-new"}, inv.subdomains)
	})

	t.Run("Taken subdomain", func(t *testing.T) {
		_, err := m.RenameSubdomain(t.Context(), tenant.ID, "claimed")
		assert.ErrorIs(t, err, manager.ErrSubdomainTaken)
	})

	t.Run("Reserved subdomain", func(t *testing.T) {
		_, err := m.RenameSubdomain(t.Context(), tenant.ID, "superadmin")
		assert.ErrorIs(t, err, resolver.ErrSubdomainReserved)
	})
}

func TestChangePassword(t *testing.T) {
	db := mock.NewInMemoryDB()
	m, _ := newTenantManager(db)

	tenant := register(t, m, "alice")

	err := m.ChangePassword(t.Context(), tenant.ID, "wrong-password", "next-password")
	assert.ErrorIs(t, err, manager.ErrInvalidCredentials)

	err = m.ChangePassword(t.Context(), tenant.ID, "correct-horse", "short")
	assert.ErrorIs(t, err, manager.ErrWeakPassword)

	err = m.ChangePassword(t.Context(), tenant.ID, "correct-horse", "next-password")
	require.NoError(t, err)

	_, err = m.Authenticate(t.Context(), "alice", "next-password")
	assert.NoError(t, err)
}

func TestResetPassword(t *testing.T) {
	db := mock.NewInMemoryDB()
	m, _ := newTenantManager(db)

	tenant := register(t, m, "alice")

	secret, err := m.ResetPassword(t.Context(), tenant.ID)
	require.NoError(t, err)
	require.NotEmpty(t, secret)

	_, err = m.Authenticate(t.Context(), "alice", "correct-horse")
	assert.ErrorIs(t, err, manager.ErrInvalidCredentials)

	_, err = m.Authenticate(t.Context(), "alice", secret)
	assert.NoError(t, err)
}

func TestSubdomainAvailable(t *testing.T) {
	db := mock.NewInMemoryDB()
	m, _ := newTenantManager(db)

	register(t, m, "alice")

	available, err := m.SubdomainAvailable(t.Context(), "fresh")
	require.NoError(t, err)
	assert.True(t, available)

	available, err = m.SubdomainAvailable(t.Context(), "ALICE")
	require.NoError(t, err)
	assert.False(t, available)

	_, err = m.SubdomainAvailable(t.Context(), "www")
	assert.ErrorIs(t, err, resolver.ErrSubdomainReserved)
}

func TestSetRole(t *testing.T) {
	db := mock.NewInMemoryDB()
	m, _ := newTenantManager(db)

	tenant := register(t, m, "alice")

	promoted, err := m.SetRole(t.Context(), tenant.ID, model.RolePlatformAdmin)
	require.NoError(t, err)
	assert.True(t, promoted.IsPlatformAdmin())

	_, err = m.SetRole(t.Context(), tenant.ID, "JANITOR")
	assert.ErrorIs(t, err, model.ErrInvalidTenantRole)
}

func TestStats(t *testing.T) {
	db := mock.NewInMemoryDB()
	m, _ := newTenantManager(db)

	alice := register(t, m, "alice")
	bob := register(t, m, "bobsite")
	register(t, m, "carol")

	_, err := m.Ban(t.Context(), alice.ID)
	require.NoError(t, err)

	_, err = m.Deactivate(t.Context(), bob.ID)
	require.NoError(t, err)

	stats, err := m.Stats(t.Context())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Active)
	assert.Equal(t, 1, stats.Banned)
	assert.Equal(t, 1, stats.Deactivated)
	assert.Equal(t, 0, stats.Admins)
}

func TestListTenants(t *testing.T) {
	db := mock.NewInMemoryDB()
	m, _ := newTenantManager(db)

	register(t, m, "alice")
	register(t, m, "bobsite")

	tenants, total, err := m.List(t.Context(), repo.TenantQuery{Search: "bob"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, tenants, 1)
	assert.Equal(t, "bobsite", tenants[0].Subdomain)
}

func TestFlushCaches(t *testing.T) {
	db := mock.NewInMemoryDB()
	m, inv := newTenantManager(db)

	m.FlushCaches(t.Context())
	assert.Equal(t, 1, inv.flushes)
}
