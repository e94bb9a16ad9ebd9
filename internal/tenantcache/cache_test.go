package tenantcache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfoliopro/folio/internal/cache"
	"github.com/portfoliopro/folio/internal/model"
	"github.com/portfoliopro/folio/internal/repo/mock"
	"github.com/portfoliopro/folio/internal/tenantcache"
)

type countingDirectory struct {
	*mock.InMemoryDB
	calls int
}

func (d *countingDirectory) FindServable(ctx context.Context, subdomain string) (*model.Tenant, error) {
	d.calls++
	return d.InMemoryDB.FindServable(ctx, subdomain)
}

func seedTenant(db *mock.InMemoryDB, subdomain string) model.Tenant {
	tenant := model.Tenant{
		ID:        uuid.New(),
		Username:  subdomain,
		Email:     subdomain + "@example.com",
		Subdomain: subdomain,
		Active:    true,
	}
	db.Data.Tenants[tenant.ID] = tenant

	return tenant
}

func TestLookupCachesPositive(t *testing.T) {
	dir := &countingDirectory{InMemoryDB: mock.NewInMemoryDB()}
	want := seedTenant(dir.InMemoryDB, "alice")

	c := tenantcache.New(cache.NewMemoryStore(), dir, 5*time.Minute)

	for range 3 {
		got, err := c.Lookup(t.Context(), "alice")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, want.ID, got.ID)
	}

	assert.Equal(t, 1, dir.calls)
}

func TestLookupCachesNegative(t *testing.T) {
	dir := &countingDirectory{InMemoryDB: mock.NewInMemoryDB()}

	c := tenantcache.New(cache.NewMemoryStore(), dir, 5*time.Minute)

	for range 3 {
		got, err := c.Lookup(t.Context(), "ghost")
		require.NoError(t, err)
		assert.Nil(t, got)
	}

	assert.Equal(t, 1, dir.calls)
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	dir := &countingDirectory{InMemoryDB: mock.NewInMemoryDB()}
	seedTenant(dir.InMemoryDB, "alice")

	c := tenantcache.New(cache.NewMemoryStore(), dir, 5*time.Minute)

	got, err := c.Lookup(t.Context(), "ALICE")
	require.NoError(t, err)
	require.NotNil(t, got)

	got, err = c.Lookup(t.Context(), "alice")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, 1, dir.calls)
}

func TestLookupEmptySubdomain(t *testing.T) {
	dir := &countingDirectory{InMemoryDB: mock.NewInMemoryDB()}

	c := tenantcache.New(cache.NewMemoryStore(), dir, 5*time.Minute)

	got, err := c.Lookup(t.Context(), "")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 0, dir.calls)
}

func TestLookupExcludesBannedAndDeactivated(t *testing.T) {
	tests := map[string]func(*model.Tenant){
		"Banned tenant":      func(tenant *model.Tenant) { tenant.Banned = true },
		"Deactivated tenant": func(tenant *model.Tenant) { tenant.Active = false },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			db := mock.NewInMemoryDB()
			tenant := seedTenant(db, "alice")
			mutate(&tenant)
			db.Data.Tenants[tenant.ID] = tenant

			c := tenantcache.New(cache.NewMemoryStore(), db, 5*time.Minute)

			got, err := c.Lookup(t.Context(), "alice")
			require.NoError(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestInvalidateDropsBothEntryKinds(t *testing.T) {
	dir := &countingDirectory{InMemoryDB: mock.NewInMemoryDB()}
	c := tenantcache.New(cache.NewMemoryStore(), dir, 5*time.Minute)
	ctx := t.Context()

	// Cache a negative for an unclaimed subdomain, then register it.
	got, err := c.Lookup(ctx, "alice")
	require.NoError(t, err)
	require.Nil(t, got)

	seedTenant(dir.InMemoryDB, "alice")
	c.Invalidate(ctx, "alice")

	got, err = c.Lookup(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got)

	// Now ban and invalidate; the positive entry must go too.
	tenant := dir.Data.Tenants[got.ID]
	tenant.Banned = true
	dir.Data.Tenants[got.ID] = tenant
	c.Invalidate(ctx, "alice")

	got, err = c.Lookup(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBanUnbanFlapping(t *testing.T) {
	db := mock.NewInMemoryDB()
	tenant := seedTenant(db, "alice")

	c := tenantcache.New(cache.NewMemoryStore(), db, 5*time.Minute)
	ctx := t.Context()

	for range 3 {
		tenant.Banned = true
		db.Data.Tenants[tenant.ID] = tenant
		c.Invalidate(ctx, "alice")

		got, err := c.Lookup(ctx, "alice")
		require.NoError(t, err)
		assert.Nil(t, got)

		tenant.Banned = false
		db.Data.Tenants[tenant.ID] = tenant
		c.Invalidate(ctx, "alice")

		got, err = c.Lookup(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, got)
	}
}

var errStoreDown = errors.New("store down")

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) ([]byte, error) { return nil, errStoreDown }
func (brokenStore) Set(context.Context, string, []byte, time.Duration) error {
	return errStoreDown
}
func (brokenStore) Delete(context.Context, ...string) error    { return errStoreDown }
func (brokenStore) DeletePrefix(context.Context, string) error { return errStoreDown }
func (brokenStore) Flush(context.Context) error                { return errStoreDown }

func TestLookupDegradesWhenStoreFails(t *testing.T) {
	dir := &countingDirectory{InMemoryDB: mock.NewInMemoryDB()}
	want := seedTenant(dir.InMemoryDB, "alice")

	c := tenantcache.New(brokenStore{}, dir, 5*time.Minute)

	got, err := c.Lookup(t.Context(), "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.ID, got.ID)

	// Every lookup hits the directory while the store is down.
	_, err = c.Lookup(t.Context(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, dir.calls)
}

func TestLookupWithoutStore(t *testing.T) {
	dir := &countingDirectory{InMemoryDB: mock.NewInMemoryDB()}
	seedTenant(dir.InMemoryDB, "alice")

	c := tenantcache.New(nil, dir, 5*time.Minute)

	got, err := c.Lookup(t.Context(), "alice")
	require.NoError(t, err)
	require.NotNil(t, got)

	_, err = c.Lookup(t.Context(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, dir.calls)
}

func TestLookupDirectoryError(t *testing.T) {
	db := mock.NewInMemoryDB()
	db.Err = errors.New("connection refused")

	c := tenantcache.New(cache.NewMemoryStore(), db, 5*time.Minute)

	_, err := c.Lookup(t.Context(), "alice")
	assert.Error(t, err)
}
