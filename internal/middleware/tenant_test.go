package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfoliopro/folio/internal/cache"
	"github.com/portfoliopro/folio/internal/middleware"
	"github.com/portfoliopro/folio/internal/model"
	"github.com/portfoliopro/folio/internal/repo/mock"
	"github.com/portfoliopro/folio/internal/resolver"
	"github.com/portfoliopro/folio/internal/tenantcache"
	foliocontext "github.com/portfoliopro/folio/utils/context"
)

type resolutionResult struct {
	subdomain string
	hasTenant bool
	tenantID  uuid.UUID
}

func newResolutionHandler(db *mock.InMemoryDB, strict404 bool, result *resolutionResult) http.Handler {
	cfg := middleware.TenantResolutionConfig{
		Resolver:  resolver.New("portfoliopro.site", nil),
		Reserved:  resolver.NewReservedSet(nil),
		Tenants:   tenantcache.New(cache.NewMemoryStore(), db, 5*time.Minute),
		Strict404: strict404,
	}

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		result.subdomain = foliocontext.GetSubdomain(ctx)
		result.hasTenant = foliocontext.IsTenantRequest(ctx)

		tenant, err := foliocontext.GetTenant(ctx)
		if err == nil {
			result.tenantID = tenant.ID
		}

		w.WriteHeader(http.StatusOK)
	})

	return middleware.TenantResolution(cfg)(inner)
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

func TestTenantResolutionResolved(t *testing.T) {
	db := mock.NewInMemoryDB()
	want := seedTenant(db, "alice")

	var result resolutionResult

	handler := newResolutionHandler(db, false, &result)

	req := httptest.NewRequest(http.MethodGet, "http://alice.portfoliopro.site/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", result.subdomain)
	assert.True(t, result.hasTenant)
	assert.Equal(t, want.ID, result.tenantID)
}

func TestTenantResolutionNoSubdomain(t *testing.T) {
	db := mock.NewInMemoryDB()

	var result resolutionResult

	handler := newResolutionHandler(db, false, &result)

	req := httptest.NewRequest(http.MethodGet, "http://portfoliopro.site/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, result.subdomain)
	assert.False(t, result.hasTenant)
}

func TestTenantResolutionReservedIsNoTenant(t *testing.T) {
	db := mock.NewInMemoryDB()

	var result resolutionResult

	handler := newResolutionHandler(db, false, &result)

	req := httptest.NewRequest(http.MethodGet, "http://www.portfoliopro.site/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, result.subdomain)
	assert.False(t, result.hasTenant)
}

func TestTenantResolutionNotFoundDefaultsToLanding(t *testing.T) {
	db := mock.NewInMemoryDB()

	var result resolutionResult

	handler := newResolutionHandler(db, false, &result)

	req := httptest.NewRequest(http.MethodGet, "http://ghost.portfoliopro.site/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ghost", result.subdomain)
	assert.False(t, result.hasTenant)
}

func TestTenantResolutionStrict404(t *testing.T) {
	db := mock.NewInMemoryDB()

	var result resolutionResult

	handler := newResolutionHandler(db, true, &result)

	t.Run("page path gets 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://ghost.portfoliopro.site/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("api path passes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://ghost.portfoliopro.site/api/portfolio", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestTenantResolutionBannedTenantNotServed(t *testing.T) {
	db := mock.NewInMemoryDB()
	tenant := seedTenant(db, "alice")
	tenant.Banned = true
	db.Data.Tenants[tenant.ID] = tenant

	var result resolutionResult

	handler := newResolutionHandler(db, false, &result)

	req := httptest.NewRequest(http.MethodGet, "http://alice.portfoliopro.site/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, result.hasTenant)
}

func TestTenantResolutionDirectoryErrorDegrades(t *testing.T) {
	db := mock.NewInMemoryDB()
	db.Err = assert.AnError

	var result resolutionResult

	handler := newResolutionHandler(db, false, &result)

	req := httptest.NewRequest(http.MethodGet, "http://alice.portfoliopro.site/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, result.hasTenant)
}

func TestTenantResolutionQueryParamOnLocalhost(t *testing.T) {
	db := mock.NewInMemoryDB()
	want := seedTenant(db, "alice")

	var result resolutionResult

	handler := newResolutionHandler(db, false, &result)

	req := httptest.NewRequest(http.MethodGet, "http://localhost:8000/?subdomain=alice", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, result.hasTenant)
	assert.Equal(t, want.ID, result.tenantID)
}
