package tenantcache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/portfoliopro/folio/internal/cache"
	"github.com/portfoliopro/folio/internal/log"
	"github.com/portfoliopro/folio/internal/metrics"
	"github.com/portfoliopro/folio/internal/model"
	"github.com/portfoliopro/folio/internal/repo"
)

const keyPrefix = "tenant_"

// notFoundSentinel marks a cached negative lookup. It can never collide with
// a marshalled tenant, which always starts with '{'.
var notFoundSentinel = []byte("\x00NOT_FOUND")

// ServableFinder is the single directory query the cache fronts.
type ServableFinder interface {
	FindServable(ctx context.Context, subdomain string) (*model.Tenant, error)
}

// Cache answers subdomain lookups from the store before touching the
// directory. Missing tenants are cached too, so hammering an unclaimed
// subdomain costs one directory query per TTL window. A broken store never
// fails a lookup; it only makes it slower.
type Cache struct {
	store     cache.Store
	directory ServableFinder
	ttl       time.Duration
}

// New builds the cache. A nil store disables caching entirely and every
// lookup goes straight to the directory.
func New(store cache.Store, directory ServableFinder, ttl time.Duration) *Cache {
	return &Cache{
		store:     store,
		directory: directory,
		ttl:       ttl,
	}
}

// Lookup resolves the subdomain to a servable tenant, or nil when no such
// tenant exists. The returned error is a directory failure, never a cache
// failure.
func (c *Cache) Lookup(ctx context.Context, subdomain string) (*model.Tenant, error) {
	subdomain = strings.ToLower(subdomain)
	if subdomain == "" {
		return nil, nil
	}

	key := keyPrefix + subdomain

	if c.store != nil {
		tenant, found := c.fromStore(ctx, key)
		if found {
			return tenant, nil
		}
	}

	tenant, err := c.directory.FindServable(ctx, subdomain)
	if errors.Is(err, repo.ErrTenantNotFound) {
		c.put(ctx, key, notFoundSentinel)
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(tenant)
	if err == nil {
		c.put(ctx, key, payload)
	}

	return tenant, nil
}

// fromStore reports (tenant, true) on a usable cached answer. A cached
// negative yields (nil, true).
func (c *Cache) fromStore(ctx context.Context, key string) (*model.Tenant, bool) {
	value, err := c.store.Get(ctx, key)
	if errors.Is(err, cache.ErrMiss) {
		metrics.TenantCacheLookups.WithLabelValues(metrics.OutcomeMiss).Inc()
		return nil, false
	} else if err != nil {
		metrics.TenantCacheLookups.WithLabelValues(metrics.OutcomeError).Inc()
		log.Warn(ctx, "tenant cache unavailable, querying directory", log.ErrorAttr(err))

		return nil, false
	}

	if string(value) == string(notFoundSentinel) {
		metrics.TenantCacheLookups.WithLabelValues(metrics.OutcomeNegativeHit).Inc()
		return nil, true
	}

	var tenant model.Tenant

	err = json.Unmarshal(value, &tenant)
	if err != nil {
		metrics.TenantCacheLookups.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, false
	}

	metrics.TenantCacheLookups.WithLabelValues(metrics.OutcomeHit).Inc()

	return &tenant, true
}

func (c *Cache) put(ctx context.Context, key string, value []byte) {
	if c.store == nil {
		return
	}

	err := c.store.Set(ctx, key, value, c.ttl)
	if err != nil {
		log.Warn(ctx, "failed to populate tenant cache", log.ErrorAttr(err))
	}
}

// Invalidate evicts the subdomain's entry, positive or negative. Callers run
// it synchronously after every write that changes what Lookup would return.
func (c *Cache) Invalidate(ctx context.Context, subdomain string) {
	if c.store == nil {
		return
	}

	subdomain = strings.ToLower(subdomain)

	err := c.store.Delete(ctx, keyPrefix+subdomain)
	if err != nil {
		log.Warn(ctx, "failed to invalidate tenant cache", log.ErrorAttr(err))
	}
}

// Flush drops every tenant entry. Only the explicit admin action uses it.
func (c *Cache) Flush(ctx context.Context) {
	if c.store == nil {
		return
	}

	err := c.store.DeletePrefix(ctx, keyPrefix)
	if err != nil {
		log.Warn(ctx, "failed to flush tenant cache", log.ErrorAttr(err))
	}
}
