package manager

import (
	"context"

	"github.com/portfoliopro/folio/internal/pagecache"
	"github.com/portfoliopro/folio/internal/tenantcache"
)

// CacheInvalidator evicts cached state for a subdomain. Managers call it
// synchronously after a write commits, never before, so a concurrent reader
// either sees the old row or repopulates from the new one.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, subdomain string)
	FlushAll(ctx context.Context)
}

// Invalidator is the production CacheInvalidator over both caches.
type Invalidator struct {
	tenants *tenantcache.Cache
	pages   *pagecache.Cache
}

func NewInvalidator(tenants *tenantcache.Cache, pages *pagecache.Cache) *Invalidator {
	return &Invalidator{
		tenants: tenants,
		pages:   pages,
	}
}

func (i *Invalidator) Invalidate(ctx context.Context, subdomain string) {
	i.tenants.Invalidate(ctx, subdomain)
	i.pages.Invalidate(ctx, subdomain)
}

func (i *Invalidator) FlushAll(ctx context.Context) {
	i.tenants.Flush(ctx)
	i.pages.Flush(ctx)
}
