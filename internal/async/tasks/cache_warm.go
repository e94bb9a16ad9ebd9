package tasks

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/portfoliopro/folio/internal/config"
	"github.com/portfoliopro/folio/internal/log"
	"github.com/portfoliopro/folio/internal/repo"
	"github.com/portfoliopro/folio/internal/tenantcache"
	"github.com/portfoliopro/folio/utils/ptr"
)

// CacheWarmer repopulates the tenant cache for every servable tenant, so a
// cold start after a flush does not pay one directory round trip per first
// visitor.
type CacheWarmer struct {
	directory repo.Directory
	tenants   *tenantcache.Cache
}

func NewCacheWarmer(directory repo.Directory, tenants *tenantcache.Cache) *CacheWarmer {
	return &CacheWarmer{
		directory: directory,
		tenants:   tenants,
	}
}

func (c *CacheWarmer) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	log.Info(ctx, "Starting tenant cache warm")

	warmed := 0

	for offset := 0; ; offset += repo.DefaultLimit {
		tenants, _, err := c.directory.ListTenants(ctx, repo.TenantQuery{
			Active: ptr.To(true),
			Banned: ptr.To(false),
			Limit:  repo.DefaultLimit,
			Offset: offset,
		})
		if err != nil {
			log.Error(ctx, "Failed to list tenants for cache warm", err)
			return err
		}

		if len(tenants) == 0 {
			break
		}

		for _, tenant := range tenants {
			_, err := c.tenants.Lookup(ctx, tenant.Subdomain)
			if err != nil {
				log.Warn(ctx, "Failed to warm tenant entry",
					slog.String("subdomain", tenant.Subdomain), log.ErrorAttr(err))
				continue
			}

			warmed++
		}

		if len(tenants) < repo.DefaultLimit {
			break
		}
	}

	log.Info(ctx, "Tenant cache warm completed", slog.Int("tenantCount", warmed))

	return nil
}

func (c *CacheWarmer) TaskType() string {
	return config.TypeCacheWarm
}
