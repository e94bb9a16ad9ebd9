package middleware

import (
	"net/http"
	"strings"

	"github.com/portfoliopro/folio/internal/api/write"
	"github.com/portfoliopro/folio/internal/apierrors"
	"github.com/portfoliopro/folio/internal/log"
	"github.com/portfoliopro/folio/internal/metrics"
	"github.com/portfoliopro/folio/internal/resolver"
	"github.com/portfoliopro/folio/internal/tenantcache"
	foliocontext "github.com/portfoliopro/folio/utils/context"
)

// TenantResolutionConfig wires the resolution middleware.
type TenantResolutionConfig struct {
	Resolver *resolver.Resolver
	Reserved *resolver.ReservedSet
	Tenants  *tenantcache.Cache

	// Strict404 answers 404 on unresolvable subdomains instead of letting
	// the landing page handle the request. API paths are exempt so error
	// bodies stay JSON.
	Strict404 bool
}

// TenantResolution resolves the request host to a tenant and stores the
// outcome in the request context. Every request ends in exactly one of three
// states: no subdomain, tenant resolved, or tenant not found. Reserved names
// and directory failures both degrade to no tenant; a directory failure is
// additionally logged.
func TenantResolution(cfg TenantResolutionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			subdomain := cfg.Resolver.Resolve(r.Host, r.URL.Query())
			if subdomain == "" || cfg.Reserved.Contains(subdomain) {
				metrics.TenantResolutions.WithLabelValues(metrics.OutcomeNoSubdomain).Inc()
				next.ServeHTTP(w, r)

				return
			}

			ctx = foliocontext.InjectSubdomain(ctx, subdomain)
			ctx = log.InjectTenant(ctx, subdomain)

			tenant, err := cfg.Tenants.Lookup(ctx, subdomain)
			if err != nil {
				log.Error(ctx, "tenant directory unavailable, serving without tenant", err)
			}

			if tenant == nil {
				metrics.TenantResolutions.WithLabelValues(metrics.OutcomeTenantNotFound).Inc()

				if cfg.Strict404 && !strings.HasPrefix(r.URL.Path, "/api/") {
					write.ErrorResponse(ctx, w, apierrors.NotFoundErrorMessage())
					return
				}

				next.ServeHTTP(w, r.WithContext(ctx))

				return
			}

			metrics.TenantResolutions.WithLabelValues(metrics.OutcomeTenantResolved).Inc()

			ctx = foliocontext.InjectTenant(ctx, tenant)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
