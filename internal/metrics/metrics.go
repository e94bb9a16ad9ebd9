package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values shared by the counters below.
const (
	OutcomeHit         = "hit"
	OutcomeMiss        = "miss"
	OutcomeNegativeHit = "negative_hit"
	OutcomeError       = "error"
	OutcomeBypass      = "bypass"

	OutcomeNoSubdomain    = "no_subdomain"
	OutcomeTenantResolved = "tenant_resolved"
	OutcomeTenantNotFound = "tenant_not_found"
)

var (
	// TenantCacheLookups counts tenant cache lookups by outcome.
	TenantCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "folio",
		Subsystem: "tenant_cache",
		Name:      "lookups_total",
		Help:      "Tenant cache lookups by outcome.",
	}, []string{"outcome"})

	// PageCacheRequests counts page cache decisions by outcome.
	PageCacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "folio",
		Subsystem: "page_cache",
		Name:      "requests_total",
		Help:      "Page cache decisions by outcome.",
	}, []string{"outcome"})

	// TenantResolutions counts terminal outcomes of the resolution middleware.
	TenantResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "folio",
		Subsystem: "resolution",
		Name:      "requests_total",
		Help:      "Tenant resolution middleware outcomes.",
	}, []string{"outcome"})
)
