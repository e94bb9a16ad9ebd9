package controllers

import (
	"errors"
	"net/http"

	"github.com/portfoliopro/folio/internal/aggregator"
	"github.com/portfoliopro/folio/internal/api/write"
	"github.com/portfoliopro/folio/internal/apierrors"
	"github.com/portfoliopro/folio/internal/log"
	"github.com/portfoliopro/folio/internal/manager"
	"github.com/portfoliopro/folio/internal/pagecache"
	foliocontext "github.com/portfoliopro/folio/utils/context"
)

// PortfolioController serves the public portfolio site and the landing page.
type PortfolioController struct {
	aggregator *aggregator.Aggregator
	pages      *pagecache.Cache
	themes     *manager.ThemeManager
}

func NewPortfolioController(
	agg *aggregator.Aggregator,
	pages *pagecache.Cache,
	themes *manager.ThemeManager,
) *PortfolioController {
	return &PortfolioController{
		aggregator: agg,
		pages:      pages,
		themes:     themes,
	}
}

// ServeSite renders the resolved tenant's portfolio. Requests that resolved
// no tenant fall back to the platform landing page. Successful renders go
// through the page cache keyed by subdomain and path.
func (c *PortfolioController) ServeSite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenant, err := foliocontext.GetTenant(ctx)
	if err != nil {
		c.Landing(w, r)
		return
	}

	c.pages.CachedOrRender(w, r, tenant.Subdomain, http.HandlerFunc(c.renderSite))
}

func (c *PortfolioController) renderSite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenant, err := foliocontext.GetTenant(ctx)
	if err != nil {
		write.ErrorResponse(ctx, w, apierrors.NotFoundErrorMessage())
		return
	}

	pc, err := c.aggregator.BuildContext(ctx, tenant)
	if errors.Is(err, aggregator.ErrNotAvailable) {
		write.ErrorResponse(ctx, w, apierrors.NotFoundErrorMessage())
		return
	} else if err != nil {
		log.Error(ctx, "Failed to build portfolio context", err)
		write.ErrorResponse(ctx, w, apierrors.InternalServerErrorMessage())

		return
	}

	write.JSONResponse(ctx, w, http.StatusOK, pc)
}

// Landing is the apex-domain page for visitors without a subdomain.
func (c *PortfolioController) Landing(w http.ResponseWriter, r *http.Request) {
	write.JSONResponse(r.Context(), w, http.StatusOK, map[string]string{
		"name":    "PortfolioPro",
		"message": "Claim your subdomain and publish your portfolio.",
	})
}

// ListThemePresets exposes the platform theme catalog.
func (c *PortfolioController) ListThemePresets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	presets, err := c.themes.ListPresets(ctx)
	if err != nil {
		log.Error(ctx, "Failed to list theme presets", err)
		write.ErrorResponse(ctx, w, apierrors.InternalServerErrorMessage())

		return
	}

	write.JSONResponse(ctx, w, http.StatusOK, presets)
}
