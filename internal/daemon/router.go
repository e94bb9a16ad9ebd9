package daemon

import (
	"net/http"

	"github.com/portfoliopro/folio/internal/auth"
	"github.com/portfoliopro/folio/internal/controllers"
	"github.com/portfoliopro/folio/internal/middleware"
	"github.com/portfoliopro/folio/internal/repo"
)

// RouterConfig carries everything the route table needs. Tests build one
// around mocks; NewServer builds one from live config.
type RouterConfig struct {
	Auth       *controllers.AuthController
	Content    *controllers.ContentController
	Portfolio  *controllers.PortfolioController
	Superadmin *controllers.SuperadminController

	Sessions  *auth.Sessions
	Directory repo.Directory

	Resolution middleware.TenantResolutionConfig
}

// NewRouter assembles the route table and the middleware chain around it.
// The chain runs outside-in: request id, logging, panic recovery, session
// authentication, then tenant resolution.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	authed := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(h)
	}

	superadmin := middleware.RequireSuperadmin(cfg.Directory)
	admin := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(superadmin(h))
	}

	// Account lifecycle.
	mux.HandleFunc("POST /api/auth/register", cfg.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", cfg.Auth.Login)
	mux.HandleFunc("POST /api/auth/logout", cfg.Auth.Logout)
	mux.HandleFunc("GET /api/auth/subdomain", cfg.Auth.CheckSubdomain)
	mux.Handle("GET /api/auth/me", authed(cfg.Auth.Me))
	mux.Handle("POST /api/auth/password", authed(cfg.Auth.ChangePassword))

	// Owner dashboard.
	mux.Handle("GET /api/portfolio/profile", authed(cfg.Content.GetProfile))
	mux.Handle("PUT /api/portfolio/profile", authed(cfg.Content.SaveProfile))
	mux.Handle("GET /api/portfolio/contact", authed(cfg.Content.GetContactInfo))
	mux.Handle("PUT /api/portfolio/contact", authed(cfg.Content.SaveContactInfo))
	mux.Handle("GET /api/portfolio/settings", authed(cfg.Content.GetSiteSettings))
	mux.Handle("PUT /api/portfolio/settings", authed(cfg.Content.SaveSiteSettings))

	for path, handlers := range cfg.Content.Collections() {
		mux.Handle("GET /api/portfolio/"+path, authed(handlers.List))
		mux.Handle("POST /api/portfolio/"+path, authed(handlers.Create))
		mux.Handle("PUT /api/portfolio/"+path+"/{id}", authed(handlers.Update))
		mux.Handle("DELETE /api/portfolio/"+path+"/{id}", authed(handlers.Delete))
	}

	mux.Handle("GET /api/portfolio/sections", authed(cfg.Content.ListCustomSections))
	mux.Handle("POST /api/portfolio/sections", authed(cfg.Content.CreateCustomSection))
	mux.Handle("POST /api/portfolio/sections/reorder", authed(cfg.Content.ReorderSections))
	mux.Handle("PUT /api/portfolio/sections/{id}", authed(cfg.Content.UpdateCustomSection))
	mux.Handle("DELETE /api/portfolio/sections/{id}", authed(cfg.Content.DeleteCustomSection))
	mux.Handle("POST /api/portfolio/sections/{id}/toggle", authed(cfg.Content.ToggleSectionVisibility))
	mux.Handle("POST /api/portfolio/sections/{sectionId}/items", authed(cfg.Content.CreateCustomItem))
	mux.Handle("PUT /api/portfolio/sections/{sectionId}/items/{id}", authed(cfg.Content.UpdateCustomItem))
	mux.Handle("DELETE /api/portfolio/sections/{sectionId}/items/{id}", authed(cfg.Content.DeleteCustomItem))

	mux.Handle("GET /api/portfolio/themes", authed(cfg.Content.ListSavedThemes))
	mux.Handle("POST /api/portfolio/themes", authed(cfg.Content.SaveTheme))
	mux.Handle("POST /api/portfolio/themes/preset", authed(cfg.Content.ApplyThemePreset))
	mux.Handle("POST /api/portfolio/themes/{id}/apply", authed(cfg.Content.ApplySavedTheme))
	mux.Handle("DELETE /api/portfolio/themes/{id}", authed(cfg.Content.DeleteSavedTheme))

	// Fleet management.
	mux.Handle("GET /api/admin/stats", admin(cfg.Superadmin.Stats))
	mux.Handle("GET /api/admin/tenants", admin(cfg.Superadmin.List))
	mux.Handle("GET /api/admin/tenants/{id}", admin(cfg.Superadmin.Get))
	mux.Handle("POST /api/admin/tenants/{id}/ban", admin(cfg.Superadmin.Ban))
	mux.Handle("POST /api/admin/tenants/{id}/unban", admin(cfg.Superadmin.Unban))
	mux.Handle("POST /api/admin/tenants/{id}/deactivate", admin(cfg.Superadmin.Deactivate))
	mux.Handle("POST /api/admin/tenants/{id}/reactivate", admin(cfg.Superadmin.Reactivate))
	mux.Handle("POST /api/admin/tenants/{id}/role", admin(cfg.Superadmin.SetRole))
	mux.Handle("POST /api/admin/tenants/{id}/subdomain", admin(cfg.Superadmin.RenameSubdomain))
	mux.Handle("POST /api/admin/tenants/{id}/reset-password", admin(cfg.Superadmin.ResetPassword))
	mux.Handle("POST /api/admin/tenants/{id}/impersonate", admin(cfg.Superadmin.Impersonate))
	mux.Handle("POST /api/admin/impersonation/end", authed(cfg.Superadmin.EndImpersonation))
	mux.Handle("POST /api/admin/broadcast", admin(cfg.Superadmin.Broadcast))
	mux.Handle("POST /api/admin/cache/flush", admin(cfg.Superadmin.FlushCaches))
	mux.Handle("POST /api/admin/cache/warm", admin(cfg.Superadmin.WarmCache))

	// Public surface.
	mux.HandleFunc("GET /api/themes", cfg.Portfolio.ListThemePresets)
	mux.HandleFunc("/", cfg.Portfolio.ServeSite)

	// Middlewares run in a FILO. Last one applied is the first one ran.
	var handler http.Handler = mux
	handler = middleware.TenantResolution(cfg.Resolution)(handler)
	handler = middleware.Authentication(cfg.Sessions, cfg.Directory)(handler)
	handler = middleware.PanicRecoveryMiddleware()(handler)
	handler = middleware.LoggingMiddleware()(handler)
	handler = middleware.InjectRequestID()(handler)

	return handler
}
