package daemon

import (
	"context"
	"errors"
	"net/http"
	"syscall"
	"time"

	"github.com/samber/oops"

	"github.com/portfoliopro/folio/internal/aggregator"
	"github.com/portfoliopro/folio/internal/async"
	"github.com/portfoliopro/folio/internal/auth"
	"github.com/portfoliopro/folio/internal/cache"
	"github.com/portfoliopro/folio/internal/config"
	"github.com/portfoliopro/folio/internal/controllers"
	"github.com/portfoliopro/folio/internal/db"
	"github.com/portfoliopro/folio/internal/log"
	"github.com/portfoliopro/folio/internal/manager"
	"github.com/portfoliopro/folio/internal/middleware"
	"github.com/portfoliopro/folio/internal/pagecache"
	"github.com/portfoliopro/folio/internal/repo/sql"
	"github.com/portfoliopro/folio/internal/resolver"
	"github.com/portfoliopro/folio/internal/tenantcache"
)

const (
	ReadHeaderTimeout = 5 * time.Second
	ReadTimeout       = 10 * time.Second
	WriteTimeout      = 10 * time.Second
	IdleTimeout       = 120 * time.Second
	ServerLogDomain   = "server daemon"
)

// FolioServer is the public HTTP server: tenant portfolio sites, the owner
// dashboard API and the superadmin API behind one listener.
type FolioServer struct {
	cfg      *config.Config
	server   *http.Server
	asyncApp *async.App
}

func NewServer(ctx context.Context, cfg *config.Config) (*FolioServer, error) {
	dbCon, err := db.StartDBConnection(ctx, cfg.Database, cfg.DatabaseReplicas)
	if err != nil {
		return nil, oops.In(ServerLogDomain).Wrapf(err, "starting db")
	}

	repository := sql.NewRepository(dbCon)

	store, err := cache.NewStoreFromConfig(cfg.Cache)
	if err != nil {
		return nil, oops.In(ServerLogDomain).Wrapf(err, "creating cache store")
	}

	tenants := tenantcache.New(store, repository, cfg.Cache.TTL)
	pages := pagecache.New(store, cfg.Cache.TTL)
	invalidator := manager.NewInvalidator(tenants, pages)

	sessions, err := auth.NewSessions(cfg.Auth)
	if err != nil {
		return nil, oops.In(ServerLogDomain).Wrapf(err, "loading session signing secret")
	}

	asyncApp, err := async.New(cfg)
	if err != nil {
		return nil, oops.In(ServerLogDomain).Wrapf(err, "connecting to task queue")
	}

	reserved := resolver.NewReservedSet(cfg.Tenancy.ExtraReservedSubdomains)

	tenantManager := manager.NewTenantManager(repository, repository, reserved, invalidator)
	portfolioManager := manager.NewPortfolioManager(repository, invalidator)
	themeManager := manager.NewThemeManager(repository, invalidator)
	broadcastManager := manager.NewBroadcastManager(asyncApp.Client())

	router := NewRouter(RouterConfig{
		Auth:       controllers.NewAuthController(tenantManager, sessions),
		Content:    controllers.NewContentController(portfolioManager, themeManager),
		Portfolio:  controllers.NewPortfolioController(aggregator.New(repository), pages, themeManager),
		Superadmin: controllers.NewSuperadminController(tenantManager, broadcastManager, sessions, asyncApp.Client()),
		Sessions:   sessions,
		Directory:  repository,
		Resolution: middleware.TenantResolutionConfig{
			Resolver:  resolver.New(cfg.Tenancy.MainDomain, cfg.Tenancy.LocalHosts),
			Reserved:  reserved,
			Tenants:   tenants,
			Strict404: cfg.HTTP.StrictTenant404,
		},
	})

	return &FolioServer{
		cfg:      cfg,
		asyncApp: asyncApp,
		server: &http.Server{
			Addr:              cfg.HTTP.Address,
			Handler:           router,
			ReadHeaderTimeout: ReadHeaderTimeout,
			ReadTimeout:       ReadTimeout,
			WriteTimeout:      WriteTimeout,
			IdleTimeout:       IdleTimeout,
		},
	}, nil
}

func (s *FolioServer) Start(ctx context.Context) error {
	go func() {
		err := s.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "server encountered an error", err)

			_ = syscall.Kill(syscall.Getpid(), syscall.SIGTERM)
		}
	}()

	return nil
}

func (s *FolioServer) Close(ctx context.Context) error {
	err := s.asyncApp.Shutdown(ctx)
	if err != nil {
		log.Error(ctx, "failed to shut down task queue client", err)
	}

	shutdownCtx, shutdownRelease := context.WithTimeout(ctx, s.cfg.HTTP.ShutdownTimeout)
	defer shutdownRelease()

	err = s.server.Shutdown(shutdownCtx)
	if err != nil {
		return oops.In(ServerLogDomain).
			WithContext(ctx).
			Wrapf(err, "failed shutting down HTTP server")
	}

	log.Info(ctx, "Completed graceful shutdown of HTTP server")

	return nil
}
