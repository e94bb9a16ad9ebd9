package foliocli

import (
	"context"
	"fmt"

	"github.com/openkcm/common-sdk/pkg/commoncfg"
	"github.com/openkcm/common-sdk/pkg/logger"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/portfoliopro/folio/internal/async"
	"github.com/portfoliopro/folio/internal/cache"
	"github.com/portfoliopro/folio/internal/config"
	"github.com/portfoliopro/folio/internal/db"
	"github.com/portfoliopro/folio/internal/manager"
	"github.com/portfoliopro/folio/internal/model"
	"github.com/portfoliopro/folio/internal/pagecache"
	"github.com/portfoliopro/folio/internal/repo/sql"
	"github.com/portfoliopro/folio/internal/resolver"
	"github.com/portfoliopro/folio/internal/tenantcache"
)

// deps bundles everything the admin commands operate on.
type deps struct {
	tenants   *manager.TenantManager
	broadcast *manager.BroadcastManager
	asyncApp  *async.App
}

func setup(ctx context.Context, cfg *config.Config) (*deps, error) {
	dbCon, err := db.StartDBConnection(ctx, cfg.Database, cfg.DatabaseReplicas)
	if err != nil {
		return nil, oops.In("main").Wrapf(err, "failed to initialise db connection")
	}

	repository := sql.NewRepository(dbCon)

	store, err := cache.NewStoreFromConfig(cfg.Cache)
	if err != nil {
		return nil, oops.In("main").Wrapf(err, "failed to create cache store")
	}

	tenants := tenantcache.New(store, repository, cfg.Cache.TTL)
	pages := pagecache.New(store, cfg.Cache.TTL)
	invalidator := manager.NewInvalidator(tenants, pages)
	reserved := resolver.NewReservedSet(cfg.Tenancy.ExtraReservedSubdomains)

	asyncApp, err := async.New(cfg)
	if err != nil {
		return nil, oops.In("main").Wrapf(err, "failed to connect to the task queue")
	}

	return &deps{
		tenants:   manager.NewTenantManager(repository, repository, reserved, invalidator),
		broadcast: manager.NewBroadcastManager(asyncApp.Client()),
		asyncApp:  asyncApp,
	}, nil
}

func createAdminCmd(d **deps) *cobra.Command {
	var username, email, subdomain, password string

	cmd := &cobra.Command{
		Use:   "create-superadmin",
		Short: "Register a platform admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			tenant, err := (*d).tenants.Register(ctx, manager.RegisterParams{
				Username:  username,
				Email:     email,
				Subdomain: subdomain,
				Password:  password,
			})
			if err != nil {
				return oops.In("main").Wrapf(err, "failed to register account")
			}

			tenant, err = (*d).tenants.SetRole(ctx, tenant.ID, model.RolePlatformAdmin)
			if err != nil {
				return oops.In("main").Wrapf(err, "failed to promote account")
			}

			fmt.Printf("created platform admin %s (%s)\n", tenant.Username, tenant.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "account username")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&subdomain, "subdomain", "", "account subdomain")
	cmd.Flags().StringVar(&password, "password", "", "account password")

	return cmd
}

func statusCmd(d **deps, use, short string,
	fn func(td *deps, ctx context.Context, subdomain string) (*model.Tenant, error),
) *cobra.Command {
	var subdomain string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			tenant, err := fn(*d, ctx, subdomain)
			if err != nil {
				return oops.In("main").Wrapf(err, "failed to change tenant status")
			}

			fmt.Printf("%s is now %s\n", tenant.Subdomain, tenant.Status())

			return nil
		},
	}

	cmd.Flags().StringVar(&subdomain, "subdomain", "", "tenant subdomain")

	return cmd
}

func flushCacheCmd(d **deps) *cobra.Command {
	return &cobra.Command{
		Use:   "flush-cache",
		Short: "Drop every cached tenant lookup and rendered page",
		RunE: func(cmd *cobra.Command, args []string) error {
			(*d).tenants.FlushCaches(cmd.Context())
			fmt.Println("caches flushed")

			return nil
		},
	}
}

func broadcastCmd(d **deps) *cobra.Command {
	var subject, body string

	cmd := &cobra.Command{
		Use:   "broadcast",
		Short: "Queue a release note for every active tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := (*d).broadcast.SendReleaseNote(cmd.Context(), subject, body)
			if err != nil {
				return oops.In("main").Wrapf(err, "failed to enqueue broadcast")
			}

			fmt.Println("broadcast queued")

			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "release note subject")
	cmd.Flags().StringVar(&body, "body", "", "release note body, HTML allowed")

	return cmd
}

func Cmd(buildInfo string) *cobra.Command {
	var d *deps

	cmd := &cobra.Command{
		Use:   "admin-cli",
		Short: "Folio Admin CLI",
		Long:  "Folio Admin CLI - command line fleet operations against the configured database and task queue.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return oops.In("main").Wrapf(err, "failed to load config")
			}

			err = commoncfg.UpdateConfigVersion(&cfg.BaseConfig, buildInfo)
			if err != nil {
				return oops.In("main").
					Wrapf(err, "Failed to update the version configuration")
			}

			err = logger.InitAsDefault(cfg.Logger, cfg.Application)
			if err != nil {
				return oops.In("main").Wrapf(err, "Failed to initialise the logger")
			}

			d, err = setup(cmd.Context(), cfg)

			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if d == nil {
				return nil
			}

			return d.asyncApp.Shutdown(cmd.Context())
		},
	}

	cmd.AddCommand(
		createAdminCmd(&d),
		statusCmd(&d, "ban", "Ban a tenant by subdomain", banBySubdomain),
		statusCmd(&d, "unban", "Lift a tenant's ban by subdomain", unbanBySubdomain),
		flushCacheCmd(&d),
		broadcastCmd(&d),
	)

	return cmd
}

func banBySubdomain(d *deps, ctx context.Context, subdomain string) (*model.Tenant, error) {
	tenant, err := d.tenants.GetBySubdomain(ctx, subdomain)
	if err != nil {
		return nil, err
	}

	return d.tenants.Ban(ctx, tenant.ID)
}

func unbanBySubdomain(d *deps, ctx context.Context, subdomain string) (*model.Tenant, error) {
	tenant, err := d.tenants.GetBySubdomain(ctx, subdomain)
	if err != nil {
		return nil, err
	}

	return d.tenants.Unban(ctx, tenant.ID)
}
