package dbmigrator

import (
	"github.com/openkcm/common-sdk/pkg/commoncfg"
	"github.com/openkcm/common-sdk/pkg/logger"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/portfoliopro/folio/internal/config"
	"github.com/portfoliopro/folio/internal/db"
)

func Cmd(buildInfo string) *cobra.Command {
	var (
		version  int64
		rollback bool
	)

	var cmd = &cobra.Command{
		Use:   "db-migrator",
		Short: "Folio DB Migrator",
		Long:  "Folio DB Migrator applies the goose schema migrations against the configured database.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.LoadConfig()
			if err != nil {
				return oops.In("main").Wrapf(err, "failed to load the config")
			}

			err = commoncfg.UpdateConfigVersion(&cfg.BaseConfig, buildInfo)
			if err != nil {
				return oops.In("main").
					Wrapf(err, "Failed to update the version configuration")
			}

			err = logger.InitAsDefault(cfg.Logger, cfg.Application)
			if err != nil {
				return oops.In("main").
					Wrapf(err, "Failed to initialise the logger")
			}

			m, err := db.NewMigrator(cfg)
			if err != nil {
				return oops.In("main").Wrapf(err, "failed to create the migrator")
			}

			if version != 0 {
				err = m.MigrateTo(ctx, version, rollback)
			} else {
				err = m.MigrateToLatest(ctx, rollback)
			}

			if err != nil {
				return oops.In("main").Wrapf(err, "migration failed")
			}

			return nil
		},
	}

	cmd.Flags().Int64Var(&version, "version", 0, "run migration until targeted version")
	cmd.Flags().BoolVar(&rollback, "rollback", false, "run down migrations")

	return cmd
}
