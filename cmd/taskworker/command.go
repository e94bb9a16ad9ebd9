package taskworker

import (
	"github.com/openkcm/common-sdk/pkg/commoncfg"
	"github.com/openkcm/common-sdk/pkg/logger"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/portfoliopro/folio/internal/async"
	"github.com/portfoliopro/folio/internal/config"
	"github.com/portfoliopro/folio/internal/log"
)

func Cmd(buildInfo string) *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "task-worker",
		Short: "Folio Task Worker",
		Long:  "Folio Task Worker processes queued broadcast, email delivery and cache warming tasks.",
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

			worker, err := async.New(cfg)
			if err != nil {
				return oops.In("main").Wrapf(err, "failed to create the worker")
			}

			// RunWorker blocks until the process receives a stop signal.
			err = worker.RunWorker(ctx)
			if err != nil {
				return oops.In("main").Wrapf(err, "failed to start the worker")
			}

			err = worker.Shutdown(ctx)
			if err != nil {
				return oops.In("main").Wrapf(err, "%s", async.ErrClientShutdown.Error())
			}

			log.Info(ctx, "shutting down worker")

			return nil
		},
	}

	return cmd
}
