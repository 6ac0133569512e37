package cli

import (
	"library-cms/internal/app"
	"library-cms/internal/config"
	"library-cms/pkg/logger"

	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(cfg.App.LogLevel)
			log.Info().Msg("configuration loaded")

			a, err := app.Build(cfg, log)
			if err != nil {
				return err
			}
			defer func() {
				if err := a.Close(); err != nil {
					log.Error().Err(err).Msg("failed to release resources")
				}
			}()
			return a.Run(cmd.Context())
		},
	}
}
