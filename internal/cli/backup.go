package cli

import (
	"encoding/json"

	"library-cms/internal/app"
	"library-cms/internal/config"
	"library-cms/pkg/logger"

	"github.com/spf13/cobra"
)

func newBackupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Write a full data backup to the asset bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(cfg.App.LogLevel)

			a, err := app.Build(cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			manifest, err := a.Backups.Run(cmd.Context())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(manifest)
		},
	}
}
