// Package cli defines the librarycms command tree.
package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const envFilePath = ".env"

// NewCommand returns the root command with every subcommand attached.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "librarycms",
		Short:         "Multi-tenant library content management backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if err := godotenv.Load(envFilePath); err != nil {
				cmd.PrintErrln("Warning: .env file not found, using environment variables")
			}
		},
	}

	cmd.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newBackupCommand(),
		newCreateUserCommand(),
	)
	return cmd
}
