package cli

import (
	"fmt"

	"library-cms/internal/config"
	"library-cms/internal/repository/postgres"

	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		Long: `
Applies the embedded schema to the configured database. Every statement
is idempotent, so the command is safe to run on each deploy.
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if printOnly {
				_, err := fmt.Fprint(cmd.OutOrStdout(), postgres.Schema())
				return err
			}
			dbCfg, err := config.LoadDatabase()
			if err != nil {
				return err
			}
			if err := postgres.Migrate(cmd.Context(), dbCfg.DSN()); err != nil {
				return err
			}
			cmd.Println("schema applied")
			return nil
		},
	}
	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the schema and exit")
	return cmd
}
