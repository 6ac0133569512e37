package cli

import (
	"fmt"
	"strings"

	"library-cms/internal/config"
	"library-cms/internal/domain/user"
	"library-cms/internal/policy"
	"library-cms/internal/repository/postgres"
	"library-cms/internal/service"
	"library-cms/pkg/logger"
	"library-cms/pkg/password"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type createUserFlags struct {
	email    string
	password string
	role     string
	library  string
}

// parse checks flag shape before any connection is opened.
func (f *createUserFlags) parse() (user.Role, uuid.UUID, error) {
	if strings.TrimSpace(f.email) == "" || f.password == "" {
		return "", uuid.Nil, fmt.Errorf("--email and --password are required")
	}
	role, err := policy.Default().ParseRole(f.role)
	if err != nil {
		return "", uuid.Nil, err
	}
	var libraryID uuid.UUID
	if f.library != "" {
		id, err := uuid.Parse(f.library)
		if err != nil {
			return "", uuid.Nil, fmt.Errorf("invalid --library: %w", err)
		}
		libraryID = id
	}
	if role == user.RoleLibraryAdmin && libraryID == uuid.Nil {
		return "", uuid.Nil, fmt.Errorf("--library is required for %s", user.RoleLibraryAdmin)
	}
	return role, libraryID, nil
}

func newCreateUserCommand() *cobra.Command {
	var flags createUserFlags

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Provision an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			role, libraryID, err := flags.parse()
			if err != nil {
				return err
			}
			dbCfg, err := config.LoadDatabase()
			if err != nil {
				return err
			}
			db, err := postgres.New(dbCfg)
			if err != nil {
				return err
			}
			defer db.Close()

			svc := service.NewAuthService(
				postgres.NewUserRepository(db),
				password.NewHasher(password.DefaultCost),
				nil,
				service.Options{Logger: logger.NewWithWriter(cmd.ErrOrStderr(), "warn")},
			)
			u, err := svc.CreateUser(cmd.Context(), flags.email, flags.password, role, libraryID)
			if err != nil {
				return err
			}
			cmd.Printf("created %s %s (%s)\n", u.Role, u.Email, u.ID)
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&flags.email, "email", "", "Account email")
	fs.StringVar(&flags.password, "password", "", "Account password")
	fs.StringVar(&flags.role, "role", string(user.RoleLibraryAdmin), "One of user, library_admin, super_admin")
	fs.StringVar(&flags.library, "library", "", "Library ID for library_admin accounts")
	return cmd
}
