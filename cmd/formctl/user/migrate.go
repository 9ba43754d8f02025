package usercmd

import (
	"fmt"

	"github.com/spf13/cobra"

	dbcmd "github.com/faciam-dev/formfields/cmd/formctl/db"
	"github.com/faciam-dev/formfields/internal/users"
)

// NewMigrateCmd creates the user migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	var flags dbcmd.DBFlags
	var printOnly bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the users table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if printOnly {
				driver := flags.Driver
				if driver == "" && flags.DSN != "" {
					d, err := users.DetectDriver(flags.DSN)
					if err != nil {
						return err
					}
					driver = d
				}
				fmt.Fprintln(cmd.OutOrStdout(), users.Schema(driver, flags.TablePrefix))
				return nil
			}
			st, done, err := openStore(cmd, flags)
			if err != nil {
				return err
			}
			defer done()
			repo, ok := st.(*users.SQLRepo)
			if !ok {
				return fmt.Errorf("migrate needs a SQL database, got %T", st)
			}
			if err := repo.Migrate(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "users table ready")
			return nil
		},
	}
	flags.AddFlags(cmd)
	cmd.Flags().BoolVar(&printOnly, "print", false, "print the DDL instead of running it")
	return cmd
}
