package main

import (
	"github.com/spf13/cobra"

	usercmd "github.com/faciam-dev/formfields/cmd/formctl/user"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "user", Short: "Manage registered users"}
	cmd.AddCommand(usercmd.NewCreateCmd())
	cmd.AddCommand(usercmd.NewListCmd())
	cmd.AddCommand(usercmd.NewDeleteCmd())
	cmd.AddCommand(usercmd.NewMigrateCmd())
	return cmd
}
