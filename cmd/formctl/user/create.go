package usercmd

import (
	"errors"
	"fmt"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	dbcmd "github.com/faciam-dev/formfields/cmd/formctl/db"
	"github.com/faciam-dev/formfields/internal/users"
	"github.com/faciam-dev/formfields/pkg/formfield"
)

const bcryptCost = 12

// NewCreateCmd creates the user create subcommand.
func NewCreateCmd() *cobra.Command {
	var flags dbcmd.DBFlags
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || email == "" {
				return errors.New("--username and --email are required")
			}
			if err := formfield.NewEmailBaseline().CheckSyntax(email); err != nil {
				return fmt.Errorf("%s: %w", email, err)
			}
			if password == "-" {
				fmt.Fprint(cmd.OutOrStdout(), "Password: ")
				b, err := term.ReadPassword(int(syscall.Stdin))
				fmt.Fprintln(cmd.OutOrStdout())
				if err != nil {
					return err
				}
				password = strings.TrimSpace(string(b))
			}
			hash, err := users.HashPassword(password, bcryptCost)
			if err != nil {
				return err
			}

			st, done, err := openStore(cmd, flags)
			if err != nil {
				return err
			}
			defer done()
			id, err := st.Create(cmd.Context(), users.User{Username: username, Email: email, PasswordHash: hash})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %d\n", id)
			return nil
		},
	}
	flags.AddFlags(cmd)
	cmd.Flags().StringVar(&username, "username", "", "username")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password, - to prompt")
	cobra.CheckErr(cmd.MarkFlagRequired("username"))
	cobra.CheckErr(cmd.MarkFlagRequired("email"))
	return cmd
}
