package usercmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	dbcmd "github.com/faciam-dev/formfields/cmd/formctl/db"
	"github.com/faciam-dev/formfields/internal/users"
)

// NewDeleteCmd creates the user delete subcommand.
func NewDeleteCmd() *cobra.Command {
	var flags dbcmd.DBFlags
	var email string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete user logically",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return errors.New("--email is required")
			}
			st, done, err := openStore(cmd, flags)
			if err != nil {
				return err
			}
			defer done()
			if err := st.Delete(cmd.Context(), email); err != nil {
				if errors.Is(err, users.ErrNotFound) {
					return fmt.Errorf("%s: %w", email, err)
				}
				return err
			}
			if err := forgetCached(cmd, flags, st, email); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: cache entry not removed: %v\n", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", email)
			return nil
		},
	}
	flags.AddFlags(cmd)
	cmd.Flags().StringVar(&email, "email", "", "email of the user")
	cobra.CheckErr(cmd.MarkFlagRequired("email"))
	return cmd
}

// forgetCached evicts email from the lookup cache so the deletion takes
// effect before the cache TTL runs out.
func forgetCached(cmd *cobra.Command, flags dbcmd.DBFlags, st users.Store, email string) error {
	if flags.RedisURL == "" {
		return nil
	}
	lookup, err := users.NewCachedLookup(st, flags.RedisURL, 0, nil)
	if err != nil {
		return err
	}
	cl, ok := lookup.(*users.CachedLookup)
	if !ok {
		return nil
	}
	defer cl.Client.Close()
	return cl.Forget(cmd.Context(), email)
}
