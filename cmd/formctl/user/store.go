package usercmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	dbcmd "github.com/faciam-dev/formfields/cmd/formctl/db"
	"github.com/faciam-dev/formfields/internal/users"
)

func openStore(cmd *cobra.Command, flags dbcmd.DBFlags) (users.Store, func(), error) {
	if flags.DSN == "" {
		return nil, nil, errors.New("--db is required")
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	st, closeFn, err := users.OpenStore(ctx, flags.Settings())
	if err != nil {
		return nil, nil, err
	}
	return st, func() { _ = closeFn(context.Background()) }, nil
}

func outputFormat(cmd *cobra.Command) string {
	f, _ := cmd.Root().PersistentFlags().GetString("output")
	return f
}
