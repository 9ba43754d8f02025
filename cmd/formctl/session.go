package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/faciam-dev/formfields/internal/fieldset"
	"github.com/faciam-dev/formfields/pkg/profile"
	"github.com/faciam-dev/formfields/sdk/client"
)

// newClient returns a remote client when an API URL resolves and a local
// one over the --config field-set otherwise. The returned func releases it.
func newClient(cmd *cobra.Command) (client.Client, func(), error) {
	r, err := profile.Resolve(cmd)
	if err != nil {
		return nil, nil, err
	}
	if r.Remote() {
		var opts []client.Option
		if r.Token != "" {
			opts = append(opts, client.WithToken(r.Token))
		}
		return client.New(r.APIURL, opts...), func() {}, nil
	}
	if r.Config == "" {
		return nil, nil, errors.New("--api-url or --config is required")
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	svc, closeFn, err := fieldset.OpenService(ctx, r.Config, nil)
	if err != nil {
		return nil, nil, err
	}
	return client.NewLocalService(svc), func() { _ = closeFn(context.Background()) }, nil
}

func outputFormat(cmd *cobra.Command) string {
	f, _ := cmd.Root().PersistentFlags().GetString("output")
	return f
}
