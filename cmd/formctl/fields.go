package main

import (
	"github.com/spf13/cobra"

	"github.com/faciam-dev/formfields/cmd/formctl/output"
	"github.com/faciam-dev/formfields/sdk/client"
)

type fieldList []client.Field

func (l fieldList) Header() []string { return []string{"Name", "Kind", "Label", "Widget"} }

func (l fieldList) Rows() [][]string {
	rows := make([][]string, len(l))
	for i, f := range l {
		rows[i] = []string{f.Name, f.Kind, f.Hints.Label(), f.Hints.Widget()}
	}
	return rows
}

func newFieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List configured fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, done, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer done()
			fs, err := c.Fields(cmd.Context())
			if err != nil {
				return err
			}
			return output.Print(cmd.OutOrStdout(), outputFormat(cmd), fieldList(fs))
		},
	}
}
