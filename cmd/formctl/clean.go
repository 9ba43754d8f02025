package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/faciam-dev/formfields/cmd/formctl/output"
	"github.com/faciam-dev/formfields/pkg/formfield"
)

type cleanResult struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

func (r cleanResult) Header() []string { return []string{"Field", "Value"} }

func (r cleanResult) Rows() [][]string {
	switch v := r.Value.(type) {
	case []string:
		rows := make([][]string, len(v))
		for i, s := range v {
			rows[i] = []string{r.Field, s}
		}
		return rows
	default:
		return [][]string{{r.Field, fmt.Sprint(v)}}
	}
}

func newCleanCmd() *cobra.Command {
	var field, value string
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean a value with a configured field",
		Long:  "Clean a value with a configured field. Use --value - to read the value from stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if field == "" {
				return errors.New("--field is required")
			}
			if value == "-" {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				value = strings.TrimRight(string(b), "\r\n")
			}
			c, done, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer done()

			v, err := c.Clean(cmd.Context(), field, value)
			if ve, ok := formfield.AsValidation(err); ok {
				return fmt.Errorf("%s: %s", ve.Code, ve.Message)
			}
			if err != nil {
				return err
			}
			return output.Print(cmd.OutOrStdout(), outputFormat(cmd), cleanResult{Field: field, Value: v})
		},
	}
	cmd.Flags().StringVar(&field, "field", "", "field name")
	cmd.Flags().StringVar(&value, "value", "", "raw value")
	return cmd
}
