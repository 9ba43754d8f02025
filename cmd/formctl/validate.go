package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/faciam-dev/formfields/internal/config"
	"github.com/faciam-dev/formfields/internal/fieldset"
	"github.com/faciam-dev/formfields/internal/users"
)

func newValidateCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a field-set file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return errors.New("--file is required")
			}
			data, err := os.ReadFile(filepath.Clean(file)) // #nosec G304 -- file path cleaned
			if err != nil {
				return err
			}
			f, err := config.Parse(data)
			if err != nil {
				return err
			}
			// The seed stands in for the registry so no database is needed.
			reg, err := users.SeedMemory(fieldset.SeedUsers(f)...)
			if err != nil {
				return err
			}
			c, err := fieldset.Build(f, reg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok (%d fields)\n", len(c.Names()))
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "fields.yaml", "input file")
	return cmd
}
