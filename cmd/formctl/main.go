package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/faciam-dev/formfields/internal/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{Use: "formctl", SilenceUsage: true}
	root.PersistentFlags().String("api-url", "", "FormFields API base URL")
	root.PersistentFlags().String("token", "", "Bearer token for the API")
	root.PersistentFlags().String("config", config.GetEnv(config.EnvConfig, ""), "field-set file for local mode")
	root.PersistentFlags().String("profile", "", "Profile name in config (overrides active)")
	root.PersistentFlags().String("output", "table", "Output format (table|json)")

	root.AddCommand(newCleanCmd())
	root.AddCommand(newFieldsCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newUserCmd())
	root.AddCommand(newLoginCmd())
	root.AddCommand(newProfileCmd())
	root.AddCommand(newGenDocsCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}
