package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// newGenDocsCmd writes reference pages for every formctl command into a
// directory, as markdown for the docs site or as man pages for packaging.
func newGenDocsCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:    "gen-docs [dir]",
		Short:  "Write formctl reference pages",
		Hidden: true,
		Args:   cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := "docs/formctl"
			if len(args) == 1 {
				out = args[0]
			}
			root := cmd.Root()
			root.DisableAutoGenTag = true
			gen := map[string]func() error{
				"markdown": func() error { return doc.GenMarkdownTree(root, out) },
				"man": func() error {
					return doc.GenManTree(root, &doc.GenManHeader{Title: "FORMCTL", Section: "1", Source: "formfields"}, out)
				},
				"yaml": func() error { return doc.GenYamlTree(root, out) },
			}[kind]
			if gen == nil {
				return fmt.Errorf("unknown kind %q (markdown, man or yaml)", kind)
			}
			if err := os.MkdirAll(out, 0o750); err != nil {
				return err
			}
			if err := gen(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s docs to %s\n", kind, out)
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "markdown", "page format: markdown, man or yaml")
	return cmd
}
