package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/faciam-dev/formfields/cmd/formctl/output"
	"github.com/faciam-dev/formfields/pkg/profile"
)

type profileList struct {
	Active   string            `json:"active"`
	Profiles []profile.Profile `json:"profiles"`
}

func (l profileList) Header() []string { return []string{"", "Name", "API URL", "Config"} }

func (l profileList) Rows() [][]string {
	rows := make([][]string, len(l.Profiles))
	for i, p := range l.Profiles {
		mark := ""
		if p.Name == l.Active {
			mark = "*"
		}
		rows[i] = []string{mark, p.Name, p.APIURL, p.Config}
	}
	return rows
}

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "profile", Short: "Manage formctl profiles"}
	cmd.AddCommand(&cobra.Command{
		Use:   "use <profile>",
		Short: "Set active profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := profile.Load()
			if err != nil {
				return err
			}
			if _, ok := cfg.Profiles[args[0]]; !ok {
				return fmt.Errorf("profile %q not found", args[0])
			}
			cfg.Active = args[0]
			if err := profile.Save(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Switched to profile %q\n", args[0])
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set-config <file>",
		Short: "Use a local field-set file in the active profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := profile.Load()
			if err != nil {
				return err
			}
			cp := cfg.Profiles[cfg.Active]
			cp.Name = cfg.Active
			cp.Config = args[0]
			cfg.Profiles[cfg.Active] = cp
			return profile.Save(cfg)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := profile.Load()
			if err != nil {
				return err
			}
			l := profileList{Active: cfg.Active}
			for _, p := range cfg.Profiles {
				p.Token = ""
				l.Profiles = append(l.Profiles, p)
			}
			sort.Slice(l.Profiles, func(i, j int) bool { return l.Profiles[i].Name < l.Profiles[j].Name })
			return output.Print(cmd.OutOrStdout(), outputFormat(cmd), l)
		},
	})
	return cmd
}
