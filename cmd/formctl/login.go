package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/faciam-dev/formfields/pkg/profile"
	"github.com/faciam-dev/formfields/sdk/client"
)

func newLoginCmd() *cobra.Command {
	var nonInteractive bool
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Save API endpoint and token into ~/.formctl/config.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := profile.Load()
			if err != nil {
				return err
			}
			flags := cmd.Root().PersistentFlags()
			prof, _ := flags.GetString("profile")
			if prof == "" {
				prof = profile.DefaultName
			}
			url, _ := flags.GetString("api-url")
			tok, _ := flags.GetString("token")
			if !nonInteractive {
				in := bufio.NewReader(cmd.InOrStdin())
				if url == "" {
					url = prompt(cmd.OutOrStdout(), in, "API URL", cfg.Profiles[prof].APIURL)
				}
				if tok == "" {
					tok = promptSecret(cmd.OutOrStdout(), "Token (optional)")
				}
			}
			if url == "" {
				return fmt.Errorf("api-url is required (provide the flag or use interactive mode)")
			}

			var opts []client.Option
			if tok != "" {
				opts = append(opts, client.WithToken(tok))
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if _, err := client.New(url, opts...).Fields(ctx); err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			cp := cfg.Profiles[prof]
			cp.Name = prof
			cp.APIURL = url
			cp.Token = tok
			cfg.Profiles[prof] = cp
			cfg.Active = prof
			if err := profile.Save(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in. Active profile: %s\n", prof)
			return nil
		},
	}
	cmd.Flags().BoolVar(&nonInteractive, "non-interactive", false, "Fail instead of prompting")
	return cmd
}

func prompt(w io.Writer, in *bufio.Reader, label, def string) string {
	fmt.Fprintf(w, "%s [%s]: ", label, def)
	s, err := in.ReadString('\n')
	if err != nil && s == "" {
		return def
	}
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

func promptSecret(w io.Writer, label string) string {
	fd := int(syscall.Stdin)
	if !term.IsTerminal(fd) {
		return ""
	}
	fmt.Fprintf(w, "%s: ", label)
	b, _ := term.ReadPassword(fd)
	fmt.Fprintln(w)
	return strings.TrimSpace(string(b))
}
