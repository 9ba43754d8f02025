package profile

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// Environment variables consulted by Resolve.
const (
	EnvAPIURL = "FORMCTL_API_URL"
	EnvToken  = "FORMCTL_TOKEN"
)

type Resolved struct {
	APIURL  string
	Token   string
	Config  string
	Profile string
}

// Remote reports whether commands should talk to an API server.
func (r Resolved) Remote() bool { return r.APIURL != "" }

// Resolve merges flags, environment and the active profile, in that order
// of precedence. The root command must define the api-url, token, config
// and profile persistent flags.
func Resolve(cmd *cobra.Command) (Resolved, error) {
	flags := cmd.Root().PersistentFlags()
	flagURL, _ := flags.GetString("api-url")
	flagToken, _ := flags.GetString("token")
	flagConfig, _ := flags.GetString("config")

	cfg, err := Load()
	if err != nil {
		return Resolved{}, err
	}
	prof := cfg.Active
	if p, _ := flags.GetString("profile"); p != "" {
		prof = p
	}
	cp := cfg.Profiles[prof]

	// An explicit local config disables the profile's remote endpoint.
	url := firstNonEmpty(flagURL, os.Getenv(EnvAPIURL))
	if url == "" && flagConfig == "" {
		url = cp.APIURL
	}
	return Resolved{
		APIURL:  url,
		Token:   firstNonEmpty(flagToken, os.Getenv(EnvToken), cp.Token),
		Config:  firstNonEmpty(flagConfig, cp.Config),
		Profile: prof,
	}, nil
}

func firstNonEmpty(ss ...string) string {
	for _, s := range ss {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}
