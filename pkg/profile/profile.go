// Package profile stores formctl connection profiles in
// ~/.formctl/config.json.
package profile

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

const DefaultName = "default"

type Profile struct {
	Name   string `json:"name"`
	APIURL string `json:"apiUrl"`
	Token  string `json:"token,omitempty"`
	// Config is the field-set file used when no API URL is set.
	Config string `json:"config,omitempty"`
}

type File struct {
	Active   string             `json:"active"`
	Profiles map[string]Profile `json:"profiles"`
	Version  int                `json:"version"`
}

func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".formctl")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func empty() *File {
	return &File{Active: DefaultName, Profiles: map[string]Profile{}, Version: 1}
}

func Load() (*File, error) {
	p, err := Path()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p) // #nosec G304 -- path is under the user's home
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return empty(), nil
		}
		return nil, err
	}
	f := empty()
	if err := json.Unmarshal(b, f); err != nil {
		return nil, err
	}
	if f.Profiles == nil {
		f.Profiles = map[string]Profile{}
	}
	if f.Active == "" {
		f.Active = DefaultName
	}
	return f, nil
}

// Save writes f atomically with owner-only permissions.
func Save(f *File) error {
	p, err := Path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}
