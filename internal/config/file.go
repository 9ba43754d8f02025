package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/faciam-dev/formfields/pkg/formfield"
)

// File is the field set configuration, usually read from fields.yaml.
type File struct {
	Fields []FieldSpec `yaml:"fields" json:"fields"`
	Users  UsersSpec   `yaml:"users" json:"users"`
}

// FieldSpec declares one field. Which options apply depends on Type.
type FieldSpec struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`

	ExcludedDomains []string `yaml:"excluded_domains,omitempty" json:"excluded_domains,omitempty"`

	Pattern      string   `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Groups       []string `yaml:"groups,omitempty" json:"groups,omitempty"`
	ErrorMessage string   `yaml:"error_message,omitempty" json:"error_message,omitempty"`

	Concurrency int `yaml:"concurrency,omitempty" json:"concurrency,omitempty"`

	Label    string            `yaml:"label,omitempty" json:"label,omitempty"`
	HelpText string            `yaml:"help_text,omitempty" json:"help_text,omitempty"`
	Widget   string            `yaml:"widget,omitempty" json:"widget,omitempty"`
	Attrs    map[string]string `yaml:"attrs,omitempty" json:"attrs,omitempty"`
}

// UsersSpec configures the user registry behind registered_email_list fields.
type UsersSpec struct {
	DSN         string        `yaml:"dsn" json:"dsn"`
	Driver      string        `yaml:"driver,omitempty" json:"driver,omitempty"`
	TablePrefix string        `yaml:"table_prefix,omitempty" json:"table_prefix,omitempty"`
	Database    string        `yaml:"database,omitempty" json:"database,omitempty"`
	RedisURL    string        `yaml:"redis_url,omitempty" json:"redis_url,omitempty"`
	CacheTTL    time.Duration `yaml:"cache_ttl,omitempty" json:"cache_ttl,omitempty"`
	Seed        []SeedUser    `yaml:"seed,omitempty" json:"seed,omitempty"`
}

// SeedUser is a user of the in-memory registry used when no DSN is set.
type SeedUser struct {
	Username string `yaml:"username" json:"username"`
	Email    string `yaml:"email" json:"email"`
}

// Hints returns the presentation hints of the field.
func (s FieldSpec) Hints() formfield.Hints {
	h := formfield.Hints{}
	if s.Label != "" {
		h[formfield.HintLabel] = s.Label
	}
	if s.HelpText != "" {
		h[formfield.HintHelpText] = s.HelpText
	}
	if s.Widget != "" {
		h[formfield.HintWidget] = s.Widget
	}
	if len(s.Attrs) > 0 {
		h[formfield.HintAttrs] = s.Attrs
	}
	return h
}

// Parse decodes YAML (or JSON, which YAML accepts) into a File.
func Parse(b []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads and parses path, then applies environment overrides.
func Load(path string) (*File, error) {
	b, err := os.ReadFile(filepath.Clean(path)) // #nosec G304 -- path provided by operator
	if err != nil {
		return nil, err
	}
	f, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	f.ApplyEnv()
	return f, nil
}

// Validate checks every field declaration and reports all problems at once.
func (f *File) Validate() error {
	var errs []error
	seen := make(map[string]bool, len(f.Fields))
	for i, s := range f.Fields {
		if s.Name == "" {
			errs = append(errs, fmt.Errorf("fields[%d]: name is required", i))
		} else if seen[s.Name] {
			errs = append(errs, fmt.Errorf("fields[%d]: duplicate name %q", i, s.Name))
		}
		seen[s.Name] = true
		switch s.Type {
		case formfield.KindDomainExcludingEmail:
		case formfield.KindPatternExtraction:
			if s.Pattern == "" || len(s.Groups) == 0 || s.ErrorMessage == "" {
				errs = append(errs, fmt.Errorf("fields[%d] %s: pattern, groups and error_message are required", i, s.Name))
				continue
			}
			if _, err := formfield.NewPatternExtractionField(s.Pattern, s.Groups, s.ErrorMessage, nil); err != nil {
				errs = append(errs, fmt.Errorf("fields[%d] %s: %w", i, s.Name, err))
			}
		case formfield.KindRegisteredEmailList:
			if s.Concurrency < 0 {
				errs = append(errs, fmt.Errorf("fields[%d] %s: concurrency must not be negative", i, s.Name))
			}
		default:
			errs = append(errs, fmt.Errorf("fields[%d] %s: unknown type %q", i, s.Name, s.Type))
		}
	}
	for i, u := range f.Users.Seed {
		if u.Username == "" || strings.TrimSpace(u.Email) == "" {
			errs = append(errs, fmt.Errorf("users.seed[%d]: username and email are required", i))
		}
	}
	return errors.Join(errs...)
}
