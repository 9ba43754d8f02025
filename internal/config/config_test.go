package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/faciam-dev/formfields/pkg/formfield"
)

func exampleFile(t *testing.T) string {
	t.Helper()
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "configs", "fields.example.yaml")
}

func TestLoadExample(t *testing.T) {
	f, err := Load(exampleFile(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(f.Fields) != 3 {
		t.Fatalf("fields = %d", len(f.Fields))
	}
	slides := f.Fields[1]
	if diff := cmp.Diff([]string{"id", "title"}, slides.Groups); diff != "" {
		t.Fatalf("groups diff (-want +got)\n%s", diff)
	}
	h := slides.Hints()
	if h.Label() != "Html code" || h.Widget() != "textarea" {
		t.Fatalf("hints = %#v", h)
	}
	if f.Users.CacheTTL != 5*time.Minute {
		t.Fatalf("cache ttl = %v", f.Users.CacheTTL)
	}
	if diff := cmp.Diff([]SeedUser{{Username: "test", Email: "test@gmail.com"}}, f.Users.Seed); diff != "" {
		t.Fatalf("seed diff (-want +got)\n%s", diff)
	}
}

func TestLoadAppliesEnv(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "fields.yaml")
	if err := os.WriteFile(p, []byte("users:\n  dsn: postgres://file/db\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv(EnvUsersDSN, "postgres://env/db")
	t.Setenv(EnvRedisURL, "redis://env:6379/0")
	f, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if f.Users.DSN != "postgres://env/db" || f.Users.RedisURL != "redis://env:6379/0" {
		t.Fatalf("users = %#v", f.Users)
	}
}

func TestParseJSON(t *testing.T) {
	f, err := Parse([]byte(`{"fields":[{"name":"e","type":"domain_excluding_email","excluded_domains":["gmail"]}]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff([]string{"gmail"}, f.Fields[0].ExcludedDomains); diff != "" {
		t.Fatalf("diff (-want +got)\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	f := &File{Fields: []FieldSpec{
		{Name: "", Type: formfield.KindDomainExcludingEmail},
		{Name: "a", Type: formfield.KindDomainExcludingEmail},
		{Name: "a", Type: formfield.KindRegisteredEmailList},
		{Name: "p", Type: formfield.KindPatternExtraction},
		{Name: "q", Type: formfield.KindPatternExtraction, Pattern: `(?P<x>\d+)`, Groups: []string{"y"}, ErrorMessage: "bad"},
		{Name: "r", Type: formfield.KindRegisteredEmailList, Concurrency: -1},
		{Name: "z", Type: "color_picker"},
	}, Users: UsersSpec{Seed: []SeedUser{{Email: "test@gmail.com"}}}}
	err := f.Validate()
	if err == nil {
		t.Fatalf("expected errors")
	}
	for _, want := range []string{
		"fields[0]: name is required",
		`duplicate name "a"`,
		"pattern, groups and error_message are required",
		"unknown capture group: y",
		"concurrency must not be negative",
		`unknown type "color_picker"`,
		"users.seed[0]: username and email are required",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q does not mention %q", err, want)
		}
	}
}

func TestConfigT(t *testing.T) {
	c := Config{}
	if got := c.T("users"); got != "ff_users" {
		t.Fatalf("T = %q", got)
	}
	c.TablePrefix = "app_"
	if got := c.T("users"); got != "app_users" {
		t.Fatalf("T = %q", got)
	}
}

func TestDialectFromDriver(t *testing.T) {
	if _, ok := DialectFromDriver("postgres"); !ok {
		t.Fatalf("postgres should have a dialect")
	}
	if _, ok := DialectFromDriver("sqlite3"); ok {
		t.Fatalf("sqlite3 has no dialect")
	}
}
