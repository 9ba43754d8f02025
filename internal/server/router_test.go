package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/faciam-dev/formfields/internal/config"
	"github.com/faciam-dev/formfields/internal/fieldset"
	"github.com/faciam-dev/formfields/internal/users"
)

const fieldsYAML = `
fields:
  - name: work_email
    type: domain_excluding_email
    excluded_domains: [gmail, yahoo]
  - name: invitees
    type: registered_email_list
`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	f, err := config.Parse([]byte(fieldsYAML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	reg := users.NewMemory(users.User{Username: "test", Email: "test@gmail.com"})
	cat, err := fieldset.Build(f, reg)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	api := New(fieldset.NewService(fieldset.Static(cat), nil))
	srv := httptest.NewServer(api.Adapter())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp, out
}

func TestCleanEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, out := post(t, srv.URL+"/v1/fields/work_email/clean", `{"value":"john@company.com"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", resp.StatusCode, out)
	}
	if out["value"] != "john@company.com" || out["field"] != "work_email" {
		t.Fatalf("unexpected body %v", out)
	}

	resp, out = post(t, srv.URL+"/v1/fields/invitees/clean", `{"value":"test@gmail.com, nobody@example.com"}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	if out["code"] != "user_not_found" {
		t.Fatalf("expected user_not_found, got %v", out)
	}
	if want := "we haven't found a user for the following email(s): 'nobody@example.com'"; out["detail"] != want {
		t.Fatalf("unexpected detail %v", out["detail"])
	}

	resp, _ = post(t, srv.URL+"/v1/fields/missing/clean", `{"value":"x"}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestListAndHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/v1/fields")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	var out struct {
		Fields []struct {
			Name string `json:"name"`
			Kind string `json:"kind"`
		} `json:"fields"`
		Total int `json:"total"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Total != 2 || out.Fields[0].Name != "invitees" || out.Fields[1].Kind != "domain_excluding_email" {
		t.Fatalf("unexpected listing %+v", out)
	}

	for _, p := range []string{"/healthz", "/metrics"} {
		resp, err := http.Get(srv.URL + p)
		if err != nil {
			t.Fatalf("get %s: %v", p, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", p, resp.StatusCode)
		}
	}
}

func TestCORSOptions(t *testing.T) {
	got := corsOptions("http://a.example, http://b.example ,")
	if len(got.AllowedOrigins) != 2 || got.AllowedOrigins[0] != "http://a.example" || got.AllowedOrigins[1] != "http://b.example" {
		t.Fatalf("unexpected origins %q", got.AllowedOrigins)
	}
}

func TestCORSPreflight(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "http://app.example")
	srv := newTestServer(t)
	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/v1/fields", nil)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	req.Header.Set("Origin", "http://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://app.example" {
		t.Fatalf("unexpected allow origin %q", got)
	}
}
