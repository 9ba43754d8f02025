package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/faciam-dev/formfields/internal/fieldset"
	"github.com/faciam-dev/formfields/internal/server"
	"github.com/faciam-dev/formfields/pkg/formfield"
)

func testService(t *testing.T) *fieldset.Service {
	t.Helper()
	c := formfield.NewCatalog()
	registered := formfield.LookupFunc(func(_ context.Context, e string) (bool, error) {
		return e == "test@gmail.com", nil
	})
	for _, f := range []formfield.Field{
		formfield.DomainExcludingEmail("work_email", formfield.NewDomainExcludingEmailField([]string{"gmail"}, nil)),
		formfield.RegisteredEmailList("invitees", formfield.NewRegisteredEmailListField(registered)),
	} {
		if err := c.Register(f); err != nil {
			t.Fatalf("register: %v", err)
		}
	}
	return fieldset.NewService(fieldset.Static(c), nil)
}

func clients(t *testing.T) map[string]Client {
	t.Helper()
	svc := testService(t)
	srv := httptest.NewServer(server.New(svc).Adapter())
	t.Cleanup(srv.Close)
	return map[string]Client{
		"http":  New(srv.URL+"/", WithToken("tok")),
		"local": NewLocalService(svc),
	}
}

func TestClientClean(t *testing.T) {
	for mode, c := range clients(t) {
		t.Run(mode, func(t *testing.T) {
			if c.Mode() != mode {
				t.Fatalf("expected mode %s, got %s", mode, c.Mode())
			}
			got, err := c.Clean(context.Background(), "work_email", "john@company.com")
			if err != nil {
				t.Fatalf("clean: %v", err)
			}
			if got != "john@company.com" {
				t.Fatalf("unexpected value %v", got)
			}
			got, err = c.Clean(context.Background(), "invitees", " test@gmail.com ,test@gmail.com")
			if err != nil {
				t.Fatalf("clean list: %v", err)
			}
			if diff := cmp.Diff([]string{"test@gmail.com", "test@gmail.com"}, got); diff != "" {
				t.Fatalf("list mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClientValidationError(t *testing.T) {
	for mode, c := range clients(t) {
		t.Run(mode, func(t *testing.T) {
			_, err := c.Clean(context.Background(), "invitees", "a@example.com,test@gmail.com,b@example.com")
			ve, ok := formfield.AsValidation(err)
			if !ok {
				t.Fatalf("expected validation error, got %v", err)
			}
			if ve.Code != formfield.CodeUserNotFound {
				t.Fatalf("unexpected code %s", ve.Code)
			}
			want := "we haven't found a user for the following email(s): 'a@example.com, b@example.com'"
			if ve.Message != want {
				t.Fatalf("unexpected message %q", ve.Message)
			}
		})
	}
}

func TestClientFields(t *testing.T) {
	for mode, c := range clients(t) {
		t.Run(mode, func(t *testing.T) {
			fs, err := c.Fields(context.Background())
			if err != nil {
				t.Fatalf("fields: %v", err)
			}
			want := []Field{
				{Name: "invitees", Kind: formfield.KindRegisteredEmailList},
				{Name: "work_email", Kind: formfield.KindDomainExcludingEmail},
			}
			if diff := cmp.Diff(want, fs); diff != "" {
				t.Fatalf("fields mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClientHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status":404,"title":"Not Found","detail":"unknown field: x"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Clean(context.Background(), "x", "v")
	if err == nil {
		t.Fatalf("expected error")
	}
	if _, ok := formfield.AsValidation(err); ok {
		t.Fatalf("404 must not be a validation error")
	}
	var ve *formfield.ValidationError
	if errors.As(err, &ve) {
		t.Fatalf("unexpected validation error %v", ve)
	}
}
