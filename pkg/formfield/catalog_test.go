package formfield

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCatalogRegisterAndGet(t *testing.T) {
	c := NewCatalog()
	pro := NewDomainExcludingEmailField([]string{"gmail"}, Hints{HintLabel: "Email"})
	if err := c.Register(DomainExcludingEmail("work_email", pro)); err != nil {
		t.Fatalf("register: %v", err)
	}
	invitees := NewRegisteredEmailListField(newFakeUsers("a@corp.com"))
	if err := c.Register(RegisteredEmailList("invitees", invitees)); err != nil {
		t.Fatalf("register: %v", err)
	}
	err := c.Register(DomainExcludingEmail("work_email", pro))
	if !errors.Is(err, ErrFieldExists) {
		t.Fatalf("err = %v, want ErrFieldExists", err)
	}

	if diff := cmp.Diff([]string{"invitees", "work_email"}, c.Names()); diff != "" {
		t.Fatalf("names diff (-want +got)\n%s", diff)
	}

	f, ok := c.Get("work_email")
	if !ok {
		t.Fatalf("work_email not found")
	}
	if f.Kind != KindDomainExcludingEmail || f.Hints.Label() != "Email" {
		t.Fatalf("unexpected field %#v", f)
	}
	v, err := f.Clean(context.Background(), "me@corp.com")
	if err != nil || v != "me@corp.com" {
		t.Fatalf("clean = %v, %v", v, err)
	}
	if _, err := f.Clean(context.Background(), "me@gmail.com"); err == nil {
		t.Fatalf("expected excluded domain error")
	}

	g, _ := c.Get("invitees")
	v, err = g.Clean(context.Background(), "a@corp.com")
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if diff := cmp.Diff([]string{"a@corp.com"}, v); diff != "" {
		t.Fatalf("diff (-want +got)\n%s", diff)
	}
	if _, ok := c.Get("missing"); ok {
		t.Fatalf("unexpected field")
	}
}

func TestCatalogRegisterInvalid(t *testing.T) {
	c := NewCatalog()
	if err := c.Register(Field{Name: "x"}); err == nil {
		t.Fatalf("expected error for missing clean func")
	}
}

func TestCatalogPatternExtraction(t *testing.T) {
	c := NewCatalog()
	f := MustPatternExtractionField(`(?P<n>\d+)`, []string{"n"}, "digits please", nil)
	if err := c.Register(PatternExtraction("num", f)); err != nil {
		t.Fatalf("register: %v", err)
	}
	got, _ := c.Get("num")
	_, err := got.Clean(context.Background(), "abc")
	ve, ok := AsValidation(err)
	if !ok || ve.Message != "digits please" {
		t.Fatalf("err = %v", err)
	}
}
