package users

import (
	"context"
	"errors"
	"testing"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(User{Username: "test", Email: "test@gmail.com"})
	if ok, _ := m.ExistsByEmail(ctx, "test@gmail.com"); !ok {
		t.Fatalf("seeded user not found")
	}
	if ok, _ := m.ExistsByEmail(ctx, "info@gmail.com"); ok {
		t.Fatalf("unexpected user")
	}
	id, err := m.Create(ctx, User{Username: "ann", Email: "ann@corp.com"})
	if err != nil || id != 2 {
		t.Fatalf("create = %d, %v", id, err)
	}
	us, _ := m.List(ctx)
	if len(us) != 2 || us[0].Email != "test@gmail.com" || us[1].Email != "ann@corp.com" {
		t.Fatalf("list = %#v", us)
	}
	if err := m.Delete(ctx, "ann@corp.com"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := m.Delete(ctx, "ann@corp.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if _, err := m.Create(ctx, User{Email: "x@corp.com"}); err == nil {
		t.Fatalf("expected error for missing username")
	}
}

func TestHashPassword(t *testing.T) {
	h, err := HashPassword("", 0)
	if err != nil || h != "" {
		t.Fatalf("empty password = %q, %v", h, err)
	}
	h, err = HashPassword("secret", 4)
	if err != nil || h == "" || h == "secret" {
		t.Fatalf("hash = %q, %v", h, err)
	}
}
