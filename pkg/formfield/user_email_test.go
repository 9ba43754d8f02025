package formfield

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type fakeUsers struct {
	emails map[string]bool
	err    error
	calls  atomic.Int32
}

func newFakeUsers(emails ...string) *fakeUsers {
	m := make(map[string]bool, len(emails))
	for _, e := range emails {
		m[e] = true
	}
	return &fakeUsers{emails: m}
}

func (f *fakeUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	f.calls.Add(1)
	if f.err != nil {
		return false, f.err
	}
	return f.emails[email], nil
}

func TestRegisteredEmailListField(t *testing.T) {
	f := NewRegisteredEmailListField(newFakeUsers("test@gmail.com", "ann@corp.com"))
	ctx := context.Background()

	tests := []struct {
		name string
		in   string
		want []string
		code string
	}{
		{name: "registered", in: "test@gmail.com", want: []string{"test@gmail.com"}},
		{name: "not found", in: "info@gmail.com", code: CodeUserNotFound},
		{name: "malformed", in: "info@", code: CodeInvalidEmail},
		{name: "empty", in: "", code: CodeRequired},
		{name: "only commas", in: " , ,, ", code: CodeRequired},
		{name: "list with spaces", in: " test@gmail.com , ann@corp.com,", want: []string{"test@gmail.com", "ann@corp.com"}},
		{name: "inner whitespace", in: "test@ gmail.com,\tann@corp.com\n", want: []string{"test@gmail.com", "ann@corp.com"}},
		{name: "duplicates kept", in: "ann@corp.com,ann@corp.com", want: []string{"ann@corp.com", "ann@corp.com"}},
		{name: "malformed beats missing", in: "nobody@corp.com,bad@", code: CodeInvalidEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.Clean(ctx, tt.in)
			if tt.code != "" {
				ve, ok := AsValidation(err)
				if !ok {
					t.Fatalf("expected validation error, got %v", err)
				}
				if ve.Code != tt.code {
					t.Fatalf("code = %s, want %s", ve.Code, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatalf("clean: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("diff (-want +got)\n%s", diff)
			}
		})
	}
}

func TestRegisteredEmailListFieldAggregatesInOrder(t *testing.T) {
	users := newFakeUsers("ann@corp.com")
	for _, n := range []int{1, 4} {
		f := NewRegisteredEmailListField(users, WithConcurrency(n))
		_, err := f.Clean(context.Background(), "zed@corp.com, ann@corp.com, bob@corp.com, amy@corp.com")
		ve, ok := AsValidation(err)
		if !ok {
			t.Fatalf("concurrency %d: expected validation error, got %v", n, err)
		}
		want := "we haven't found a user for the following email(s): 'zed@corp.com, bob@corp.com, amy@corp.com'"
		if ve.Message != want {
			t.Fatalf("concurrency %d: message = %q", n, ve.Message)
		}
		if diff := cmp.Diff([]string{"zed@corp.com", "bob@corp.com", "amy@corp.com"}, ve.Params["emails"]); diff != "" {
			t.Fatalf("params diff (-want +got)\n%s", diff)
		}
	}
}

func TestRegisteredEmailListFieldFailsFastOnSyntax(t *testing.T) {
	users := newFakeUsers()
	f := NewRegisteredEmailListField(users)
	if _, err := f.Clean(context.Background(), "a@corp.com,broken,b@"); err == nil {
		t.Fatalf("expected error")
	}
	if users.calls.Load() != 0 {
		t.Fatalf("registry must not be queried before syntax passes, got %d calls", users.calls.Load())
	}
}

func TestRegisteredEmailListFieldLookupError(t *testing.T) {
	boom := errors.New("connection refused")
	users := newFakeUsers()
	users.err = boom
	f := NewRegisteredEmailListField(users)
	_, err := f.Clean(context.Background(), "a@corp.com")
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
	if _, ok := AsValidation(err); ok {
		t.Fatalf("infrastructure failures are not validation errors")
	}
}

func TestRegisteredEmailListFieldIdempotent(t *testing.T) {
	f := NewRegisteredEmailListField(newFakeUsers("a@corp.com", "b@corp.com"))
	first, err := f.Clean(context.Background(), " a@corp.com ,b@corp.com, ")
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	second, err := f.Clean(context.Background(), strings.Join(first, ","))
	if err != nil {
		t.Fatalf("re-clean: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("diff (-first +second)\n%s", diff)
	}
}

func TestRegisteredEmailListFieldBoundedConcurrency(t *testing.T) {
	var (
		mu       sync.Mutex
		inFlight int
		peak     int
	)
	lookup := LookupFunc(func(ctx context.Context, email string) (bool, error) {
		mu.Lock()
		inFlight++
		if inFlight > peak {
			peak = inFlight
		}
		mu.Unlock()
		time.Sleep(5 * time.Millisecond)
		mu.Lock()
		inFlight--
		mu.Unlock()
		return true, nil
	})
	f := NewRegisteredEmailListField(lookup, WithConcurrency(2))
	if _, err := f.Clean(context.Background(), "a@x.com,b@x.com,c@x.com,d@x.com,e@x.com"); err != nil {
		t.Fatalf("clean: %v", err)
	}
	if peak > 2 {
		t.Fatalf("peak lookups in flight = %d, want <= 2", peak)
	}
}

func TestSplitEmails(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "", want: nil},
		{in: " , ", want: nil},
		{in: "a@x.com", want: []string{"a@x.com"}},
		{in: "a@x.com,,b@x.com,", want: []string{"a@x.com", "b@x.com"}},
		{in: " a @x.com , b@x.com ", want: []string{"a@x.com", "b@x.com"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, SplitEmails(tt.in)); diff != "" {
			t.Fatalf("%q diff (-want +got)\n%s", tt.in, diff)
		}
	}
}
