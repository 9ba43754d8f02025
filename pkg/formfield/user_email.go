package formfield

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/sync/errgroup"
)

// UserLookup reports whether a registered user owns email. Implementations
// return a non-nil error only for infrastructure failures; an unknown
// address is (false, nil).
type UserLookup interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// LookupFunc adapts a function to UserLookup.
type LookupFunc func(ctx context.Context, email string) (bool, error)

func (fn LookupFunc) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return fn(ctx, email)
}

// RegisteredEmailListField accepts a comma separated list of addresses that
// must all belong to registered users.
type RegisteredEmailListField struct {
	baseline    *EmailBaseline
	users       UserLookup
	concurrency int
	hints       Hints
}

// RegisteredEmailListOption configures a RegisteredEmailListField.
type RegisteredEmailListOption func(*RegisteredEmailListField)

// WithConcurrency bounds the number of registry lookups in flight for one
// Clean call. Values below 1 mean sequential lookups.
func WithConcurrency(n int) RegisteredEmailListOption {
	return func(f *RegisteredEmailListField) {
		if n < 1 {
			n = 1
		}
		f.concurrency = n
	}
}

// WithHints attaches presentation hints.
func WithHints(h Hints) RegisteredEmailListOption {
	return func(f *RegisteredEmailListField) { f.hints = h.clone() }
}

// NewRegisteredEmailListField builds the field around users.
func NewRegisteredEmailListField(users UserLookup, opts ...RegisteredEmailListOption) *RegisteredEmailListField {
	f := &RegisteredEmailListField{
		baseline:    NewEmailBaseline(),
		users:       users,
		concurrency: 1,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Clean normalizes raw into a list of addresses, checks the syntax of each
// (stopping at the first malformed one), requires at least one address and
// finally reports every address without a registered user in one error.
func (f *RegisteredEmailListField) Clean(ctx context.Context, raw string) ([]string, error) {
	emails := SplitEmails(raw)
	for _, e := range emails {
		if err := f.baseline.CheckSyntax(e); err != nil {
			return nil, err
		}
	}
	if len(emails) == 0 {
		return nil, errRequired()
	}
	missing, err := f.findMissing(ctx, emails)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, errUsersNotFound(missing)
	}
	return emails, nil
}

func (f *RegisteredEmailListField) findMissing(ctx context.Context, emails []string) ([]string, error) {
	found := make([]bool, len(emails))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)
	for i, e := range emails {
		g.Go(func() error {
			ok, err := f.users.ExistsByEmail(gctx, e)
			if err != nil {
				return fmt.Errorf("lookup user %q: %w", e, err)
			}
			found[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var missing []string
	for i, ok := range found {
		if !ok {
			missing = append(missing, emails[i])
		}
	}
	return missing, nil
}

func (f *RegisteredEmailListField) Hints() Hints { return f.hints.clone() }

// SplitEmails trims raw, drops all whitespace, splits on ',' and discards
// empty entries. The result is nil when nothing is left.
func SplitEmails(raw string) []string {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	var out []string
	for _, p := range strings.Split(compact, ",") {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func joinEmails(emails []string) string {
	return strings.Join(emails, ", ")
}
