package formfield

import (
	"context"
	"regexp"
	"strings"
)

var domainToken = regexp.MustCompile(`^\w+`)

// DomainExcludingEmailField accepts a single email address unless the word
// following the last '@' is one of the excluded providers.
type DomainExcludingEmailField struct {
	baseline *EmailBaseline
	excluded map[string]struct{}
	hints    Hints
}

// NewDomainExcludingEmailField builds the field. Matching against excluded
// is case-sensitive.
func NewDomainExcludingEmailField(excluded []string, hints Hints) *DomainExcludingEmailField {
	set := make(map[string]struct{}, len(excluded))
	for _, d := range excluded {
		set[d] = struct{}{}
	}
	return &DomainExcludingEmailField{
		baseline: NewEmailBaseline(),
		excluded: set,
		hints:    hints.clone(),
	}
}

// Clean runs the email baseline first so malformed input never reaches the
// domain check.
func (f *DomainExcludingEmailField) Clean(_ context.Context, raw string) (string, error) {
	v, err := f.baseline.Clean(raw)
	if err != nil {
		return "", err
	}
	if err := f.checkDomain(v); err != nil {
		return "", err
	}
	return v, nil
}

func (f *DomainExcludingEmailField) checkDomain(v string) error {
	// a quoted local part may itself contain '@'
	i := strings.LastIndexByte(v, '@')
	if i < 0 {
		return errInvalidEmail()
	}
	token := domainToken.FindString(v[i+1:])
	if token == "" {
		return errInvalidEmail()
	}
	if _, ok := f.excluded[token]; ok {
		return errExcludedDomain(token)
	}
	return nil
}

// Excluded returns the excluded domain tokens in no particular order.
func (f *DomainExcludingEmailField) Excluded() []string {
	out := make([]string, 0, len(f.excluded))
	for d := range f.excluded {
		out = append(out, d)
	}
	return out
}

func (f *DomainExcludingEmailField) Hints() Hints { return f.hints.clone() }
