package formfield

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// ErrUnknownGroup is returned by NewPatternExtractionField when a requested
// group name does not occur in the pattern.
var ErrUnknownGroup = errors.New("unknown capture group")

// PatternExtractionField pulls named capture groups out of a pasted chunk of
// text, such as the embed code of a slideshow, ignoring whatever else was
// pasted around it.
type PatternExtractionField struct {
	baseline CharBaseline
	re       *regexp.Regexp
	groups   []string
	index    []int
	message  string
	hints    Hints
}

// NewPatternExtractionField compiles pattern and resolves groups against it.
// The match is anchored at the start of the input but does not need to
// consume all of it. message is returned for every input that does not have
// the expected shape.
func NewPatternExtractionField(pattern string, groups []string, message string, hints Hints) (*PatternExtractionField, error) {
	re, err := regexp.Compile(`\A(?:` + pattern + `)`)
	if err != nil {
		return nil, fmt.Errorf("compile pattern: %w", err)
	}
	index := make([]int, len(groups))
	for i, g := range groups {
		idx := re.SubexpIndex(g)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %s", ErrUnknownGroup, g)
		}
		index[i] = idx
	}
	return &PatternExtractionField{
		re:      re,
		groups:  append([]string(nil), groups...),
		index:   index,
		message: message,
		hints:   hints.clone(),
	}, nil
}

// MustPatternExtractionField is like NewPatternExtractionField but panics on error.
func MustPatternExtractionField(pattern string, groups []string, message string, hints Hints) *PatternExtractionField {
	f, err := NewPatternExtractionField(pattern, groups, message, hints)
	if err != nil {
		panic(err)
	}
	return f
}

// Clean returns the captured value of each group in construction order.
func (f *PatternExtractionField) Clean(_ context.Context, raw string) ([]string, error) {
	v, err := f.baseline.Clean(raw)
	if err != nil {
		return nil, err
	}
	loc := f.re.FindStringSubmatchIndex(v)
	if loc == nil {
		return nil, errNoMatch(f.message)
	}
	out := make([]string, len(f.index))
	for i, idx := range f.index {
		start, end := loc[2*idx], loc[2*idx+1]
		// group sits in a branch that did not take part in this match
		if start < 0 {
			return nil, errNoMatch(f.message)
		}
		out[i] = v[start:end]
	}
	return out, nil
}

// Groups returns the group names in extraction order.
func (f *PatternExtractionField) Groups() []string {
	return append([]string(nil), f.groups...)
}

func (f *PatternExtractionField) Hints() Hints { return f.hints.clone() }
