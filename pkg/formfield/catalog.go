package formfield

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Kinds of fields known to the catalog.
const (
	KindDomainExcludingEmail = "domain_excluding_email"
	KindPatternExtraction    = "pattern_extraction"
	KindRegisteredEmailList  = "registered_email_list"
)

// CleanFunc cleans raw input into a field specific value.
type CleanFunc func(ctx context.Context, raw string) (any, error)

// Field is the type-erased form of a field as stored in a Catalog.
type Field struct {
	Name  string
	Kind  string
	Hints Hints
	Clean CleanFunc
}

// ErrFieldExists is returned by Register when a field with the same name
// has already been registered.
var ErrFieldExists = errors.New("field already registered")

// Catalog is a concurrency safe set of named fields.
type Catalog struct {
	mu     sync.RWMutex
	fields map[string]Field
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{fields: make(map[string]Field)}
}

// Register adds f under f.Name.
func (c *Catalog) Register(f Field) error {
	if f.Name == "" || f.Clean == nil {
		return fmt.Errorf("field needs a name and a clean function")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.fields[f.Name]; ok {
		return fmt.Errorf("%w: %s", ErrFieldExists, f.Name)
	}
	c.fields[f.Name] = f
	return nil
}

// Get retrieves a field by name.
func (c *Catalog) Get(name string) (Field, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f, ok := c.fields[name]
	return f, ok
}

// Names returns the registered field names in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.fields))
	for n := range c.fields {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// DomainExcludingEmail wraps f for a catalog.
func DomainExcludingEmail(name string, f *DomainExcludingEmailField) Field {
	return Field{Name: name, Kind: KindDomainExcludingEmail, Hints: f.Hints(), Clean: erase(f.Clean)}
}

// PatternExtraction wraps f for a catalog.
func PatternExtraction(name string, f *PatternExtractionField) Field {
	return Field{Name: name, Kind: KindPatternExtraction, Hints: f.Hints(), Clean: erase(f.Clean)}
}

// RegisteredEmailList wraps f for a catalog.
func RegisteredEmailList(name string, f *RegisteredEmailListField) Field {
	return Field{Name: name, Kind: KindRegisteredEmailList, Hints: f.Hints(), Clean: erase(f.Clean)}
}

func erase[T any](fn func(context.Context, string) (T, error)) CleanFunc {
	return func(ctx context.Context, raw string) (any, error) {
		v, err := fn(ctx, raw)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}
