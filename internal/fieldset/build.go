package fieldset

import (
	"fmt"

	"github.com/faciam-dev/formfields/internal/config"
	"github.com/faciam-dev/formfields/internal/users"
	"github.com/faciam-dev/formfields/pkg/formfield"
)

// Build turns the field declarations of f into a catalog. lookup backs every
// registered_email_list field and may be nil when there are none.
func Build(f *config.File, lookup formfield.UserLookup) (*formfield.Catalog, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	c := formfield.NewCatalog()
	for _, s := range f.Fields {
		field, err := buildField(s, lookup)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", s.Name, err)
		}
		if err := c.Register(field); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func buildField(s config.FieldSpec, lookup formfield.UserLookup) (formfield.Field, error) {
	switch s.Type {
	case formfield.KindDomainExcludingEmail:
		return formfield.DomainExcludingEmail(s.Name, formfield.NewDomainExcludingEmailField(s.ExcludedDomains, s.Hints())), nil
	case formfield.KindPatternExtraction:
		f, err := formfield.NewPatternExtractionField(s.Pattern, s.Groups, s.ErrorMessage, s.Hints())
		if err != nil {
			return formfield.Field{}, err
		}
		return formfield.PatternExtraction(s.Name, f), nil
	case formfield.KindRegisteredEmailList:
		if lookup == nil {
			return formfield.Field{}, fmt.Errorf("no user registry configured")
		}
		f := formfield.NewRegisteredEmailListField(lookup,
			formfield.WithConcurrency(s.Concurrency),
			formfield.WithHints(s.Hints()))
		return formfield.RegisteredEmailList(s.Name, f), nil
	default:
		return formfield.Field{}, fmt.Errorf("unknown type %q", s.Type)
	}
}

// SeedUsers converts the configured seed into registry users.
func SeedUsers(f *config.File) []users.User {
	out := make([]users.User, len(f.Users.Seed))
	for i, s := range f.Users.Seed {
		out[i] = users.User{Username: s.Username, Email: s.Email}
	}
	return out
}

// Settings returns the registry settings of f.
func Settings(f *config.File) users.Settings {
	return users.Settings{
		DSN:         f.Users.DSN,
		Driver:      f.Users.Driver,
		TablePrefix: f.Users.TablePrefix,
		Database:    f.Users.Database,
		Seed:        SeedUsers(f),
	}
}
