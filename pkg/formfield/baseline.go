package formfield

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Baseline performs the generic checks every field runs before its own
// logic. It returns the normalized value or a *ValidationError.
type Baseline interface {
	Clean(raw string) (string, error)
}

// CharBaseline trims surrounding whitespace and rejects empty input.
type CharBaseline struct{}

func (CharBaseline) Clean(raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", errRequired()
	}
	return v, nil
}

// EmailBaseline is CharBaseline followed by an email syntax check.
type EmailBaseline struct {
	validate *validator.Validate
}

// NewEmailBaseline returns an EmailBaseline backed by go-playground/validator.
func NewEmailBaseline() *EmailBaseline {
	return &EmailBaseline{validate: validator.New()}
}

func (b *EmailBaseline) Clean(raw string) (string, error) {
	v, err := CharBaseline{}.Clean(raw)
	if err != nil {
		return "", err
	}
	if err := b.CheckSyntax(v); err != nil {
		return "", err
	}
	return v, nil
}

// CheckSyntax validates a single, already trimmed address.
func (b *EmailBaseline) CheckSyntax(addr string) error {
	if b.validate.Var(addr, "email") != nil {
		return errInvalidEmail()
	}
	return nil
}
