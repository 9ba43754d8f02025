// Package formfield implements form fields that validate raw text input and
// turn it into cleaned values.
package formfield

import (
	"errors"
	"fmt"
)

// Codes reported by ValidationError.
const (
	CodeRequired       = "required"
	CodeInvalidEmail   = "invalid_email"
	CodeExcludedDomain = "excluded_domain"
	CodeNoMatch        = "no_match"
	CodeUserNotFound   = "user_not_found"
)

const (
	msgRequired     = "This field is required."
	msgInvalidEmail = "Enter a valid email address."
)

// ValidationError is the single user-correctable failure returned by Clean.
// Params carries the values the message was built from (the offending
// domain, the unmatched addresses) so callers can render their own text.
type ValidationError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Params  map[string]any `json:"params,omitempty"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AsValidation reports whether err wraps a *ValidationError and returns it.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func errRequired() *ValidationError {
	return &ValidationError{Code: CodeRequired, Message: msgRequired}
}

func errInvalidEmail() *ValidationError {
	return &ValidationError{Code: CodeInvalidEmail, Message: msgInvalidEmail}
}

func errExcludedDomain(domain string) *ValidationError {
	return &ValidationError{
		Code:    CodeExcludedDomain,
		Message: fmt.Sprintf("it seems you have provided a %s address, please give us your professional email address", domain),
		Params:  map[string]any{"domain": domain},
	}
}

func errNoMatch(msg string) *ValidationError {
	return &ValidationError{Code: CodeNoMatch, Message: msg}
}

func errUsersNotFound(emails []string) *ValidationError {
	return &ValidationError{
		Code:    CodeUserNotFound,
		Message: fmt.Sprintf("we haven't found a user for the following email(s): '%s'", joinEmails(emails)),
		Params:  map[string]any{"emails": emails},
	}
}
