package huma

import (
	"context"
	"net/http"

	base "github.com/danielgtaylor/huma/v2"

	"github.com/faciam-dev/formfields/pkg/formfield"
)

type (
	API         = base.API
	Operation   = base.Operation
	StatusError = base.StatusError
	ErrorDetail = base.ErrorDetail
)

var (
	Error400BadRequest          = base.Error400BadRequest
	Error404NotFound            = base.Error404NotFound
	Error500InternalServerError = base.Error500InternalServerError
	NewError                    = base.NewError
)

// Register wraps huma.Register to expose through this package.
func Register[I, O any](api API, op Operation, handler func(context.Context, *I) (*O, error)) {
	base.Register[I, O](api, op, handler)
}

// ValidationProblem is the 422 body returned when a field rejects its input.
type ValidationProblem struct {
	Status int            `json:"status"`
	Title  string         `json:"title"`
	Detail string         `json:"detail"`
	Field  string         `json:"field"`
	Code   string         `json:"code"`
	Params map[string]any `json:"params,omitempty"`
}

func (p *ValidationProblem) Error() string { return p.Detail }

func (p *ValidationProblem) GetStatus() int { return p.Status }

// Error422 converts a field validation error into a ValidationProblem.
func Error422(field string, ve *formfield.ValidationError) *ValidationProblem {
	return &ValidationProblem{
		Status: http.StatusUnprocessableEntity,
		Title:  http.StatusText(http.StatusUnprocessableEntity),
		Detail: ve.Message,
		Field:  field,
		Code:   ve.Code,
		Params: ve.Params,
	}
}
