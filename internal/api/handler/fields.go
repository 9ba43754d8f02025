package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/faciam-dev/formfields/internal/api/schema"
	"github.com/faciam-dev/formfields/internal/fieldset"
	"github.com/faciam-dev/formfields/internal/huma"
	"github.com/faciam-dev/formfields/internal/logger"
	"github.com/faciam-dev/formfields/pkg/formfield"
)

type FieldHandler struct {
	Svc *fieldset.Service
}

type listFieldsOut struct {
	Body struct {
		Fields []schema.Field `json:"fields"`
		Total  int            `json:"total"`
	}
}

type cleanIn struct {
	Name string `path:"name" doc:"Field name"`
	Body schema.CleanRequest
}

type cleanOut struct {
	Body schema.CleanResult
}

// RegisterFields registers the field listing and cleaning endpoints.
func RegisterFields(api huma.API, h *FieldHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "listFields",
		Method:      http.MethodGet,
		Path:        "/v1/fields",
		Summary:     "List configured fields",
		Tags:        []string{"Fields"},
	}, h.list)
	huma.Register(api, huma.Operation{
		OperationID:   "cleanField",
		Method:        http.MethodPost,
		Path:          "/v1/fields/{name}/clean",
		Summary:       "Clean a raw value with the named field",
		Description:   "Returns the cleaned value, or 422 with the validation code and message.",
		Tags:          []string{"Fields"},
		Errors:        []int{http.StatusNotFound, http.StatusUnprocessableEntity},
		DefaultStatus: http.StatusOK,
	}, h.clean)
}

func (h *FieldHandler) list(ctx context.Context, _ *struct{}) (*listFieldsOut, error) {
	ds := h.Svc.Fields()
	out := &listFieldsOut{}
	out.Body.Fields = make([]schema.Field, 0, len(ds))
	for _, d := range ds {
		out.Body.Fields = append(out.Body.Fields, schema.Field{Name: d.Name, Kind: d.Kind, Hints: d.Hints})
	}
	out.Body.Total = len(out.Body.Fields)
	return out, nil
}

func (h *FieldHandler) clean(ctx context.Context, in *cleanIn) (*cleanOut, error) {
	v, err := h.Svc.Clean(ctx, in.Name, in.Body.Value)
	if err != nil {
		if errors.Is(err, fieldset.ErrUnknownField) {
			return nil, huma.Error404NotFound(err.Error())
		}
		if ve, ok := formfield.AsValidation(err); ok {
			return nil, huma.Error422(in.Name, ve)
		}
		logger.L.Error("clean field", "field", in.Name, "err", err)
		return nil, huma.Error500InternalServerError("clean failed")
	}
	return &cleanOut{Body: schema.CleanResult{Field: in.Name, Value: v}}, nil
}
