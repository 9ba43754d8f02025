package fieldset

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/faciam-dev/formfields/pkg/formfield"
	"github.com/faciam-dev/formfields/pkg/metrics"
)

// ErrUnknownField is returned when no field has the requested name.
var ErrUnknownField = errors.New("unknown field")

// Descriptor describes a field for listings.
type Descriptor struct {
	Name  string          `json:"name"`
	Kind  string          `json:"kind"`
	Hints formfield.Hints `json:"hints,omitempty"`
}

// Source provides the current catalog.
type Source interface {
	Catalog() *formfield.Catalog
}

type staticSource struct{ c *formfield.Catalog }

func (s staticSource) Catalog() *formfield.Catalog { return s.c }

// Static wraps a fixed catalog as a Source.
func Static(c *formfield.Catalog) Source { return staticSource{c: c} }

// Service cleans values by field name.
type Service struct {
	src    Source
	logger *zap.SugaredLogger
}

// NewService creates a Service. A nil logger disables logging.
func NewService(src Source, logger *zap.SugaredLogger) *Service {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Service{src: src, logger: logger}
}

// Fields lists the fields in name order.
func (s *Service) Fields() []Descriptor {
	c := s.src.Catalog()
	names := c.Names()
	out := make([]Descriptor, 0, len(names))
	for _, n := range names {
		f, _ := c.Get(n)
		out = append(out, Descriptor{Name: f.Name, Kind: f.Kind, Hints: f.Hints})
	}
	return out
}

// Clean runs the named field. Validation failures come back as
// *formfield.ValidationError, everything else is an infrastructure error.
func (s *Service) Clean(ctx context.Context, name, raw string) (any, error) {
	f, ok := s.src.Catalog().Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	start := time.Now()
	v, err := f.Clean(ctx, raw)
	metrics.CleanLatency.WithLabelValues(name).Observe(time.Since(start).Seconds())
	switch ve, isValidation := formfield.AsValidation(err); {
	case err == nil:
		metrics.Cleans.WithLabelValues(name, "ok").Inc()
	case isValidation:
		metrics.Cleans.WithLabelValues(name, "invalid").Inc()
		s.logger.Debugw("field rejected input", "field", name, "code", ve.Code)
	default:
		metrics.Cleans.WithLabelValues(name, "error").Inc()
		s.logger.Errorw("field clean failed", "field", name, "err", err)
	}
	return v, err
}
