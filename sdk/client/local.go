package client

import (
	"context"

	"github.com/faciam-dev/formfields/internal/fieldset"
)

type localClient struct{ svc *fieldset.Service }

// NewLocalService wraps an in-process fieldset.Service as a Client.
func NewLocalService(svc *fieldset.Service) Client { return &localClient{svc: svc} }

func (l *localClient) Fields(context.Context) ([]Field, error) {
	ds := l.svc.Fields()
	out := make([]Field, 0, len(ds))
	for _, d := range ds {
		out = append(out, Field{Name: d.Name, Kind: d.Kind, Hints: d.Hints})
	}
	return out, nil
}

func (l *localClient) Clean(ctx context.Context, field, value string) (any, error) {
	return l.svc.Clean(ctx, field, value)
}

func (l *localClient) Mode() string { return "local" }
