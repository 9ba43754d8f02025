package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/faciam-dev/formfields/pkg/formfield"
)

// Field describes a field exposed by the API.
type Field struct {
	Name  string          `json:"name"`
	Kind  string          `json:"kind"`
	Hints formfield.Hints `json:"hints,omitempty"`
}

// Client provides REST access to the FormFields API.
type Client interface {
	Fields(ctx context.Context) ([]Field, error)
	// Clean returns a string for email fields and a []string for the
	// extraction and list fields. Rejected input comes back as
	// *formfield.ValidationError.
	Clean(ctx context.Context, field, value string) (any, error)
	Mode() string
}

type client struct {
	base string
	http *resty.Client
}

type Option func(*client)

// WithToken sets the Authorization token
func WithToken(tok string) Option {
	return func(c *client) {
		c.http.SetAuthToken(tok)
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.http = resty.NewWithClient(hc)
	}
}

// New returns a new Client for the given base URL
func New(base string, opts ...Option) Client {
	c := &client{base: strings.TrimRight(base, "/"), http: resty.New()}
	for _, o := range opts {
		o(c)
	}
	return c
}

type problem struct {
	Status int            `json:"status"`
	Title  string         `json:"title"`
	Detail string         `json:"detail"`
	Code   string         `json:"code"`
	Params map[string]any `json:"params"`
}

func (c *client) Fields(ctx context.Context) ([]Field, error) {
	var out struct {
		Fields []Field `json:"fields"`
	}
	var p problem
	resp, err := c.http.R().SetContext(ctx).SetResult(&out).SetError(&p).Get(c.base + "/v1/fields")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, restyErr(resp, &p)
	}
	return out.Fields, nil
}

func (c *client) Clean(ctx context.Context, field, value string) (any, error) {
	var out struct {
		Field string          `json:"field"`
		Value json.RawMessage `json:"value"`
	}
	var p problem
	resp, err := c.http.R().SetContext(ctx).
		SetBody(map[string]string{"value": value}).
		SetResult(&out).
		SetError(&p).
		Post(c.base + "/v1/fields/" + url.PathEscape(field) + "/clean")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, restyErr(resp, &p)
	}
	return decodeValue(out.Value)
}

func (c *client) Mode() string { return "http" }

func decodeValue(raw json.RawMessage) (any, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode cleaned value: %w", err)
	}
	return list, nil
}

func restyErr(resp *resty.Response, p *problem) error {
	if resp.StatusCode() == http.StatusUnprocessableEntity && p.Code != "" {
		return &formfield.ValidationError{Code: p.Code, Message: p.Detail, Params: p.Params}
	}
	if p.Detail != "" {
		return fmt.Errorf("%s: %s", resp.Status(), p.Detail)
	}
	return fmt.Errorf("%s", resp.Status())
}
