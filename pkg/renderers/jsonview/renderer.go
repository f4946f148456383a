// Package jsonview renders the form as a JSON document for API clients and
// the browser script that refreshes inline errors.
package jsonview

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-loginform/pkg/login"
	"github.com/goliatone/go-loginform/pkg/render"
)

// Payload is the document served for a form instance. The password is never
// included.
type Payload struct {
	Instance string            `json:"instance,omitempty"`
	View     login.View        `json:"view"`
	Email    string            `json:"email"`
	Errors   login.FieldErrors `json:"errors"`
	Welcome  string            `json:"welcome,omitempty"`
}

// NewPayload builds the payload for snap under the given instance id.
func NewPayload(instance string, snap login.Snapshot) Payload {
	errs := snap.Errors
	if errs == nil {
		errs = login.FieldErrors{}
	}
	return Payload{
		Instance: instance,
		View:     snap.View,
		Email:    snap.Email,
		Errors:   errs,
		Welcome:  snap.Welcome,
	}
}

// Option customises the renderer.
type Option func(*Renderer)

// WithIndent pretty prints the output with the given indent.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// Renderer encodes snapshots as JSON.
type Renderer struct {
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the JSON renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return "json"
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

func (r *Renderer) Render(_ context.Context, snap login.Snapshot, opts render.RenderOptions) ([]byte, error) {
	payload := NewPayload(opts.Instance(), snap)

	var (
		out []byte
		err error
	)
	if r.indent != "" {
		out, err = json.MarshalIndent(payload, "", r.indent)
	} else {
		out, err = json.Marshal(payload)
	}
	if err != nil {
		return nil, fmt.Errorf("jsonview: encode payload: %w", err)
	}
	return out, nil
}
