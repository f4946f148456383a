// Package loginform is the top-level entry point of the module. It re-exports
// the form component and offers one-call helpers for rendering it.
package loginform

import (
	"context"
	"fmt"

	"github.com/goliatone/go-loginform/pkg/login"
	"github.com/goliatone/go-loginform/pkg/render"
	"github.com/goliatone/go-loginform/pkg/renderers/html"
)

// Form is one login form instance.
type Form = login.Form

// Snapshot is the render-ready view data of a form.
type Snapshot = login.Snapshot

// FieldErrors maps field names to their validation message.
type FieldErrors = login.FieldErrors

// RenderOptions describes per-request data renderers use to customise their
// output.
type RenderOptions = render.RenderOptions

// NewForm mounts a form in its initial state.
func NewForm() *Form {
	return login.New()
}

// Validate exposes the form rules without mounting a form.
func Validate(email, password string) FieldErrors {
	return login.Validate(email, password)
}

// RenderHTML renders snap as a full HTML page with the built-in templates. It
// is the simplest entry point for callers that just want markup.
func RenderHTML(ctx context.Context, snap Snapshot, opts RenderOptions, options ...html.Option) ([]byte, error) {
	renderer, err := html.New(options...)
	if err != nil {
		return nil, fmt.Errorf("loginform: %w", err)
	}
	return renderer.Render(ctx, snap, opts)
}
