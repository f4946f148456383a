package render

import (
	"context"

	"github.com/goliatone/go-loginform/pkg/login"
)

// Renderer converts a login form snapshot into a byte representation (HTML,
// JSON, plain text).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, snapshot login.Snapshot, options RenderOptions) ([]byte, error)
}
