package loginform

import (
	"net/http"

	"github.com/goliatone/go-loginform/internal/instances"
)

// Component wraps the login handlers, their configuration, and routing
// helpers.
type Component struct {
	opts Options
}

// New constructs a new component with default options plus any overrides.
// Without WithStore the component owns a fresh store shared by every handler
// it builds.
func New(fns ...OptionFn) *Component {
	opts := NewOptions(fns...)
	if opts.Store == nil {
		opts.Store = instances.New()
	}
	return &Component{opts: opts}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Handler returns a handler serving every component route from the root.
func (c *Component) Handler() http.Handler {
	if c == nil {
		return Handler()
	}
	return HandlerWithOptions(c.opts)
}

// RegisterRoutes registers the component routes under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if c == nil {
		return RegisterRoutes(mux, basePath)
	}
	return RegisterRoutesWithOptions(mux, basePath, c.opts)
}
