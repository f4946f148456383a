package loginform

import (
	"log/slog"
	"net/http"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-loginform/internal/instances"
	"github.com/goliatone/go-loginform/pkg/render"
)

const (
	defaultRoutePath = "/login"
	defaultAPIPath   = "/api/login"
	defaultTitle     = "Login"
	assetsSegment    = "/assets"
)

type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath string
	APIPath   string
	Title     string
	Notice    string
	Guard     GuardFunc

	Store    *instances.Store
	Registry *render.Registry
	Theme    *theme.RendererConfig
	Logger   *slog.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath: defaultRoutePath,
		APIPath:   defaultAPIPath,
		Title:     defaultTitle,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if strings.TrimSpace(opts.RoutePath) == "" {
		opts.RoutePath = defaultRoutePath
	}
	if strings.TrimSpace(opts.APIPath) == "" {
		opts.APIPath = defaultAPIPath
	}
	if strings.TrimSpace(opts.Title) == "" {
		opts.Title = defaultTitle
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithAPIPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.APIPath = path
	}
}

func WithTitle(title string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Title = title
	}
}

// WithNotice sets markup shown above the form. It is sanitised before
// rendering.
func WithNotice(notice string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Notice = notice
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

// WithStore shares an instance store, e.g. so a sweeper can run against it.
func WithStore(store *instances.Store) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Store = store
	}
}

// WithRegistry replaces the default html/json renderers. The registry must
// contain a renderer named "html", used when negotiation finds no match.
func WithRegistry(registry *render.Registry) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Registry = registry
	}
}

func WithTheme(cfg *theme.RendererConfig) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Theme = cfg
	}
}

func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}
