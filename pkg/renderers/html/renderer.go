package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-loginform/pkg/login"
	"github.com/goliatone/go-loginform/pkg/render"
	rendertemplate "github.com/goliatone/go-loginform/pkg/render/template"
	gotemplate "github.com/goliatone/go-loginform/pkg/render/template/gotemplate"
)

const (
	layoutTemplate  = "templates/layout.tmpl"
	formTemplate    = "templates/form.tmpl"
	successTemplate = "templates/success.tmpl"

	defaultTitle = "Login"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	assetsURL        string
	fragment         bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must provide the layout, form and success templates under templates/.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithAssetsURL sets the URL prefix the embedded assets are served from. When
// empty the page links no stylesheet or script unless the theme provides them.
func WithAssetsURL(prefix string) Option {
	return func(cfg *config) {
		cfg.assetsURL = strings.TrimRight(strings.TrimSpace(prefix), "/")
	}
}

// WithFragment renders only the active panel, without the document layout.
func WithFragment() Option {
	return func(cfg *config) {
		cfg.fragment = true
	}
}

// Renderer draws the login form or the success panel as HTML.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	assetsURL string
	fragment  bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates: renderer,
		assetsURL: cfg.assetsURL,
		fragment:  cfg.fragment,
	}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(_ context.Context, snap login.Snapshot, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	name := formTemplate
	if snap.View == login.ViewSuccess {
		name = successTemplate
	}

	body, err := r.templates.RenderTemplate(name, panelData(snap, opts))
	if err != nil {
		return nil, fmt.Errorf("html renderer: render %s: %w", snap.View, err)
	}
	if r.fragment {
		return []byte(body), nil
	}

	page, err := r.templates.RenderTemplate(layoutTemplate, r.layoutData(body, opts))
	if err != nil {
		return nil, fmt.Errorf("html renderer: render layout: %w", err)
	}
	return []byte(page), nil
}

func panelData(snap login.Snapshot, opts render.RenderOptions) map[string]any {
	hidden := make([]map[string]any, 0, len(opts.Hidden))
	for _, field := range render.SortedHiddenFields(opts.Hidden) {
		hidden = append(hidden, map[string]any{"name": field.Name, "value": field.Value})
	}

	return map[string]any{
		"action":   opts.Action,
		"hidden":   hidden,
		"email":    snap.Email,
		"password": snap.Password,
		"welcome":  snap.Welcome,
		// Both keys are always present so templates never resolve a missing key.
		"errors": map[string]any{
			login.FieldEmail:    snap.ErrorFor(login.FieldEmail),
			login.FieldPassword: snap.ErrorFor(login.FieldPassword),
		},
	}
}

func (r *Renderer) layoutData(body string, opts render.RenderOptions) map[string]any {
	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = defaultTitle
	}

	data := map[string]any{
		"title":      title,
		"body":       body,
		"notice":     render.SanitizeNotice(opts.Notice),
		"stylesheet": r.assetURL(opts, render.AssetStylesheet, StylesheetName),
		"script":     r.assetURL(opts, render.AssetScript, ScriptName),
		"css_vars":   "",
		"theme":      "",
		"variant":    "",
	}
	if cfg := opts.Theme; cfg != nil {
		data["css_vars"] = render.CSSVarsStyle(cfg.CSSVars)
		data["theme"] = cfg.Theme
		data["variant"] = cfg.Variant
	}
	return data
}

func (r *Renderer) assetURL(opts render.RenderOptions, key, file string) string {
	if opts.Theme != nil && opts.Theme.AssetURL != nil {
		if url := opts.Theme.AssetURL(key); url != "" {
			return url
		}
	}
	if r.assetsURL == "" {
		return ""
	}
	return r.assetsURL + "/" + file
}
