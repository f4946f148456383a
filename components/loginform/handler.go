package loginform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/goliatone/go-loginform/internal/ctxlog"
	"github.com/goliatone/go-loginform/internal/instances"
	"github.com/goliatone/go-loginform/pkg/login"
	"github.com/goliatone/go-loginform/pkg/render"
	"github.com/goliatone/go-loginform/pkg/renderers/html"
	"github.com/goliatone/go-loginform/pkg/renderers/jsonview"
	"github.com/goliatone/go-loginform/pkg/renderers/tui"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// fallbackRenderer is used when the Accept header matches no renderer.
const fallbackRenderer = "html"

// Handler builds a handler serving every route from the root with default
// options plus any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds a handler from a pre-constructed Options value.
// Callers are expected to pass an Options value produced by NewOptions (or equivalent)
// so defaults are applied.
func HandlerWithOptions(opts Options) http.Handler {
	mux := http.NewServeMux()
	if _, err := RegisterRoutesWithOptions(mux, "", opts); err != nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			loggerFor(opts, r).Error("loginform: handler unavailable", "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		})
	}
	return mux
}

type server struct {
	opts     Options
	routes   Routes
	store    *instances.Store
	registry *render.Registry
	openAPI  []byte
}

func newServer(opts Options, routes Routes) (*server, error) {
	store := opts.Store
	if store == nil {
		store = instances.New()
	}

	registry := opts.Registry
	if registry == nil {
		var err error
		registry, err = DefaultRegistry(routes.Assets)
		if err != nil {
			return nil, err
		}
	}
	if !registry.Has(fallbackRenderer) {
		return nil, fmt.Errorf("loginform: registry has no %q renderer", fallbackRenderer)
	}

	doc, err := openAPIJSON(context.Background(), routes)
	if err != nil {
		return nil, err
	}

	return &server{
		opts:     opts,
		routes:   routes,
		store:    store,
		registry: registry,
		openAPI:  doc,
	}, nil
}

// DefaultRegistry returns the html, json and text renderers, with the html
// page linking its assets under assetsURL.
func DefaultRegistry(assetsURL string) (*render.Registry, error) {
	page, err := html.New(html.WithAssetsURL(assetsURL))
	if err != nil {
		return nil, fmt.Errorf("loginform: html renderer: %w", err)
	}
	return render.NewRegistry(page, jsonview.New(), tui.New())
}

func (s *server) page(w http.ResponseWriter, r *http.Request) {
	if !s.allow(w, r, http.MethodGet, http.MethodHead, http.MethodPost) {
		return
	}

	if r.Method != http.MethodPost {
		id, snap := s.store.Mount()
		s.render(w, r, http.StatusOK, id, snap)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	event, err := parseEvent(r.PostForm)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var submitted, loggedIn bool
	apply := func(f *login.Form) {
		before := f.View()
		submitted = applyEvent(f, event, r.PostForm)
		loggedIn = before == login.ViewForm && submitted
	}

	id := strings.TrimSpace(r.PostForm.Get(render.InstanceFieldName))
	snap, err := s.store.Apply(id, apply)
	if errors.Is(err, instances.ErrNotFound) {
		// Unknown or expired instance: replay the event on a fresh form.
		id, _ = s.store.Mount()
		snap, err = s.store.Apply(id, apply)
	}
	if err != nil {
		loggerFor(s.opts, r).Error("loginform: apply event", "event", event, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	switch {
	case loggedIn:
		loggerFor(s.opts, r).Info("login successful", "email", snap.Email)
	case event == login.EventSubmit && !submitted:
		status = http.StatusUnprocessableEntity
	}
	s.render(w, r, status, id, snap)
}

func (s *server) render(w http.ResponseWriter, r *http.Request, status int, id string, snap login.Snapshot) {
	renderer, err := s.registry.Negotiate(r.Header.Get("Accept"), fallbackRenderer)
	if err != nil {
		loggerFor(s.opts, r).Error("loginform: negotiate renderer", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	body, err := renderer.Render(r.Context(), snap, render.RenderOptions{
		Action: s.routes.Page,
		Hidden: render.MergeHiddenFields(nil, render.InstanceField(id)),
		Title:  s.opts.Title,
		Notice: s.opts.Notice,
		Theme:  s.opts.Theme,
	})
	if err != nil {
		loggerFor(s.opts, r).Error("loginform: render", "renderer", renderer.Name(), "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Add("Vary", "Accept")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body)
}

func parseEvent(form url.Values) (login.Event, error) {
	raw := strings.TrimSpace(form.Get(render.EventFieldName))
	if raw == "" {
		return login.EventSubmit, nil
	}
	switch event := login.Event(raw); event {
	case login.EventSubmit, login.EventLogout, login.EventEmailChange, login.EventPasswordChange:
		return event, nil
	default:
		return "", fmt.Errorf("loginform: unknown event %q", raw)
	}
}

// applyEvent maps a posted event onto the form handlers. Field changes only
// apply while the form view is showing, and logout only from the success
// view. It reports whether the form is submitted afterwards.
func applyEvent(f *login.Form, event login.Event, form url.Values) bool {
	switch event {
	case login.EventEmailChange:
		if f.View() == login.ViewForm {
			f.OnEmailChange(changeValue(form, login.FieldEmail))
		}
	case login.EventPasswordChange:
		if f.View() == login.ViewForm {
			f.OnPasswordChange(changeValue(form, login.FieldPassword))
		}
	case login.EventSubmit:
		if f.View() == login.ViewForm {
			if _, ok := form[login.FieldEmail]; ok {
				f.OnEmailChange(form.Get(login.FieldEmail))
			}
			if _, ok := form[login.FieldPassword]; ok {
				f.OnPasswordChange(form.Get(login.FieldPassword))
			}
		}
		return f.OnSubmit()
	case login.EventLogout:
		if f.View() == login.ViewSuccess {
			f.OnLogout()
		}
	}
	return f.View() == login.ViewSuccess
}

// changeValue reads a single change event. The browser script posts the
// new value as "value"; plain forms post the field itself.
func changeValue(form url.Values, field string) string {
	if _, ok := form["value"]; ok {
		return form.Get("value")
	}
	return form.Get(field)
}

func loggerFor(opts Options, r *http.Request) *slog.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	if r == nil {
		return slog.Default()
	}
	return ctxlog.FromContext(r.Context())
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}
