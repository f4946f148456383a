package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-loginform/components/loginform"
	"github.com/goliatone/go-loginform/internal/config"
	"github.com/goliatone/go-loginform/internal/ctxlog"
	"github.com/goliatone/go-loginform/internal/instances"
	"github.com/goliatone/go-loginform/pkg/render"
	"github.com/goliatone/go-loginform/pkg/renderers/tui"
)

const shutdownTimeout = 10 * time.Second

// Option customises an App, mainly for tests.
type Option func(*App)

// WithPromptDriver replaces the survey driver used in prompt mode.
func WithPromptDriver(driver tui.PromptDriver) Option {
	return func(a *App) {
		if driver != nil {
			a.driver = driver
		}
	}
}

// WithThemeSelector replaces the built-in manifest selector.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(a *App) {
		if selector != nil {
			a.selector = selector
		}
	}
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	cfg      *config.Config
	logger   *slog.Logger
	store    *instances.Store
	selector theme.ThemeSelector
	theme    *theme.RendererConfig
	driver   tui.PromptDriver
}

// NewApp builds an App with its own isolated logger. It fails when the
// configured theme cannot be resolved.
func NewApp(outW io.Writer, cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: config is required")
	}
	logger := ctxlog.NewLogger(outW, cfg.LogFormat, cfg.LogLevel)
	logger.Debug("Logger configured successfully.")

	a := &App{
		outW:     outW,
		cfg:      cfg,
		logger:   logger,
		store:    instances.New(instances.WithTTL(cfg.InstanceTTL)),
		selector: render.ManifestSelector{Manifest: render.DefaultManifest()},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	resolved, err := render.ResolveTheme(a.selector, cfg.Theme, cfg.ThemeVariant)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	a.theme = resolved
	if resolved != nil {
		logger.Debug("Theme resolved.", "theme", resolved.Theme, "variant", resolved.Variant)
	}
	return a, nil
}

// Store returns the instance store. This is primarily for testing.
func (a *App) Store() *instances.Store {
	return a.store
}

// Handler returns the HTTP surface: the login component under the base path
// and a health check.
func (a *App) Handler() (http.Handler, error) {
	mux := http.NewServeMux()
	component := loginform.New(
		loginform.WithStore(a.store),
		loginform.WithTitle(a.cfg.Title),
		loginform.WithNotice(a.cfg.Notice),
		loginform.WithTheme(a.theme),
		loginform.WithLogger(a.logger),
	)
	page, err := component.RegisterRoutes(mux, a.cfg.BasePath)
	if err != nil {
		return nil, fmt.Errorf("app: register routes: %w", err)
	}
	mux.HandleFunc(a.cfg.BasePath+"/healthz", a.healthHandler)
	a.logger.Debug("Routes registered.", "page", page)
	return mux, nil
}

// Run executes the configured mode until ctx is cancelled or the mode ends.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	switch a.cfg.Mode {
	case config.ModePrompt:
		return a.runPrompt(ctx)
	default:
		return a.runServe(ctx)
	}
}

func (a *App) runServe(ctx context.Context) error {
	handler, err := a.Handler()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go a.store.Run(ctx, a.cfg.SweepInterval)

	srv := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Login form server starting", "address", a.cfg.Addr, "page", loginform.MountPath(a.cfg.BasePath))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("app: serve: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down server.")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("app: shutdown: %w", err)
	}
	return nil
}

func (a *App) runPrompt(ctx context.Context) error {
	driver := a.driver
	if driver == nil {
		driver = tui.NewSurveyDriver(a.outW)
	}
	session := tui.NewSession(
		tui.WithPromptDriver(driver),
		tui.WithMaxAttempts(a.cfg.MaxAttempts),
	)

	snap, err := session.Run(ctx)
	if err != nil {
		if errors.Is(err, tui.ErrAborted) {
			a.logger.Debug("Prompt aborted.")
			return nil
		}
		return fmt.Errorf("app: prompt: %w", err)
	}
	a.logger.Debug("Prompt finished.", "view", snap.View.String())
	return nil
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}
