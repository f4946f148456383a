// Package config holds the runtime settings of the loginform binary and the
// loaders for its optional YAML or HCL config file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-loginform/internal/ctxlog"
)

const (
	ModeServe  = "serve"
	ModePrompt = "prompt"
)

// Defaults applied by NewConfig to zero fields.
const (
	DefaultMode          = ModeServe
	DefaultAddr          = ":8080"
	DefaultLogFormat     = "text"
	DefaultLogLevel      = "info"
	DefaultTitle         = "Login"
	DefaultInstanceTTL   = 30 * time.Minute
	DefaultSweepInterval = time.Minute
)

// Config is the validated runtime configuration.
type Config struct {
	Mode      string
	Addr      string
	BasePath  string
	LogFormat string
	LogLevel  string

	Title        string
	Notice       string
	Theme        string
	ThemeVariant string

	InstanceTTL   time.Duration
	SweepInterval time.Duration
	// MaxAttempts bounds submits in prompt mode. Zero is unlimited.
	MaxAttempts int
}

// NewConfig fills defaults and validates cfg.
func NewConfig(cfg Config) (*Config, error) {
	cfg.Mode = strings.ToLower(strings.TrimSpace(cfg.Mode))
	if cfg.Mode == "" {
		cfg.Mode = DefaultMode
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	cfg.BasePath = normaliseBasePath(cfg.BasePath)
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	if cfg.LogFormat == "" {
		cfg.LogFormat = DefaultLogFormat
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.Title == "" {
		cfg.Title = DefaultTitle
	}
	if cfg.InstanceTTL == 0 {
		cfg.InstanceTTL = DefaultInstanceTTL
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = DefaultSweepInterval
	}

	var errs []error
	switch cfg.Mode {
	case ModeServe, ModePrompt:
	default:
		errs = append(errs, fmt.Errorf("invalid mode %q: must be 'serve' or 'prompt'", cfg.Mode))
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat))
	}
	if _, ok := ctxlog.ParseLevel(cfg.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel))
	}
	if cfg.MaxAttempts < 0 {
		errs = append(errs, errors.New("max attempts cannot be negative"))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func normaliseBasePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || path == "/" {
		return ""
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(path, "/")
}
