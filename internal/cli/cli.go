package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goliatone/go-loginform/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns the validated config, a
// boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*config.Config, bool, error) {
	flagSet := flag.NewFlagSet("loginform", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
loginform - An email/password login form with inline validation.

Usage:
  loginform [options] [serve|prompt]

Modes:
  serve   Serve the form over HTTP (default).
  prompt  Run the form interactively in the terminal.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to a .yaml, .yml or .hcl config file.")
	modeFlag := flagSet.String("mode", config.DefaultMode, "Run mode. Options: 'serve' or 'prompt'.")
	addrFlag := flagSet.String("addr", config.DefaultAddr, "Listen address in serve mode.")
	basePathFlag := flagSet.String("base-path", "", "Path prefix the routes are mounted under.")
	logFormatFlag := flagSet.String("log-format", config.DefaultLogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", config.DefaultLogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	titleFlag := flagSet.String("title", config.DefaultTitle, "Document title of the HTML page.")
	noticeFlag := flagSet.String("notice", "", "Optional notice markup shown above the form.")
	themeFlag := flagSet.String("theme", "", "Theme name.")
	variantFlag := flagSet.String("theme-variant", "", "Theme variant, e.g. 'dark'.")
	ttlFlag := flagSet.Duration("instance-ttl", config.DefaultInstanceTTL, "Idle lifetime of a mounted form. A negative value disables expiry.")
	attemptsFlag := flagSet.Int("max-attempts", 0, "Submit attempts allowed in prompt mode. 0 is unlimited.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	var cfg config.Config
	if path := strings.TrimSpace(*configFlag); path != "" {
		file, err := config.Load(path)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		if cfg, err = file.Config(); err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		slog.Debug("Config file loaded.", "path", path)
	}

	set := map[string]bool{}
	flagSet.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	override := func(name string, dst *string, value string) {
		if set[name] || *dst == "" {
			*dst = value
		}
	}
	override("mode", &cfg.Mode, *modeFlag)
	override("addr", &cfg.Addr, *addrFlag)
	override("base-path", &cfg.BasePath, *basePathFlag)
	override("log-format", &cfg.LogFormat, *logFormatFlag)
	override("log-level", &cfg.LogLevel, *logLevelFlag)
	override("title", &cfg.Title, *titleFlag)
	override("notice", &cfg.Notice, *noticeFlag)
	override("theme", &cfg.Theme, *themeFlag)
	override("theme-variant", &cfg.ThemeVariant, *variantFlag)
	if set["instance-ttl"] || cfg.InstanceTTL == 0 {
		cfg.InstanceTTL = *ttlFlag
	}
	if set["max-attempts"] {
		cfg.MaxAttempts = *attemptsFlag
	}

	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: "too many arguments: expected at most one mode"}
	}
	if flagSet.NArg() == 1 {
		cfg.Mode = flagSet.Arg(0)
	}

	validated, err := config.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "mode", validated.Mode)
	return validated, false, nil
}
