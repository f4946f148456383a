package tui

import (
	"context"
	"errors"

	"github.com/goliatone/go-loginform/internal/ctxlog"
	"github.com/goliatone/go-loginform/pkg/login"
)

// Session runs one login form interactively: it prompts for both fields,
// submits, redraws the panel after submit and logout, and offers logout from
// the success panel.
type Session struct {
	driver      PromptDriver
	text        *Renderer
	form        *login.Form
	maxAttempts int
	drawCtx     context.Context
	drawErr     error
}

// NewSession mounts a fresh form. Without WithPromptDriver the survey driver
// writing to stdout is used.
func NewSession(options ...Option) *Session {
	s := newSettings(options)
	driver := s.driver
	if driver == nil {
		driver = NewSurveyDriver(nil)
	}

	session := &Session{
		driver:      driver,
		text:        &Renderer{theme: s.theme},
		form:        login.New(),
		maxAttempts: s.maxAttempts,
		drawCtx:     context.Background(),
	}
	session.form.Subscribe(func(event login.Event, snap login.Snapshot) {
		if event == login.EventSubmit || event == login.EventLogout {
			session.draw(session.drawCtx, snap)
		}
	})
	return session
}

// Form exposes the underlying component.
func (s *Session) Form() *login.Form {
	return s.form
}

// Run drives the prompt loop until the user stays logged in (declines the
// logout prompt), aborts, the context ends, or the attempt limit is reached.
// The returned snapshot is the last state of the form.
func (s *Session) Run(ctx context.Context) (login.Snapshot, error) {
	logger := ctxlog.FromContext(ctx)
	s.drawCtx = ctx
	s.drawErr = nil
	s.draw(ctx, s.form.Snapshot())

	attempts := 0
	for {
		if s.drawErr != nil {
			return s.form.Snapshot(), s.drawErr
		}
		if err := ctx.Err(); err != nil {
			return s.form.Snapshot(), err
		}

		if s.form.View() == login.ViewSuccess {
			logout, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Logout?", Help: "Answer yes to return to the login form"})
			if err != nil {
				return s.form.Snapshot(), err
			}
			if !logout {
				return s.form.Snapshot(), nil
			}
			s.form.OnLogout()
			logger.Debug("logged out")
			attempts = 0
			continue
		}

		if s.maxAttempts > 0 && attempts >= s.maxAttempts {
			return s.form.Snapshot(), ErrAttemptsExhausted
		}

		state := s.form.State()
		email, err := s.driver.Input(ctx, InputConfig{Message: "Email", Default: state.Email, Help: "Enter your email"})
		if err != nil {
			return s.form.Snapshot(), err
		}
		s.form.OnEmailChange(email)

		password, err := s.driver.Password(ctx, InputConfig{Message: "Password", Help: "Enter your password"})
		if err != nil {
			return s.form.Snapshot(), err
		}
		s.form.OnPasswordChange(password)

		attempts++
		if s.form.OnSubmit() {
			logger.Info("login successful", "email", email)
		}
	}
}

func (s *Session) draw(ctx context.Context, snap login.Snapshot) {
	if s.drawErr != nil {
		return
	}
	if err := s.driver.Info(ctx, s.text.Text(snap)); err != nil && !errors.Is(err, context.Canceled) {
		s.drawErr = err
	}
}
