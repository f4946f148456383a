package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-loginform/pkg/login"
)

type stubDriver struct {
	inputs    []string
	passwords []string
	confirms  []bool
	infos     []string
	failOn    string
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.failOn == "input" {
		return "", ErrAborted
	}
	if len(s.inputs) == 0 {
		return "", errors.New("unexpected input prompt " + cfg.Message)
	}
	value := s.inputs[0]
	s.inputs = s.inputs[1:]
	return value, nil
}

func (s *stubDriver) Password(_ context.Context, cfg InputConfig) (string, error) {
	if len(s.passwords) == 0 {
		return "", errors.New("unexpected password prompt " + cfg.Message)
	}
	value := s.passwords[0]
	s.passwords = s.passwords[1:]
	return value, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	if len(s.confirms) == 0 {
		return false, errors.New("unexpected confirm prompt " + cfg.Message)
	}
	value := s.confirms[0]
	s.confirms = s.confirms[1:]
	return value, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infos = append(s.infos, msg)
	return nil
}

func TestSession_RetriesUntilValid(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"bad", "test@example.com"},
		passwords: []string{"123", "123456"},
		confirms:  []bool{false},
	}
	session := NewSession(WithPromptDriver(driver))

	snap, err := session.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if snap.View != login.ViewSuccess {
		t.Fatalf("expected success view, got %s", snap.View)
	}
	if snap.Welcome != "Welcome, test@example.com" {
		t.Fatalf("unexpected welcome %q", snap.Welcome)
	}

	if len(driver.infos) != 3 {
		t.Fatalf("expected initial, failed and success panels, got %d: %q", len(driver.infos), driver.infos)
	}
	failed := driver.infos[1]
	for _, want := range []string{"Email is invalid", "Password must be at least 6 characters", "Password: ***"} {
		if !strings.Contains(failed, want) {
			t.Fatalf("failed panel missing %q:\n%s", want, failed)
		}
	}
	if !strings.Contains(driver.infos[2], "Login Successful!") {
		t.Fatalf("expected success panel, got:\n%s", driver.infos[2])
	}
}

func TestSession_LogoutReturnsToForm(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"a@b.co", "c@d.io"},
		passwords: []string{"secret1", "secret2"},
		confirms:  []bool{true, false},
	}
	session := NewSession(WithPromptDriver(driver))

	snap, err := session.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if snap.Email != "c@d.io" {
		t.Fatalf("expected second login to win, got %q", snap.Email)
	}

	want := []string{
		"== Login ==\nEmail: \nPassword: \n[ Login ]",
		"== Login Successful! ==\nWelcome, a@b.co\n[ Logout ]",
		"== Login ==\nEmail: \nPassword: \n[ Login ]",
		"== Login Successful! ==\nWelcome, c@d.io\n[ Logout ]",
	}
	if diff := cmp.Diff(want, driver.infos); diff != "" {
		t.Fatalf("panels mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_MaxAttempts(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", ""},
		passwords: []string{"", ""},
	}
	session := NewSession(WithPromptDriver(driver), WithMaxAttempts(2))

	snap, err := session.Run(context.Background())
	if !errors.Is(err, ErrAttemptsExhausted) {
		t.Fatalf("expected ErrAttemptsExhausted, got %v", err)
	}
	want := login.FieldErrors{
		login.FieldEmail:    login.MessageEmailRequired,
		login.FieldPassword: login.MessagePasswordRequired,
	}
	if diff := cmp.Diff(want, snap.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_Abort(t *testing.T) {
	driver := &stubDriver{failOn: "input"}
	session := NewSession(WithPromptDriver(driver))

	if _, err := session.Run(context.Background()); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestSession_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	session := NewSession(WithPromptDriver(&stubDriver{}))
	if _, err := session.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
