package tui

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-loginform/pkg/login"
	"github.com/goliatone/go-loginform/pkg/render"
)

// Renderer draws the active panel as plain text for terminals and logs.
type Renderer struct {
	theme Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the text renderer.
func New(options ...Option) *Renderer {
	s := newSettings(options)
	return &Renderer{theme: s.theme}
}

func (r *Renderer) Name() string {
	return "text"
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (r *Renderer) Render(_ context.Context, snap login.Snapshot, _ render.RenderOptions) ([]byte, error) {
	return []byte(r.Text(snap)), nil
}

// Text returns the panel for snap.
func (r *Renderer) Text(snap login.Snapshot) string {
	var b strings.Builder
	if snap.View == login.ViewSuccess {
		r.title(&b, "Login Successful!")
		b.WriteString(snap.Welcome)
		b.WriteString("\n[ Logout ]")
		return b.String()
	}

	r.title(&b, "Login")
	r.field(&b, "Email", snap.Email, snap.ErrorFor(login.FieldEmail))
	r.field(&b, "Password", r.mask(snap.Password), snap.ErrorFor(login.FieldPassword))
	b.WriteString("[ Login ]")
	return b.String()
}

func (r *Renderer) title(b *strings.Builder, text string) {
	b.WriteString(r.theme.TitlePrefix)
	b.WriteString(text)
	b.WriteString(r.theme.TitleSuffix)
	b.WriteByte('\n')
}

func (r *Renderer) field(b *strings.Builder, label, value, message string) {
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteByte('\n')
	if message != "" {
		b.WriteString(r.theme.ErrorPrefix)
		b.WriteString(message)
		b.WriteByte('\n')
	}
}

func (r *Renderer) mask(value string) string {
	return strings.Repeat(string(r.theme.MaskRune), utf8.RuneCountInString(value))
}
