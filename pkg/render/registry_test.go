package render_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-loginform/pkg/login"
	"github.com/goliatone/go-loginform/pkg/render"
)

type stubRenderer struct {
	name        string
	contentType string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return s.contentType }

func (s stubRenderer) Render(_ context.Context, snap login.Snapshot, _ render.RenderOptions) ([]byte, error) {
	return []byte(s.name + ":" + snap.View.String()), nil
}

func TestRegistry_RegisterAndList(t *testing.T) {
	registry, err := render.NewRegistry(
		stubRenderer{name: "html", contentType: "text/html; charset=utf-8"},
		stubRenderer{name: "json", contentType: "application/json"},
	)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	if diff := cmp.Diff([]string{"html", "json"}, registry.List()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if !registry.Has("json") || registry.Has("text") {
		t.Fatalf("unexpected Has results")
	}
	if _, err := registry.Get("text"); err == nil {
		t.Fatalf("expected missing renderer error")
	}
}

func TestRegistry_RejectsDuplicatesAndBlankNames(t *testing.T) {
	registry, err := render.NewRegistry()
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	if err := registry.Register(stubRenderer{name: "html"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := registry.Register(stubRenderer{name: "html"}); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if err := registry.Register(stubRenderer{}); err == nil {
		t.Fatalf("expected blank name error")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected nil renderer error")
	}
}

func TestRegistry_Negotiate(t *testing.T) {
	registry, err := render.NewRegistry(
		stubRenderer{name: "html", contentType: "text/html; charset=utf-8"},
		stubRenderer{name: "json", contentType: "application/json"},
	)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	cases := map[string]string{
		"application/json":                        "json",
		"text/html,application/xhtml+xml":         "html",
		"application/xml;q=0.9, application/json": "json",
		"":                                        "html",
		"*/*":                                     "html",
	}
	for accept, want := range cases {
		renderer, err := registry.Negotiate(accept, "html")
		if err != nil {
			t.Fatalf("negotiate %q: %v", accept, err)
		}
		if renderer.Name() != want {
			t.Fatalf("accept %q: expected %s, got %s", accept, want, renderer.Name())
		}
	}

	if _, err := registry.Negotiate("text/plain", "missing"); err == nil {
		t.Fatalf("expected error for missing fallback")
	}
}
