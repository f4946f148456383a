package render_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-loginform/pkg/render"
)

func TestSanitizeNotice(t *testing.T) {
	got := render.SanitizeNotice(`  <p>Use your <strong>work</strong> email.<script>alert(1)</script></p> `)
	if strings.Contains(got, "<script") || strings.Contains(got, "alert(1)") {
		t.Fatalf("script survived sanitisation: %q", got)
	}
	if !strings.Contains(got, "<strong>work</strong>") {
		t.Fatalf("expected inline formatting kept, got %q", got)
	}

	link := render.SanitizeNotice(`<a href="https://example.com/help" onclick="x()">help</a>`)
	if strings.Contains(link, "onclick") {
		t.Fatalf("event handler survived: %q", link)
	}
	if !strings.Contains(link, `rel="nofollow`) {
		t.Fatalf("expected nofollow on links, got %q", link)
	}

	if render.SanitizeNotice("   ") != "" {
		t.Fatalf("expected empty notice")
	}
}
