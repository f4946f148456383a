package loginform

import (
	"io/fs"

	"github.com/goliatone/go-loginform/pkg/renderers/html"
)

// AssetsFS exposes the stylesheet and the inline-validation script so Go
// applications can serve them without importing the renderer package.
//
// Typical mount:
//
//	mux.Handle("/login/assets/",
//	  http.StripPrefix("/login/assets/",
//	    http.FileServerFS(loginform.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return html.AssetsFS()
}

// EmbeddedTemplates exposes the built-in HTML templates so callers can reuse
// or extend them.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}
