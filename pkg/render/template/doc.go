// Package template defines the renderer-agnostic template seam the HTML
// renderer depends on, so the pongo2 engine can be swapped in tests.
package template
