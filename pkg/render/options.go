package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data renderers use to customise their
// output without touching the form state.
type RenderOptions struct {
	// Action is the URL the form and logout controls post back to. Renderers
	// fall back to an empty action (the current document) when unset.
	Action string
	// Hidden carries inputs emitted alongside the visible controls, most
	// notably the form instance id.
	Hidden map[string]string
	// Title overrides the document title for renderers that produce a full page.
	Title string
	// Notice is operator supplied markup shown above the form. It is passed
	// through SanitizeNotice before any renderer emits it.
	Notice string
	// Theme carries resolved theme tokens and asset lookups.
	Theme *theme.RendererConfig
}

// Instance returns the form instance id carried in the hidden fields.
func (o RenderOptions) Instance() string {
	if len(o.Hidden) == 0 {
		return ""
	}
	return o.Hidden[InstanceFieldName]
}
