package render

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Asset keys looked up through RendererConfig.AssetURL.
const (
	AssetStylesheet = "login.stylesheet"
	AssetScript     = "login.script"
)

// DefaultThemeName is the name of the built-in manifest.
const DefaultThemeName = "login"

// DefaultManifest returns the built-in theme: a light base palette and a dark
// variant.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"accent":     "#4f46e5",
			"error":      "#dc2626",
			"success":    "#16a34a",
			"surface":    "#ffffff",
			"text":       "#111827",
			"background": "#f3f4f6",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"surface":    "#1f2937",
					"text":       "#f9fafb",
					"background": "#111827",
				},
			},
		},
	}
}

// ManifestSelector resolves selections from a single in-process manifest.
type ManifestSelector struct {
	Manifest       *theme.Manifest
	DefaultVariant string
}

var _ theme.ThemeSelector = ManifestSelector{}

// ErrUnknownTheme is returned when a selection names another manifest or a
// variant the manifest does not declare.
var ErrUnknownTheme = errors.New("render: unknown theme")

// Select returns the manifest when name is empty or matches, using variant or
// the default variant.
func (s ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	manifest := s.Manifest
	if manifest == nil {
		manifest = DefaultManifest()
	}
	name = strings.TrimSpace(name)
	if name != "" && name != manifest.Name {
		return nil, fmt.Errorf("%w %q", ErrUnknownTheme, name)
	}
	variant = strings.TrimSpace(variant)
	if variant == "" {
		variant = s.DefaultVariant
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w variant %q", ErrUnknownTheme, variant)
		}
	}
	return &theme.Selection{
		Theme:    manifest.Name,
		Variant:  variant,
		Manifest: manifest,
	}, nil
}

// ResolveTheme selects a theme and flattens it into a renderer config: base
// tokens overlaid by variant tokens, a CSS custom property per token, and an
// asset resolver joining the asset prefix with each declared file.
func ResolveTheme(selector theme.ThemeSelector, name, variant string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, nil
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("render: select theme: %w", err)
	}
	if selection == nil || selection.Manifest == nil {
		return nil, nil
	}
	manifest := selection.Manifest

	tokens := mergeStrings(manifest.Tokens, nil)
	partials := mergeStrings(manifest.Templates, nil)
	assets := mergeStrings(manifest.Assets.Files, nil)
	prefix := manifest.Assets.Prefix

	if v, ok := manifest.Variants[selection.Variant]; ok {
		tokens = mergeStrings(tokens, v.Tokens)
		partials = mergeStrings(partials, v.Templates)
		assets = mergeStrings(assets, v.Assets.Files)
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: assetResolver(prefix, assets),
	}, nil
}

// CSSVarsStyle renders CSS custom properties as a deterministic declaration
// list suitable for a :root rule.
func CSSVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteByte(';')
	}
	return b.String()
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	return func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if strings.Contains(file, "://") || strings.HasPrefix(file, "/") || prefix == "" {
			return file
		}
		return path.Join(prefix, file)
	}
}

func mergeStrings(base, overlay map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(overlay))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range overlay {
		out[key] = value
	}
	return out
}
