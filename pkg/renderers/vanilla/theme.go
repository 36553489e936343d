package vanilla

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

const (
	DefaultThemeName    = "default"
	DefaultThemeVariant = "light"
)

var (
	ErrUnknownTheme   = errors.New("vanilla: unknown theme")
	ErrUnknownVariant = errors.New("vanilla: unknown theme variant")
)

// DefaultManifest describes the built-in theme. Variants only override the
// surface colours.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"ud-accent":          "#16a34a",
			"ud-accent-contrast": "#ffffff",
			"ud-surface":         "#ffffff",
			"ud-background":      "#f3f4f6",
			"ud-text":            "#111827",
			"ud-muted":           "#6b7280",
			"ud-border":          "#d1d5db",
			"ud-error":           "#dc2626",
			"ud-radius":          "0.5rem",
		},
		Assets: theme.Assets{
			Prefix: "/assets",
			Files: map[string]string{
				"stylesheet": StylesheetName,
				"script":     ScriptName,
			},
		},
		Variants: map[string]theme.Variant{
			"light": {
				Tokens: map[string]string{
					"ud-surface":    "#ffffff",
					"ud-background": "#f3f4f6",
				},
			},
			"dark": {
				Tokens: map[string]string{
					"ud-surface":    "#1f2937",
					"ud-background": "#111827",
					"ud-text":       "#f9fafb",
					"ud-muted":      "#9ca3af",
					"ud-border":     "#374151",
				},
			},
		},
	}
}

// Themes holds the registered manifests and resolves them into renderer
// configuration.
type Themes struct {
	provider  theme.ThemeProvider
	manifests map[string]*theme.Manifest
}

// NewThemes registers the manifests with a go-theme registry. The default
// manifest is used when none are given.
func NewThemes(manifests ...*theme.Manifest) (*Themes, error) {
	if len(manifests) == 0 {
		manifests = []*theme.Manifest{DefaultManifest()}
	}

	registry := theme.NewRegistry()
	themes := &Themes{
		provider:  registry,
		manifests: make(map[string]*theme.Manifest, len(manifests)),
	}
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("vanilla: register theme %q: %w", manifest.Name, err)
		}
		themes.manifests[manifest.Name] = manifest
	}
	return themes, nil
}

// Provider exposes the underlying go-theme provider.
func (t *Themes) Provider() theme.ThemeProvider {
	return t.provider
}

// Names lists registered theme names in sorted order.
func (t *Themes) Names() []string {
	names := make([]string, 0, len(t.manifests))
	for name := range t.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve merges base tokens, variant tokens and overrides (in that order)
// into a RendererConfig. Every token is also exposed as a "--" CSS custom
// property.
func (t *Themes) Resolve(name, variant string, overrides map[string]string) (*theme.RendererConfig, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultThemeName
	}
	manifest, ok := t.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}

	variant = strings.TrimSpace(variant)
	var selected theme.Variant
	if variant != "" {
		selected, ok = manifest.Variants[variant]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
		}
	}

	tokens := mergeTokens(manifest.Tokens, selected.Tokens, trimDashes(overrides))
	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	return &theme.RendererConfig{
		Theme:    manifest.Name,
		Variant:  variant,
		Partials: mergeTokens(manifest.Templates, selected.Templates),
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: assetResolver(manifest.Assets, selected.Assets),
	}, nil
}

func mergeTokens(layers ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, layer := range layers {
		for key, value := range layer {
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			out[key] = value
		}
	}
	return out
}

func trimDashes(tokens map[string]string) map[string]string {
	out := make(map[string]string, len(tokens))
	for key, value := range tokens {
		out[strings.TrimPrefix(strings.TrimSpace(key), "--")] = value
	}
	return out
}

func assetResolver(base, variant theme.Assets) func(string) string {
	prefix := strings.TrimRight(base.Prefix, "/")
	if variant.Prefix != "" {
		prefix = strings.TrimRight(variant.Prefix, "/")
	}
	files := mergeTokens(base.Files, variant.Files)
	return func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if prefix == "" {
			return file
		}
		return prefix + "/" + strings.TrimLeft(file, "/")
	}
}
