package tui

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-userdetails/pkg/document"
	"github.com/goliatone/go-userdetails/pkg/render"
	"github.com/goliatone/go-userdetails/pkg/uischema"
	"github.com/goliatone/go-userdetails/pkg/validation"
)

// Theme captures optional formatting hints the flow applies when printing
// messages. Keep minimal to avoid coupling flow logic to ANSI specifics.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithSaver sets where downloaded documents are written.
func WithSaver(saver document.Saver) Option {
	return func(r *Renderer) {
		if saver != nil {
			r.saver = saver
		}
	}
}

// WithPreviewRenderer sets the renderer used to print the preview screen.
func WithPreviewRenderer(preview render.Renderer) Option {
	return func(r *Renderer) {
		if preview != nil {
			r.preview = preview
		}
	}
}

// WithRules overrides the per-field prompt validation.
func WithRules(rules validation.Rules) Option {
	return func(r *Renderer) {
		if len(rules) > 0 {
			r.rules = rules
		}
	}
}

// WithUISchema overrides prompt labels, help text and menu labels.
func WithUISchema(store *uischema.Store) Option {
	return func(r *Renderer) {
		if store != nil {
			r.ui = store
		}
	}
}

// WithLogger sets the logger used for save outcomes.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}
