package controller

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/goliatone/go-userdetails/pkg/document"
	"github.com/goliatone/go-userdetails/pkg/layout"
	"github.com/goliatone/go-userdetails/pkg/model"
	"github.com/goliatone/go-userdetails/pkg/validation"
)

var (
	// ErrNilGenerator is returned by New without a document generator.
	ErrNilGenerator = errors.New("controller: generator is required")
	// ErrNoInput is recorded when a download is requested from the form
	// without any submitted values.
	ErrNoInput = errors.New("controller: no input to download")
)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for generation outcomes.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithValidator overrides the field validator.
func WithValidator(v *validation.Validator) Option {
	return func(c *Controller) {
		if v != nil {
			c.validator = v
		}
	}
}

// WithPhoneLabel pins the phone label for every download. When unset the
// label follows the screen the download was triggered from.
func WithPhoneLabel(label string) Option {
	return func(c *Controller) {
		c.phoneLabel = label
	}
}

// WithGeneratingHook registers a callback invoked when generation starts and
// again when it finishes, whatever the outcome.
func WithGeneratingHook(fn func(generating bool)) Option {
	return func(c *Controller) {
		c.onGenerating = fn
	}
}

// Controller implements the form/preview state machine. It keeps no state of
// its own; every transition takes and returns a State value.
type Controller struct {
	validator    *validation.Validator
	generator    *document.Generator
	logger       *zap.Logger
	phoneLabel   string
	onGenerating func(bool)
}

// New constructs a Controller.
func New(generator *document.Generator, opts ...Option) (*Controller, error) {
	if generator == nil {
		return nil, ErrNilGenerator
	}
	c := &Controller{
		validator: validation.New(),
		generator: generator,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Generator exposes the document generator.
func (c *Controller) Generator() *document.Generator {
	return c.generator
}

// View validates raw. On success the preview screen carries a fresh record;
// on failure the form stays active with inline errors.
func (c *Controller) View(state State, raw model.RawInput) State {
	details, errs := c.validator.Validate(raw)
	if errs != nil {
		return State{
			Screen: ScreenForm,
			Input:  raw,
			Errors: errs,
		}
	}
	return State{
		Screen:  ScreenPreview,
		Details: &details,
		Input:   raw,
	}
}

// Back returns to an empty form, discarding the previewed record.
func (c *Controller) Back(State) State {
	return InitialState()
}

// PhoneLabel returns the label used for downloads from screen.
func (c *Controller) PhoneLabel(screen Screen) string {
	if c.phoneLabel != "" {
		return c.phoneLabel
	}
	if screen == ScreenPreview {
		return layout.PhoneLabelPreview
	}
	return layout.PhoneLabelForm
}

// Download renders the current record, or validates raw first when called
// from the form. The screen never changes. Failures are logged and recorded
// in LastError; Generating is always false on return.
func (c *Controller) Download(ctx context.Context, state State, raw *model.RawInput) (next State, artifact *document.Artifact) {
	next = state
	next.LastError = ""

	var details model.UserDetails
	switch {
	case state.IsPreview():
		details = *state.Details
	case raw != nil:
		validated, errs := c.validator.Validate(*raw)
		next.Input = *raw
		if errs != nil {
			next.Errors = errs
			return next, nil
		}
		next.Errors = nil
		details = validated
	default:
		next.LastError = ErrNoInput.Error()
		return next, nil
	}

	next.Generating = true
	c.notify(true)
	defer func() {
		next.Generating = false
		c.notify(false)
	}()

	artifact, err := c.generator.Generate(ctx, details, layout.WithPhoneLabel(c.PhoneLabel(state.Screen)))
	if err != nil {
		c.logger.Error("document generation failed",
			zap.String("screen", string(state.Screen)),
			zap.Error(err),
		)
		next.LastError = err.Error()
		return next, nil
	}

	c.logger.Info("document generated",
		zap.String("document_id", artifact.ID),
		zap.String("screen", string(state.Screen)),
		zap.Int("bytes", artifact.Size()),
	)
	return next, artifact
}

func (c *Controller) notify(generating bool) {
	if c.onGenerating != nil {
		c.onGenerating(generating)
	}
}
