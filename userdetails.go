package userdetails

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-userdetails/pkg/controller"
	"github.com/goliatone/go-userdetails/pkg/document"
	"github.com/goliatone/go-userdetails/pkg/layout"
	"github.com/goliatone/go-userdetails/pkg/model"
	"github.com/goliatone/go-userdetails/pkg/render"
	"github.com/goliatone/go-userdetails/pkg/renderers/pdf"
	"github.com/goliatone/go-userdetails/pkg/renderers/text"
	"github.com/goliatone/go-userdetails/pkg/validation"
)

// RawInput is the unvalidated form submission.
type RawInput = model.RawInput

// UserDetails is a validated record.
type UserDetails = model.UserDetails

// FieldErrors maps field names to their validation message.
type FieldErrors = model.FieldErrors

// DrawBlock is a positioned piece of document text.
type DrawBlock = layout.DrawBlock

// State is the per-session screen state.
type State = controller.State

// Artifact is a rendered document.
type Artifact = document.Artifact

// Renderer names registered by NewRegistry.
const (
	RendererPDF  = "pdf"
	RendererText = "text"
)

// Validate checks raw against the default field rules.
func Validate(raw RawInput) (UserDetails, FieldErrors) {
	return validation.Validate(raw)
}

// Layout computes the draw blocks for details with the default engine.
func Layout(details UserDetails) []DrawBlock {
	return layout.Layout(details)
}

// NewRegistry returns a registry holding the PDF and plain-text renderers.
func NewRegistry(pdfOpts ...pdf.Option) *render.Registry {
	registry := render.NewRegistry()
	registry.MustRegister(pdf.New(pdfOpts...))
	registry.MustRegister(text.New())
	return registry
}

// Option configures NewController.
type Option func(*settings)

type settings struct {
	renderer   string
	registry   *render.Registry
	filename   string
	author     string
	phoneLabel string
	compress   bool
	logger     *zap.Logger
	documents  []document.Option
}

// WithRenderer selects the document renderer by name (default "pdf").
func WithRenderer(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.renderer = name
		}
	}
}

// WithRegistry supplies the registry the renderer is looked up in.
func WithRegistry(registry *render.Registry) Option {
	return func(s *settings) {
		if registry != nil {
			s.registry = registry
		}
	}
}

// WithFilename overrides the document filename.
func WithFilename(name string) Option {
	return func(s *settings) {
		s.filename = name
	}
}

// WithAuthor records an author in the document metadata.
func WithAuthor(author string) Option {
	return func(s *settings) {
		s.author = author
	}
}

// WithPhoneLabel pins the phone label for every download.
func WithPhoneLabel(label string) Option {
	return func(s *settings) {
		s.phoneLabel = label
	}
}

// WithCompression toggles PDF stream compression for the default registry.
func WithCompression(enabled bool) Option {
	return func(s *settings) {
		s.compress = enabled
	}
}

// WithLogger sets the logger handed to the controller.
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDocumentOptions forwards extra generator options.
func WithDocumentOptions(opts ...document.Option) Option {
	return func(s *settings) {
		s.documents = append(s.documents, opts...)
	}
}

// NewController wires a renderer, a document generator and the screen
// controller in one call.
func NewController(opts ...Option) (*controller.Controller, error) {
	s := settings{
		renderer: RendererPDF,
		compress: true,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	if s.registry == nil {
		s.registry = NewRegistry(pdf.WithCompression(s.compress))
	}

	renderer, err := s.registry.Get(s.renderer)
	if err != nil {
		return nil, fmt.Errorf("userdetails: %w", err)
	}

	docOpts := append([]document.Option{
		document.WithFilename(s.filename),
		document.WithAuthor(s.author),
	}, s.documents...)
	gen, err := document.NewGenerator(renderer, docOpts...)
	if err != nil {
		return nil, fmt.Errorf("userdetails: %w", err)
	}

	return controller.New(gen,
		controller.WithLogger(s.logger),
		controller.WithPhoneLabel(s.phoneLabel),
	)
}

// GeneratePDF validates raw and renders it with the default PDF renderer.
// Validation failures are returned as FieldErrors.
func GeneratePDF(ctx context.Context, raw RawInput, opts ...Option) (*Artifact, error) {
	ctrl, err := NewController(opts...)
	if err != nil {
		return nil, err
	}
	next, artifact := ctrl.Download(ctx, controller.InitialState(), &raw)
	if len(next.Errors) > 0 {
		return nil, next.Errors
	}
	if artifact == nil {
		return nil, fmt.Errorf("userdetails: %s", next.LastError)
	}
	return artifact, nil
}
