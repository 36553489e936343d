package document

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-userdetails/internal/ids"
	"github.com/goliatone/go-userdetails/pkg/layout"
	"github.com/goliatone/go-userdetails/pkg/model"
	"github.com/goliatone/go-userdetails/pkg/render"
)

// DefaultFilename is used when no filename option is supplied. Its
// extension follows the renderer's, see NewGenerator.
const DefaultFilename = "user-details.pdf"

// ErrNilRenderer is returned when a generator is built without a renderer.
var ErrNilRenderer = errors.New("document: renderer is required")

// Artifact is a rendered document ready to be saved.
type Artifact struct {
	ID          string
	Filename    string
	ContentType string
	Body        []byte
	CreatedAt   time.Time
}

// Size returns the body length in bytes.
func (a *Artifact) Size() int {
	if a == nil {
		return 0
	}
	return len(a.Body)
}

// Option configures a Generator.
type Option func(*Generator)

// WithEngine replaces the layout engine. A text wrapper from the renderer is
// still applied on top when available.
func WithEngine(engine *layout.Engine) Option {
	return func(g *Generator) {
		if engine != nil {
			g.engine = engine
		}
	}
}

// WithFilename overrides the artifact filename.
func WithFilename(name string) Option {
	return func(g *Generator) {
		if name != "" {
			g.filename = name
		}
	}
}

// WithIDSource overrides document id generation.
func WithIDSource(fn func() string) Option {
	return func(g *Generator) {
		if fn != nil {
			g.newID = fn
		}
	}
}

// WithClock overrides the time source recorded on artifacts.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithAuthor records an author in the rendered metadata.
func WithAuthor(author string) Option {
	return func(g *Generator) {
		g.author = author
	}
}

// Generator lays out details and renders them.
type Generator struct {
	engine   *layout.Engine
	renderer render.Renderer
	filename string
	author   string
	newID    func() string
	now      func() time.Time
}

// NewGenerator constructs a Generator for renderer.
func NewGenerator(renderer render.Renderer, opts ...Option) (*Generator, error) {
	if renderer == nil {
		return nil, ErrNilRenderer
	}
	g := &Generator{
		engine:   layout.New(),
		renderer: renderer,
		filename: DefaultFilename,
		newID:    ids.New,
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	if ext, ok := renderer.(render.FileExtender); ok {
		g.filename = withExtension(g.filename, ext.FileExtension())
	}
	if measurer, ok := renderer.(render.Measurer); ok {
		g.engine = g.engine.With(layout.WithTextWrapper(measurer.TextWrapper()))
	}
	return g, nil
}

// withExtension swaps the extension of name for ext so a text document is
// never saved as "user-details.pdf".
func withExtension(name, ext string) string {
	if ext == "" || strings.EqualFold(filepath.Ext(name), ext) {
		return name
	}
	return strings.TrimSuffix(name, filepath.Ext(name)) + ext
}

// Renderer returns the configured renderer.
func (g *Generator) Renderer() render.Renderer {
	return g.renderer
}

// Blocks lays out details without rendering, applying per-call layout
// options such as the phone label.
func (g *Generator) Blocks(details model.UserDetails, opts ...layout.Option) []layout.DrawBlock {
	engine := g.engine
	if len(opts) > 0 {
		engine = engine.With(opts...)
	}
	return engine.Layout(details)
}

// Generate lays out and renders details.
func (g *Generator) Generate(ctx context.Context, details model.UserDetails, opts ...layout.Option) (*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id := g.newID()
	blocks := g.Blocks(details, opts...)
	body, err := g.renderer.Render(ctx, blocks, render.RenderOptions{
		DocumentID: id,
		Subject:    details.Name,
		Author:     g.author,
	})
	if err != nil {
		return nil, fmt.Errorf("document: render %s: %w", g.renderer.Name(), err)
	}
	return &Artifact{
		ID:          id,
		Filename:    g.filename,
		ContentType: g.renderer.ContentType(),
		Body:        body,
		CreatedAt:   g.now(),
	}, nil
}
