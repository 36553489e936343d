package gotemplate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-userdetails/pkg/render/template"
)

// ErrNoTemplates is returned by New when no template source was given.
var ErrNoTemplates = errors.New("gotemplate: templates fs is required")

const setName = "userdetails"

// Option configures New.
type Option func(*settings)

type settings struct {
	files     fs.FS
	extension string
	globals   pongo2.Context
	filters   map[string]pongo2.FilterFunction
}

// WithFS sets the template source.
func WithFS(files fs.FS) Option {
	return func(s *settings) {
		s.files = files
	}
}

// WithExtension sets the extension appended to names given without one.
func WithExtension(ext string) Option {
	return func(s *settings) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		s.extension = ext
	}
}

// WithGlobals adds values visible to every template of the engine.
func WithGlobals(values map[string]any) Option {
	return func(s *settings) {
		for key, value := range values {
			s.globals[key] = value
		}
	}
}

// WithFilter registers fn as a pongo2 filter. pongo2 filters are process
// wide: the first registration of a name wins.
func WithFilter(name string, fn pongo2.FilterFunction) Option {
	return func(s *settings) {
		if name = strings.TrimSpace(name); name != "" && fn != nil {
			s.filters[name] = fn
		}
	}
}

// Engine executes templates from one pongo2 template set. Compiled
// templates are cached by the set.
type Engine struct {
	set       *pongo2.TemplateSet
	extension string
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an Engine. WithFS is required.
func New(options ...Option) (*Engine, error) {
	s := settings{
		extension: ".tmpl",
		globals:   pongo2.Context{},
		filters:   map[string]pongo2.FilterFunction{},
	}
	for _, opt := range options {
		if opt != nil {
			opt(&s)
		}
	}
	if s.files == nil {
		return nil, ErrNoTemplates
	}

	for name, fn := range s.filters {
		if pongo2.FilterExists(name) {
			continue
		}
		if err := pongo2.RegisterFilter(name, fn); err != nil {
			return nil, fmt.Errorf("gotemplate: register filter %q: %w", name, err)
		}
	}

	set := pongo2.NewSet(setName, pongo2.NewFSLoader(s.files))
	set.Globals.Update(s.globals)

	return &Engine{set: set, extension: s.extension}, nil
}

// RenderTemplate executes the template at name with data as its context.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	if !strings.HasSuffix(name, e.extension) {
		name += e.extension
	}

	tmpl, err := e.set.FromCache(name)
	if err != nil {
		return "", fmt.Errorf("gotemplate: load %q: %w", name, err)
	}
	ctx, err := contextFrom(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: %q context: %w", name, err)
	}
	rendered, err := tmpl.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute %q: %w", name, err)
	}

	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

// contextFrom passes maps through and decodes anything else from its JSON
// form, so struct fields are addressed by their json names.
func contextFrom(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return v, nil
	case map[string]any:
		return pongo2.Context(v), nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	ctx := pongo2.Context{}
	if err := json.Unmarshal(raw, &ctx); err != nil {
		return nil, err
	}
	return ctx, nil
}
