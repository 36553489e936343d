package vanilla

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-userdetails/pkg/controller"
	"github.com/goliatone/go-userdetails/pkg/model"
	"github.com/goliatone/go-userdetails/pkg/render"
	rendertemplate "github.com/goliatone/go-userdetails/pkg/render/template"
	gotemplate "github.com/goliatone/go-userdetails/pkg/render/template/gotemplate"
	"github.com/goliatone/go-userdetails/pkg/uischema"
)

const pageTemplate = "templates/page.tmpl"

// ErrNoTemplates is returned when the renderer has no template engine.
var ErrNoTemplates = errors.New("vanilla: template renderer is nil")

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	ui               *uischema.Store
	theme            *theme.RendererConfig
	basePath         string
	inlineAssets     bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithUISchema overrides the labels, placeholders, icons and actions.
func WithUISchema(store *uischema.Store) Option {
	return func(cfg *config) {
		if store != nil {
			cfg.ui = store
		}
	}
}

// WithTheme sets the resolved theme whose CSS variables are emitted in the
// page head.
func WithTheme(rc *theme.RendererConfig) Option {
	return func(cfg *config) {
		cfg.theme = rc
	}
}

// WithBasePath prefixes every form action, e.g. "/details".
func WithBasePath(path string) Option {
	return func(cfg *config) {
		cfg.basePath = strings.TrimRight(strings.TrimSpace(path), "/")
	}
}

// WithInlineAssets embeds the stylesheet and script in the page instead of
// linking them through the theme asset resolver.
func WithInlineAssets(inline bool) Option {
	return func(cfg *config) {
		cfg.inlineAssets = inline
	}
}

// Page is the input for one HTML response.
type Page struct {
	State  controller.State
	Hidden map[string]string
}

// Renderer renders the form and preview screens as server-side HTML.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	ui           *uischema.Store
	theme        *theme.RendererConfig
	basePath     string
	inlineAssets bool
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), inlineAssets: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.ui == nil {
		store, err := uischema.Default()
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: load ui schema: %w", err)
		}
		cfg.ui = store
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
			gotemplate.WithGlobals(map[string]any{
				"classes": chromeClasses(),
			}),
			gotemplate.WithFilter("cssvars", filterCSSVars),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:    renderer,
		ui:           cfg.ui,
		theme:        cfg.theme,
		basePath:     cfg.basePath,
		inlineAssets: cfg.inlineAssets,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the page for the state's screen.
func (r *Renderer) Render(ctx context.Context, page Page) ([]byte, error) {
	if r.templates == nil {
		return nil, ErrNoTemplates
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := r.templates.RenderTemplate(pageTemplate, r.view(page))
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) view(page Page) map[string]any {
	state := page.State
	screen := string(state.Screen)
	if !state.IsPreview() {
		screen = string(controller.ScreenForm)
	}

	mapping := render.MapFieldErrors(state.Errors)
	errs := render.MergeFormErrors(mapping.Form, state.LastError)

	title := r.ui.Form().Title
	if screen == string(controller.ScreenPreview) {
		title = r.ui.Preview().Title
	}

	hidden := render.SortedHiddenFields(render.MergeHiddenFields(
		page.Hidden,
		render.Hidden("screen", screen),
	))
	hiddenView := make([]map[string]string, 0, len(hidden))
	for _, field := range hidden {
		hiddenView = append(hiddenView, map[string]string{
			"name":  field.Name,
			"value": field.Value,
		})
	}

	data := map[string]any{
		"title":      title,
		"screen":     screen,
		"base_path":  r.basePath,
		"generating": state.Generating,
		"errors":     errs,
		"hidden":     hiddenView,
		"actions":    r.actions(screen, state.Generating),
		"theme":      r.themeView(),
	}
	if screen == string(controller.ScreenPreview) {
		data["rows"] = r.previewRows(*state.Details)
	} else {
		data["fields"] = r.fields(state.Input, mapping)
	}
	return data
}

func (r *Renderer) fields(input model.RawInput, mapping render.ErrorMapping) []map[string]any {
	fields := r.ui.Fields()
	out := make([]map[string]any, 0, len(fields))
	for _, field := range fields {
		view := map[string]any{
			"name":        field.Name,
			"id":          controlID(field.Name),
			"error_id":    errorID(field.Name),
			"label":       field.Label,
			"placeholder": field.Placeholder,
			"widget":      field.Widget,
			"type":        inputType(field.Widget),
			"icon":        field.Icon,
			"css_class":   sanitizeClassList(field.CSSClass),
			"value":       input.Value(field.Name),
			"error":       mapping.First(field.Name),
		}
		if field.Rows > 0 {
			view["rows"] = strconv.Itoa(field.Rows)
		}
		out = append(out, view)
	}
	return out
}

func (r *Renderer) previewRows(details model.UserDetails) []map[string]any {
	values := details.Raw()
	rows := make([]map[string]any, 0, len(model.FieldOrder))
	for _, name := range model.FieldOrder {
		switch name {
		case model.FieldPosition:
			if !details.HasPosition() {
				continue
			}
		case model.FieldDescription:
			if !details.HasDescription() {
				continue
			}
		}
		rows = append(rows, map[string]any{
			"name":      name,
			"label":     r.ui.PreviewLabel(name),
			"value":     values.Value(name),
			"multiline": name == model.FieldDescription,
		})
	}
	return rows
}

func (r *Renderer) actions(screen string, generating bool) []map[string]any {
	var kinds []string
	if screen == string(controller.ScreenPreview) {
		kinds = []string{"back", "download"}
	} else {
		kinds = []string{"view", "download"}
	}

	out := make([]map[string]any, 0, len(kinds))
	for _, kind := range kinds {
		action, ok := r.ui.Action(screen, kind)
		if !ok {
			action = uischema.Action{Kind: kind, Label: strings.ToUpper(kind[:1]) + kind[1:]}
		}
		label := action.Label
		busy := kind == "download" && generating
		if busy && action.BusyLabel != "" {
			label = action.BusyLabel
		}
		out = append(out, map[string]any{
			"kind":       kind,
			"label":      label,
			"busy_label": action.BusyLabel,
			"icon":       action.Icon,
			"formaction": r.basePath + "/" + kind,
			"disabled":   busy,
		})
	}
	return out
}

func (r *Renderer) themeView() map[string]any {
	view := map[string]any{}
	if r.inlineAssets {
		view["stylesheet_inline"] = readAsset(StylesheetName)
		view["script_inline"] = readAsset(ScriptName)
	}
	if r.theme == nil {
		return view
	}

	cssVars := make(map[string]any, len(r.theme.CSSVars))
	for key, value := range r.theme.CSSVars {
		cssVars[key] = value
	}
	view["name"] = r.theme.Theme
	view["variant"] = r.theme.Variant
	view["cssvars"] = cssVars
	if !r.inlineAssets && r.theme.AssetURL != nil {
		view["stylesheet"] = r.theme.AssetURL("stylesheet")
		view["script"] = r.theme.AssetURL("script")
	}
	return view
}
