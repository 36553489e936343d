package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-userdetails/pkg/controller"
	"github.com/goliatone/go-userdetails/pkg/document"
	"github.com/goliatone/go-userdetails/pkg/layout"
	"github.com/goliatone/go-userdetails/pkg/model"
	"github.com/goliatone/go-userdetails/pkg/render"
	"github.com/goliatone/go-userdetails/pkg/renderers/text"
	"github.com/goliatone/go-userdetails/pkg/uischema"
	"github.com/goliatone/go-userdetails/pkg/validation"
)

const (
	actionView     = "view"
	actionDownload = "download"
	actionBack     = "back"
	actionEdit     = "edit"
	actionQuit     = "quit"
)

// Result summarises a finished session.
type Result struct {
	State controller.State
	// Saved lists where each downloaded document was written.
	Saved []string
}

// Renderer drives the form and preview screens from a terminal.
type Renderer struct {
	driver     PromptDriver
	controller *controller.Controller
	saver      document.Saver
	preview    render.Renderer
	rules      validation.Rules
	ui         *uischema.Store
	logger     *zap.Logger
	theme      Theme
}

// New constructs a terminal session around ctrl. Downloads go to the
// working directory unless WithSaver says otherwise.
func New(ctrl *controller.Controller, options ...Option) (*Renderer, error) {
	if ctrl == nil {
		return nil, ErrNilController
	}

	r := &Renderer{
		controller: ctrl,
		saver:      document.FileSaver{Dir: "."},
		preview:    text.New(),
		rules:      validation.DefaultRules(),
		logger:     zap.NewNop(),
		theme:      Theme{ErrorPrefix: "✗ ", InfoPrefix: "✓ "},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	if r.ui == nil {
		store, err := uischema.Default()
		if err != nil {
			return nil, fmt.Errorf("tui: load ui schema: %w", err)
		}
		r.ui = store
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// Run loops over the screens until the user quits. ErrAborted is returned
// when the prompt was interrupted.
func (r *Renderer) Run(ctx context.Context) (Result, error) {
	var result Result
	state := controller.InitialState()
	needInput := true
	showPreview := false

	// done records the latest state on every exit path.
	done := func(err error) (Result, error) {
		result.State = state
		return result, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return done(err)
		}

		if state.IsPreview() {
			if showPreview {
				if err := r.showPreview(ctx, state); err != nil {
					return done(err)
				}
				showPreview = false
			}
			choice, err := r.menu(ctx, controller.ScreenPreview)
			if err != nil {
				return done(err)
			}
			switch choice {
			case actionBack:
				state = r.controller.Back(state)
				needInput = true
			case actionDownload:
				state = r.download(ctx, state, nil, &result)
			case actionQuit:
				return done(nil)
			}
			continue
		}

		if needInput {
			raw, err := r.collect(ctx, state.Input)
			if err != nil {
				return done(err)
			}
			state.Input = raw
			state.Errors = nil
			needInput = false
		}

		choice, err := r.menu(ctx, controller.ScreenForm)
		if err != nil {
			return done(err)
		}
		switch choice {
		case actionView:
			state = r.controller.View(state, state.Input)
			if len(state.Errors) > 0 {
				r.reportErrors(ctx, state.Errors)
				needInput = true
				continue
			}
			showPreview = true
		case actionDownload:
			raw := state.Input
			state = r.download(ctx, state, &raw, &result)
			if len(state.Errors) > 0 {
				needInput = true
			}
		case actionEdit:
			needInput = true
		case actionQuit:
			return done(nil)
		}
	}
}

func (r *Renderer) collect(ctx context.Context, defaults model.RawInput) (model.RawInput, error) {
	raw := defaults
	for _, field := range r.ui.Fields() {
		value, err := r.promptField(ctx, field, defaults.Value(field.Name))
		if err != nil {
			return model.RawInput{}, err
		}
		raw.Set(field.Name, value)
	}
	return raw, nil
}

func (r *Renderer) promptField(ctx context.Context, field uischema.Field, defaultVal string) (string, error) {
	check := func(value string) error {
		return r.rules.Check(field.Name, value)
	}
	help := field.Placeholder

	for {
		var (
			response string
			err      error
		)
		if field.Widget == "textarea" {
			response, err = r.driver.TextArea(ctx, TextAreaConfig{
				Message:   field.Label,
				Default:   defaultVal,
				Help:      help,
				Validator: check,
			})
		} else {
			response, err = r.driver.Input(ctx, InputConfig{
				Message:   field.Label,
				Default:   defaultVal,
				Help:      help,
				Validator: check,
			})
		}
		if err != nil {
			return "", err
		}

		if err := check(response); err != nil {
			_ = r.driver.Info(ctx, r.theme.ErrorPrefix+err.Error())
			defaultVal = response
			continue
		}
		return response, nil
	}
}

func (r *Renderer) menu(ctx context.Context, screen controller.Screen) (string, error) {
	var kinds []string
	if screen == controller.ScreenPreview {
		kinds = []string{actionBack, actionDownload, actionQuit}
	} else {
		kinds = []string{actionView, actionDownload, actionEdit, actionQuit}
	}

	options := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		options = append(options, r.actionLabel(screen, kind))
	}

	title := r.ui.Form().Title
	if screen == controller.ScreenPreview {
		title = r.ui.Preview().Title
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message: title,
		Options: options,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(kinds) {
		return "", fmt.Errorf("%w: %d", ErrInvalidChoice, idx)
	}
	return kinds[idx], nil
}

func (r *Renderer) actionLabel(screen controller.Screen, kind string) string {
	if action, ok := r.ui.Action(string(screen), kind); ok && action.Label != "" {
		return action.Label
	}
	switch kind {
	case actionEdit:
		return "Edit details"
	case actionQuit:
		return "Quit"
	default:
		return strings.ToUpper(kind[:1]) + kind[1:]
	}
}

func (r *Renderer) showPreview(ctx context.Context, state controller.State) error {
	blocks := r.controller.Generator().Blocks(
		*state.Details,
		layout.WithPhoneLabel(r.controller.PhoneLabel(controller.ScreenPreview)),
	)
	out, err := r.preview.Render(ctx, blocks, render.RenderOptions{})
	if err != nil {
		return fmt.Errorf("tui: render preview: %w", err)
	}
	return r.driver.Info(ctx, string(out))
}

func (r *Renderer) download(ctx context.Context, state controller.State, raw *model.RawInput, result *Result) controller.State {
	if action, ok := r.ui.Action(string(state.Screen), actionDownload); ok && action.BusyLabel != "" {
		_ = r.driver.Info(ctx, action.BusyLabel)
	}

	next, artifact := r.controller.Download(ctx, state, raw)
	if len(next.Errors) > 0 {
		r.reportErrors(ctx, next.Errors)
		return next
	}
	if next.LastError != "" {
		_ = r.driver.Info(ctx, r.theme.ErrorPrefix+next.LastError)
		return next
	}

	location := artifact.Filename
	if locator, ok := r.saver.(interface {
		Path(*document.Artifact) string
	}); ok {
		location = locator.Path(artifact)
		if _, err := os.Stat(location); err == nil {
			overwrite, err := r.driver.Confirm(ctx, ConfirmConfig{
				Message: fmt.Sprintf("%s already exists. Overwrite?", location),
			})
			if err != nil && !errors.Is(err, ErrAborted) {
				next.LastError = err.Error()
				return next
			}
			if !overwrite {
				_ = r.driver.Info(ctx, "Download skipped.")
				return next
			}
		}
	}

	if err := r.saver.Save(ctx, artifact); err != nil {
		r.logger.Error("save document failed", zap.String("location", location), zap.Error(err))
		next.LastError = err.Error()
		_ = r.driver.Info(ctx, r.theme.ErrorPrefix+next.LastError)
		return next
	}

	r.logger.Info("document saved",
		zap.String("document_id", artifact.ID),
		zap.String("location", location),
	)
	result.Saved = append(result.Saved, location)
	_ = r.driver.Info(ctx, r.theme.InfoPrefix+"Saved "+location)
	return next
}

func (r *Renderer) reportErrors(ctx context.Context, errs model.FieldErrors) {
	for _, field := range errs.Fields() {
		_ = r.driver.Info(ctx, r.theme.ErrorPrefix+errs[field])
	}
}
