package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/goliatone/go-userdetails"
	"github.com/goliatone/go-userdetails/internal/config"
	"github.com/goliatone/go-userdetails/internal/logging"
	"github.com/goliatone/go-userdetails/pkg/controller"
	"github.com/goliatone/go-userdetails/pkg/document"
	"github.com/goliatone/go-userdetails/pkg/model"
	"github.com/goliatone/go-userdetails/pkg/renderers/tui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

type fieldFlags struct {
	values map[string]*string
}

func bindFieldFlags(fs *flag.FlagSet) fieldFlags {
	usage := map[string]string{
		model.FieldName:        "Full name",
		model.FieldEmail:       "Email address",
		model.FieldPhone:       "Phone number (at least 10 characters)",
		model.FieldPosition:    "Optional position",
		model.FieldDescription: "Optional description; \\n starts a new line",
	}
	f := fieldFlags{values: make(map[string]*string, len(model.FieldOrder))}
	for _, name := range model.FieldOrder {
		f.values[name] = fs.String(name, "", usage[name])
	}
	return f
}

// raw reports the submitted input and whether any field flag was given.
func (f fieldFlags) raw(fs *flag.FlagSet) (model.RawInput, bool) {
	var raw model.RawInput
	given := false
	fs.Visit(func(fl *flag.Flag) {
		if value, ok := f.values[fl.Name]; ok {
			raw.Set(fl.Name, unescapeNewlines(*value))
			given = true
		}
	})
	return raw, given
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("userdetails-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configFlag := fs.String("config", "", "Optional YAML config file")
	envFlag := fs.String("env-file", ".env", "Optional .env file")
	formatFlag := fs.String("format", userdetails.RendererPDF, "Document renderer (pdf, text)")
	verboseFlag := fs.Bool("verbose", false, "Log generation events to stderr")
	fields := bindFieldFlags(fs)

	defaults := config.Default()
	defaults.BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(config.Options{File: *configFlag, EnvFiles: []string{*envFlag}})
	if err == nil {
		err = cfg.ApplyFlags(fs)
	}
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}

	logger := zap.NewNop()
	if *verboseFlag {
		logger, err = logging.New(cfg.Log.Level, "console")
		if err != nil {
			fmt.Fprintf(stderr, "logging: %v\n", err)
			return 1
		}
		defer func() { _ = logger.Sync() }()
	}

	ctrl, err := userdetails.NewController(
		userdetails.WithRenderer(*formatFlag),
		userdetails.WithFilename(cfg.Document.Filename),
		userdetails.WithAuthor(cfg.Document.Author),
		userdetails.WithPhoneLabel(cfg.Document.PhoneLabel),
		userdetails.WithCompression(cfg.Document.Compress),
		userdetails.WithLogger(logging.Named(logger, "controller")),
	)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	saver := document.FileSaver{Dir: cfg.Document.OutputDir}

	if raw, ok := fields.raw(fs); ok {
		return generate(ctx, ctrl, saver, raw, stdout, stderr)
	}

	session, err := tui.New(ctrl,
		tui.WithPromptDriver(tui.NewSurveyDriver(stdout)),
		tui.WithSaver(saver),
		tui.WithLogger(logging.Named(logger, "tui")),
	)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	if _, err := session.Run(ctx); err != nil {
		if errors.Is(err, tui.ErrAborted) || errors.Is(err, context.Canceled) {
			return 130
		}
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	return 0
}

// generate validates raw and writes the document without prompting.
func generate(ctx context.Context, ctrl *controller.Controller, saver document.FileSaver, raw model.RawInput, stdout, stderr io.Writer) int {
	next, artifact := ctrl.Download(ctx, controller.InitialState(), &raw)
	if len(next.Errors) > 0 {
		for _, field := range next.Errors.Fields() {
			fmt.Fprintf(stderr, "%s: %s\n", field, next.Errors[field])
		}
		return 1
	}
	if artifact == nil {
		fmt.Fprintf(stderr, "%s\n", next.LastError)
		return 1
	}
	if err := saver.Save(ctx, artifact); err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "Saved %s\n", saver.Path(artifact))
	return 0
}

func unescapeNewlines(value string) string {
	out := make([]rune, 0, len(value))
	runes := []rune(value)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '\\' && i+1 < len(runes) && runes[i+1] == 'n' {
			out = append(out, '\n')
			i++
			continue
		}
		out = append(out, runes[i])
	}
	return string(out)
}
