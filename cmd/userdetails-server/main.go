package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-userdetails"
	"github.com/goliatone/go-userdetails/components/detailsform"
	"github.com/goliatone/go-userdetails/internal/config"
	"github.com/goliatone/go-userdetails/internal/logging"
	"github.com/goliatone/go-userdetails/internal/session"
	"github.com/goliatone/go-userdetails/pkg/renderers/vanilla"
)

func main() {
	configFlag := flag.String("config", "", "Optional YAML config file")
	envFlag := flag.String("env-file", ".env", "Optional .env file")
	basePathFlag := flag.String("base-path", "/", "Path the form is mounted under")

	defaults := config.Default()
	defaults.BindFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := config.Load(config.Options{
		File:     *configFlag,
		EnvFiles: []string{*envFlag},
	})
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.ApplyFlags(flag.CommandLine); err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	themes, err := vanilla.NewThemes()
	if err != nil {
		logger.Fatal("themes", zap.Error(err))
	}
	themeConfig, err := themes.Resolve(cfg.Theme.Name, cfg.Theme.Variant, cfg.Theme.Tokens)
	if err != nil {
		logger.Fatal("resolve theme", zap.Error(err))
	}

	ctrl, err := userdetails.NewController(
		userdetails.WithFilename(cfg.Document.Filename),
		userdetails.WithAuthor(cfg.Document.Author),
		userdetails.WithPhoneLabel(cfg.Document.PhoneLabel),
		userdetails.WithCompression(cfg.Document.Compress),
		userdetails.WithLogger(logging.Named(logger, "controller")),
	)
	if err != nil {
		logger.Fatal("controller", zap.Error(err))
	}

	sessions := session.NewStore(session.WithTTL(cfg.Session.TTL))
	component, err := detailsform.New(ctrl,
		detailsform.WithSessions(sessions),
		detailsform.WithCookie(cfg.Session.CookieName, cfg.Session.Secure),
		detailsform.WithAllowedOrigins(cfg.HTTP.AllowedOrigins),
		detailsform.WithTheme(themeConfig),
		detailsform.WithLogger(logging.Named(logger, "http")),
	)
	if err != nil {
		logger.Fatal("component", zap.Error(err))
	}

	mux := http.NewServeMux()
	pattern, err := component.RegisterRoutes(mux, *basePathFlag)
	if err != nil {
		logger.Fatal("register routes", zap.Error(err))
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sweepSessions(ctx, sessions, cfg.Session.TTL, logger)

	logger.Info("listening",
		zap.String("addr", cfg.HTTP.Addr),
		zap.String("mount", pattern),
		zap.String("theme", themeConfig.Theme),
		zap.String("variant", themeConfig.Variant),
	)

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		logger.Fatal("listen", zap.Error(err))
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownGrace)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func sweepSessions(ctx context.Context, store *session.Store, ttl time.Duration, logger *zap.Logger) {
	interval := ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := store.Sweep(); removed > 0 {
				logger.Debug("expired sessions removed", zap.Int("count", removed))
			}
		}
	}
}
