package detailsform

import (
	"net/http"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-userdetails/internal/session"
	"github.com/goliatone/go-userdetails/pkg/openapi"
	"github.com/goliatone/go-userdetails/pkg/renderers/vanilla"
)

const (
	DefaultCookieName   = "ud_session"
	DefaultMaxBodyBytes = 64 << 10
)

// GuardFunc rejects a request before it reaches a handler. Returning an
// HTTPError selects the response status.
type GuardFunc func(r *http.Request) error

type Options struct {
	BasePath       string
	CookieName     string
	CookieSecure   bool
	AllowedOrigins []string
	MaxBodyBytes   int64
	Guard          GuardFunc

	// Theme is handed to the page renderer built by the component. It is
	// ignored when Pages is set.
	Theme *theme.RendererConfig
	Pages *vanilla.Renderer

	Sessions *session.Store
	Contract *openapi.Contract
	Logger   *zap.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		CookieName:   DefaultCookieName,
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.AllowedOrigins != nil {
		opts.AllowedOrigins = append([]string{}, opts.AllowedOrigins...)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return opts
}

func WithBasePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.BasePath = path
	}
}

func WithCookie(name string, secure bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.CookieName = name
		o.CookieSecure = secure
	}
}

// WithAllowedOrigins enables CORS on the /api routes for the given origins.
func WithAllowedOrigins(origins []string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		if origins == nil {
			o.AllowedOrigins = nil
			return
		}
		o.AllowedOrigins = append([]string{}, origins...)
	}
}

func WithMaxBodyBytes(limit int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodyBytes = limit
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithTheme(rc *theme.RendererConfig) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Theme = rc
	}
}

// WithPages replaces the page renderer. The caller is responsible for
// configuring it with the same base path the component is mounted under.
func WithPages(pages *vanilla.Renderer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Pages = pages
	}
}

func WithSessions(store *session.Store) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Sessions = store
	}
}

func WithContract(contract *openapi.Contract) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Contract = contract
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}
