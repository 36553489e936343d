package detailsform

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/goliatone/go-userdetails/internal/session"
	"github.com/goliatone/go-userdetails/pkg/controller"
	"github.com/goliatone/go-userdetails/pkg/openapi"
)

// ErrNilController is returned by New without a controller.
var ErrNilController = errors.New("detailsform: controller is required")

// Component bundles the controller, session store and API contract behind
// a single mountable handler.
type Component struct {
	opts       Options
	controller *controller.Controller
}

// New constructs a component around ctrl. A session store and the embedded
// API contract are created unless supplied through options.
func New(ctrl *controller.Controller, fns ...OptionFn) (*Component, error) {
	if ctrl == nil {
		return nil, ErrNilController
	}
	opts := NewOptions(fns...)
	if opts.Sessions == nil {
		opts.Sessions = session.NewStore()
	}
	if opts.Contract == nil {
		contract, err := openapi.Default()
		if err != nil {
			return nil, fmt.Errorf("detailsform: load api contract: %w", err)
		}
		opts.Contract = contract
	}
	return &Component{opts: opts, controller: ctrl}, nil
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Sessions exposes the session store, e.g. for a periodic Sweep.
func (c *Component) Sessions() *session.Store {
	return c.opts.Sessions
}

// Handler returns the router for the configured base path.
func (c *Component) Handler() (http.Handler, error) {
	return c.handlerFor(c.opts.BasePath)
}

// RegisterRoutes mounts the component under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if c == nil {
		return "", ErrNilController
	}
	return registerRoutes(mux, basePath, c.handlerFor)
}
