package detailsform

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/goliatone/go-userdetails/internal/session"
	"github.com/goliatone/go-userdetails/pkg/controller"
	"github.com/goliatone/go-userdetails/pkg/document"
	"github.com/goliatone/go-userdetails/pkg/model"
	"github.com/goliatone/go-userdetails/pkg/openapi"
	"github.com/goliatone/go-userdetails/pkg/renderers/vanilla"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type server struct {
	opts       Options
	basePath   string
	controller *controller.Controller
	pages      *vanilla.Renderer
	sessions   *session.Store
	contract   *openapi.Contract
	logger     *zap.Logger
}

func (c *Component) handlerFor(basePath string) (http.Handler, error) {
	if c == nil || c.controller == nil {
		return nil, ErrNilController
	}
	basePath = trimBasePath(basePath)

	pages := c.opts.Pages
	if pages == nil {
		built, err := vanilla.New(
			vanilla.WithBasePath(basePath),
			vanilla.WithTheme(c.opts.Theme),
		)
		if err != nil {
			return nil, fmt.Errorf("detailsform: page renderer: %w", err)
		}
		pages = built
	}

	s := &server{
		opts:       c.opts,
		basePath:   basePath,
		controller: c.controller,
		pages:      pages,
		sessions:   c.opts.Sessions,
		contract:   c.opts.Contract,
		logger:     c.opts.Logger,
	}
	return s.router(), nil
}

func (s *server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	if s.opts.Guard != nil {
		r.Use(s.guard)
	}

	r.Get("/", s.handleIndex)
	r.Post("/view", s.handleView)
	r.Post("/back", s.handleBack)
	r.Post("/download", s.handleDownload)
	r.Get("/healthz", s.handleHealth)
	r.Get("/openapi.yaml", s.handleContract)
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServerFS(vanilla.AssetsFS())))

	r.Route("/api", func(r chi.Router) {
		if len(s.opts.AllowedOrigins) > 0 {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: s.opts.AllowedOrigins,
				AllowedMethods: []string{"GET", "POST", "OPTIONS"},
				AllowedHeaders: []string{"Accept", "Content-Type"},
				ExposedHeaders: []string{"Content-Disposition", "X-Document-Id"},
				MaxAge:         300,
			}))
		}
		r.Post("/validate", s.handleValidate)
		r.Post("/layout", s.handleLayout)
		r.Post("/pdf", s.handlePDF)
	})
	return r
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (s *server) guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := s.opts.Guard(r); err != nil {
			writeGuardError(w, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	_, state := s.session(w, r)
	s.writePage(w, r, http.StatusOK, state)
}

func (s *server) handleView(w http.ResponseWriter, r *http.Request) {
	id, state := s.session(w, r)
	raw, err := s.formInput(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	next := s.controller.View(state, raw)
	s.sessions.Put(id, next)

	status := http.StatusOK
	if len(next.Errors) > 0 {
		status = http.StatusUnprocessableEntity
	}
	s.writePage(w, r, status, next)
}

func (s *server) handleBack(w http.ResponseWriter, r *http.Request) {
	id, state := s.session(w, r)
	next := s.controller.Back(state)
	s.sessions.Put(id, next)
	s.writePage(w, r, http.StatusOK, next)
}

func (s *server) handleDownload(w http.ResponseWriter, r *http.Request) {
	id, state := s.session(w, r)

	var raw *model.RawInput
	if !state.IsPreview() {
		input, err := s.formInput(w, r)
		if err != nil {
			writeError(w, err)
			return
		}
		raw = &input
	}

	busy := state
	busy.Generating = true
	s.sessions.Put(id, busy)

	next, artifact := s.controller.Download(r.Context(), state, raw)
	s.sessions.Put(id, next)

	switch {
	case len(next.Errors) > 0:
		s.writePage(w, r, http.StatusUnprocessableEntity, next)
		return
	case artifact == nil:
		s.writePage(w, r, http.StatusInternalServerError, next)
		return
	}

	if err := document.WriteAttachment(w, artifact); err != nil {
		s.logger.Warn("write attachment failed",
			zap.String("document_id", artifact.ID),
			zap.Error(err),
		)
	}
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *server) handleContract(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.contract.Raw())
}

// session returns the visitor's state, starting a new session when the
// cookie is missing or expired.
func (s *server) session(w http.ResponseWriter, r *http.Request) (string, controller.State) {
	if cookie, err := r.Cookie(s.opts.CookieName); err == nil {
		if state, ok := s.sessions.Get(cookie.Value); ok {
			return cookie.Value, state
		}
	}

	id, state := s.sessions.Create()
	path := s.basePath
	if path == "" {
		path = "/"
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    id,
		Path:     path,
		MaxAge:   int(s.sessions.TTL().Seconds()),
		HttpOnly: true,
		Secure:   s.opts.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return id, state
}

func (s *server) formInput(w http.ResponseWriter, r *http.Request) (model.RawInput, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		code := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			code = http.StatusRequestEntityTooLarge
		}
		return model.RawInput{}, StatusError{Code: code, Err: err}
	}

	var raw model.RawInput
	for _, name := range model.FieldOrder {
		raw.Set(name, r.PostForm.Get(name))
	}
	return raw, nil
}

func (s *server) writePage(w http.ResponseWriter, r *http.Request, status int, state controller.State) {
	body, err := s.pages.Render(r.Context(), vanilla.Page{State: state})
	if err != nil {
		s.logger.Error("render page failed",
			zap.String("screen", string(state.Screen)),
			zap.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", s.pages.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
	}
	http.Error(w, http.StatusText(code), code)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}
