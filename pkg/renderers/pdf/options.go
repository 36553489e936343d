package pdf

import "time"

// Option configures the renderer.
type Option func(*Renderer)

// WithFontFamily overrides the core font family (Helvetica, Times, Courier).
func WithFontFamily(family string) Option {
	return func(r *Renderer) {
		if family != "" {
			r.fontFamily = family
		}
	}
}

// WithCreator sets the creator recorded in the document metadata.
func WithCreator(creator string) Option {
	return func(r *Renderer) {
		if creator != "" {
			r.creator = creator
		}
	}
}

// WithCompression toggles stream compression. Disabling it keeps page content
// readable, which tests rely on.
func WithCompression(enabled bool) Option {
	return func(r *Renderer) {
		r.compress = enabled
	}
}

// WithClock injects the time source used for the creation date.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		if now != nil {
			r.now = now
		}
	}
}
