package template

import "io"

// TemplateRenderer executes named templates for the HTML screens. The
// rendered text is returned and also copied to every writer in out.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
