// Package text renders layout blocks as plain text for terminal previews.
package text

import (
	"bytes"
	"context"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-userdetails/pkg/layout"
	"github.com/goliatone/go-userdetails/pkg/render"
)

const defaultColumns = 72

// Option configures the renderer.
type Option func(*Renderer)

// WithColumns sets the terminal width used when wrapping paragraphs.
func WithColumns(columns int) Option {
	return func(r *Renderer) {
		if columns > 0 {
			r.columns = columns
		}
	}
}

// WithIndent sets the prefix applied to paragraph lines.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// Renderer writes one line per block, underlining headings.
type Renderer struct {
	columns int
	indent  string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a text renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{columns: defaultColumns, indent: "  "}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Name implements render.Renderer.
func (r *Renderer) Name() string {
	return "text"
}

// ContentType implements render.Renderer.
func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// FileExtension reports ".txt".
func (r *Renderer) FileExtension() string {
	return ".txt"
}

// Render implements render.Renderer. Paragraph lines that were wrapped for a
// different medium are re-wrapped to the configured column count.
func (r *Renderer) Render(ctx context.Context, blocks []layout.DrawBlock, _ render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return nil, render.ErrNoBlocks
	}

	var buf bytes.Buffer
	for _, block := range blocks {
		switch block.Kind {
		case layout.KindHeading:
			buf.WriteString(block.Text)
			buf.WriteByte('\n')
			buf.WriteString(strings.Repeat("=", utf8.RuneCountInString(block.Text)))
			buf.WriteString("\n\n")
		case layout.KindParagraph:
			for _, line := range r.wrap(block.Text) {
				buf.WriteString(strings.TrimRight(r.indent+line, " "))
				buf.WriteByte('\n')
			}
		default:
			buf.WriteString(block.Text)
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes(), nil
}

func (r *Renderer) wrap(text string) []string {
	width := r.columns - utf8.RuneCountInString(r.indent)
	if width < 1 {
		width = 1
	}
	var out []string
	for _, paragraph := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			if utf8.RuneCountInString(line)+1+utf8.RuneCountInString(word) > width {
				out = append(out, line)
				line = word
				continue
			}
			line += " " + word
		}
		out = append(out, line)
	}
	return out
}
