package pdf

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/goliatone/go-userdetails/pkg/layout"
	"github.com/goliatone/go-userdetails/pkg/render"
)

const (
	// ContentType is the MIME type of rendered output.
	ContentType = "application/pdf"

	defaultFontFamily = "Helvetica"
	defaultCreator    = "go-userdetails"
)

// Renderer draws block sequences with fpdf.
type Renderer struct {
	fontFamily string
	creator    string
	compress   bool
	now        func() time.Time

	wrapOnce sync.Once
	wrapper  *measurer
}

var _ render.Renderer = (*Renderer)(nil)
var _ render.Measurer = (*Renderer)(nil)

// New constructs a PDF renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		fontFamily: defaultFontFamily,
		creator:    defaultCreator,
		compress:   true,
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Name implements render.Renderer.
func (r *Renderer) Name() string {
	return "pdf"
}

// ContentType implements render.Renderer.
func (r *Renderer) ContentType() string {
	return ContentType
}

// FileExtension reports ".pdf".
func (r *Renderer) FileExtension() string {
	return ".pdf"
}

// TextWrapper returns a wrapper that measures text with this renderer's font.
func (r *Renderer) TextWrapper() layout.TextWrapper {
	r.wrapOnce.Do(func() {
		r.wrapper = newMeasurer(r.fontFamily)
	})
	return r.wrapper
}

// Render draws every block onto one A4 page and returns the encoded document.
func (r *Renderer) Render(ctx context.Context, blocks []layout.DrawBlock, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return nil, render.ErrNoBlocks
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCompression(r.compress)
	doc.SetCreationDate(r.now())
	doc.SetTitle(documentTitle(blocks), true)
	doc.SetCreator(r.creator, false)
	if opts.DocumentID != "" {
		doc.SetKeywords(opts.DocumentID, false)
	}
	if opts.Subject != "" {
		doc.SetSubject(opts.Subject, true)
	}
	if opts.Author != "" {
		doc.SetAuthor(opts.Author, true)
	}
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	cp := newCodePage(doc)
	wrapper := r.TextWrapper()

	for _, block := range blocks {
		doc.SetFont(r.fontFamily, "", block.FontSize)
		switch block.Kind {
		case layout.KindParagraph:
			lines := block.Lines
			if len(lines) == 0 {
				lines = wrapper.WrapText(block.Text, block.FontSize, block.MaxWidth)
			}
			lineHeight := block.LineHeight
			if lineHeight <= 0 {
				lineHeight = layout.LineHeight(block.FontSize)
			}
			for i, line := range lines {
				doc.Text(block.X, block.Y+float64(i)*lineHeight, cp.encode(line))
			}
		default:
			doc.Text(block.X, block.Y, cp.encode(block.Text))
		}
	}

	if doc.Err() {
		return nil, fmt.Errorf("pdf: render: %w", doc.Error())
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: output: %w", err)
	}
	return buf.Bytes(), nil
}

func documentTitle(blocks []layout.DrawBlock) string {
	for _, block := range blocks {
		if block.Kind == layout.KindHeading && block.Text != "" {
			return block.Text
		}
	}
	return layout.Title
}
