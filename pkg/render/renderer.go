package render

import (
	"context"
	"errors"

	"github.com/goliatone/go-userdetails/pkg/layout"
)

// ErrNoBlocks is returned when a renderer receives an empty block sequence.
var ErrNoBlocks = errors.New("render: block sequence is empty")

// Renderer converts a block sequence into a byte representation (PDF, text).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, blocks []layout.DrawBlock, options RenderOptions) ([]byte, error)
}

// FileExtender is implemented by renderers whose output has a conventional
// file extension, e.g. ".pdf".
type FileExtender interface {
	FileExtension() string
}

// Measurer is implemented by renderers that can wrap paragraphs using their
// own glyph metrics.
type Measurer interface {
	TextWrapper() layout.TextWrapper
}
