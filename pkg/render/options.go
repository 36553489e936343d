package render

// RenderOptions describe per-document metadata that renderers can embed
// without changing the block sequence.
type RenderOptions struct {
	// DocumentID is a unique identifier recorded in the output metadata when
	// the format supports it.
	DocumentID string
	// Subject optionally names who the document describes.
	Subject string
	// Author is recorded as the document author when set.
	Author string
}
