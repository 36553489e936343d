// Package pdf renders layout blocks into a single-page A4 PDF using the
// standard Helvetica font.
//
// Only the 256 code points covered by the core font metrics are drawn; other
// characters are replaced with '?' before measuring so wrapping and drawing
// agree. The renderer also exposes a layout.TextWrapper backed by the same
// metrics, which the layout engine uses to wrap the description paragraph.
package pdf
