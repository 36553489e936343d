package layout

// BlockKind classifies a drawable block.
type BlockKind string

const (
	KindHeading   BlockKind = "heading"
	KindLine      BlockKind = "line"
	KindParagraph BlockKind = "paragraph"
)

// DrawBlock is a single positioned piece of text. Paragraph blocks carry the
// wrapped Lines and advance by LineHeight per line starting at Y.
type DrawBlock struct {
	Kind       BlockKind `json:"kind"`
	Text       string    `json:"text"`
	X          float64   `json:"x"`
	Y          float64   `json:"y"`
	FontSize   float64   `json:"fontSize"`
	Lines      []string  `json:"lines,omitempty"`
	MaxWidth   float64   `json:"maxWidth,omitempty"`
	LineHeight float64   `json:"lineHeight,omitempty"`
}

// LineY returns the baseline of the i-th paragraph line.
func (b DrawBlock) LineY(i int) float64 {
	return b.Y + float64(i)*b.LineHeight
}

// Bottom returns the baseline of the last line in the block.
func (b DrawBlock) Bottom() float64 {
	if b.Kind != KindParagraph || len(b.Lines) == 0 {
		return b.Y
	}
	return b.LineY(len(b.Lines) - 1)
}

// TextWrapper splits text into lines no wider than maxWidth when drawn at
// fontSize. Renderers that measure glyphs implement it.
type TextWrapper interface {
	WrapText(text string, fontSize, maxWidth float64) []string
}

// WrapperFunc adapts a function to TextWrapper.
type WrapperFunc func(text string, fontSize, maxWidth float64) []string

// WrapText implements TextWrapper.
func (fn WrapperFunc) WrapText(text string, fontSize, maxWidth float64) []string {
	return fn(text, fontSize, maxWidth)
}
