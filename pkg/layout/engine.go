package layout

import (
	"strings"

	"github.com/goliatone/go-userdetails/pkg/model"
)

// Fixed page geometry in millimetres.
const (
	Title          = "Personal Details"
	MarginX        = 20.0
	HeadingY       = 30.0
	BodyStartY     = 60.0
	LineAdvance    = 15.0
	LabelAdvance   = 10.0
	ParagraphWidth = 170.0

	HeadingFontSize = 20.0
	BodyFontSize    = 12.0

	// LineHeightFactor is applied to the font size to derive paragraph line
	// spacing.
	LineHeightFactor = 1.15
)

// Phone labels used by the two screens.
const (
	PhoneLabelForm    = "Phone"
	PhoneLabelPreview = "Phone Number"
)

const pointsPerMillimetre = 72.0 / 25.4

// Option customises an Engine.
type Option func(*Engine)

// WithPhoneLabel overrides the label printed before the phone number.
func WithPhoneLabel(label string) Option {
	return func(e *Engine) {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			e.phoneLabel = trimmed
		}
	}
}

// WithTextWrapper sets the wrapper used for the description paragraph.
func WithTextWrapper(wrapper TextWrapper) Option {
	return func(e *Engine) {
		if wrapper != nil {
			e.wrapper = wrapper
		}
	}
}

// Engine produces block sequences. It holds no per-call state and is safe for
// concurrent use when its TextWrapper is.
type Engine struct {
	phoneLabel string
	wrapper    TextWrapper
}

// New constructs an Engine using the form-screen phone label.
func New(opts ...Option) *Engine {
	e := &Engine{phoneLabel: PhoneLabelForm}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// PhoneLabel reports the configured phone label.
func (e *Engine) PhoneLabel() string {
	return e.phoneLabel
}

// With returns a copy of the engine with additional options applied.
func (e *Engine) With(opts ...Option) *Engine {
	clone := *e
	for _, opt := range opts {
		if opt != nil {
			opt(&clone)
		}
	}
	return &clone
}

// Layout emits the heading, the three required lines, and the optional
// position and description blocks in drawing order.
func (e *Engine) Layout(details model.UserDetails) []DrawBlock {
	blocks := make([]DrawBlock, 0, 7)
	blocks = append(blocks, DrawBlock{
		Kind:     KindHeading,
		Text:     Title,
		X:        MarginX,
		Y:        HeadingY,
		FontSize: HeadingFontSize,
	})

	y := BodyStartY
	line := func(text string) {
		blocks = append(blocks, DrawBlock{
			Kind:     KindLine,
			Text:     text,
			X:        MarginX,
			Y:        y,
			FontSize: BodyFontSize,
		})
	}

	line("Name: " + details.Name)
	y += LineAdvance
	line("Email: " + details.Email)
	y += LineAdvance
	line(e.phoneLabel + ": " + details.Phone)
	y += LineAdvance

	if details.HasPosition() {
		line("Position: " + *details.Position)
		y += LineAdvance
	}

	if details.HasDescription() {
		line("Description:")
		y += LabelAdvance
		blocks = append(blocks, DrawBlock{
			Kind:       KindParagraph,
			Text:       *details.Description,
			X:          MarginX,
			Y:          y,
			FontSize:   BodyFontSize,
			Lines:      e.wrap(*details.Description),
			MaxWidth:   ParagraphWidth,
			LineHeight: LineHeight(BodyFontSize),
		})
	}

	return blocks
}

func (e *Engine) wrap(text string) []string {
	if e.wrapper != nil {
		return e.wrapper.WrapText(text, BodyFontSize, ParagraphWidth)
	}
	return strings.Split(text, "\n")
}

// LineHeight converts a font size in points into paragraph line spacing in
// millimetres.
func LineHeight(fontSize float64) float64 {
	return fontSize * LineHeightFactor / pointsPerMillimetre
}

// Layout lays out details with a default engine.
func Layout(details model.UserDetails) []DrawBlock {
	return New().Layout(details)
}
