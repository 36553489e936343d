package pdf

import (
	"math"
	"strings"
	"sync"
	"unicode"

	"github.com/go-pdf/fpdf"
)

// measurer wraps text on a scratch document using the cp1252 glyph widths
// the page is drawn with. Lines keep the caller's runes; encoding happens at
// draw time. fpdf documents are not safe for concurrent use, hence the mutex.
type measurer struct {
	mu     sync.Mutex
	doc    *fpdf.Fpdf
	cp     codePage
	family string
}

func newMeasurer(family string) *measurer {
	doc := fpdf.New("P", "mm", "A4", "")
	return &measurer{
		doc:    doc,
		cp:     newCodePage(doc),
		family: family,
	}
}

// WrapText implements layout.TextWrapper. Breaks follow fpdf's SplitText:
// at the last space that fits, or mid-word when a word is wider than the
// line, and always at '\n'.
func (m *measurer) WrapText(text string, fontSize, maxWidth float64) []string {
	runes := []rune(strings.TrimRight(strings.ReplaceAll(text, "\r\n", "\n"), "\n"))
	if len(runes) == 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.doc.SetFont(m.family, "", fontSize)
	limit := int(math.Ceil((maxWidth - 2*m.doc.GetCellMargin()) * 1000 / fontSize))

	var lines []string
	start, sep, width := 0, -1, 0
	for i := 0; i < len(runes); {
		r := runes[i]
		width += m.doc.GetStringSymbolWidth(string([]byte{m.cp.encodeRune(r)}))
		if unicode.IsSpace(r) {
			sep = i
		}
		if r != '\n' && width <= limit {
			i++
			continue
		}
		if sep < 0 {
			if i == start {
				i++
			}
			sep = i
		} else {
			i = sep + 1
		}
		lines = append(lines, trimLine(runes[start:sep]))
		start, sep, width = i, -1, 0
	}
	if start < len(runes) {
		lines = append(lines, trimLine(runes[start:]))
	}
	return lines
}

func trimLine(line []rune) string {
	return strings.TrimRight(string(line), " \t")
}
