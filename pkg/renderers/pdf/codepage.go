package pdf

import (
	"unicode/utf8"

	"github.com/go-pdf/fpdf"
)

// codePage encodes text as cp1252 for the core fonts. fpdf's translator
// turns runes it cannot map into '.', so runes are translated one at a time
// and misses become '?'.
type codePage struct {
	translate func(string) string
}

func newCodePage(doc *fpdf.Fpdf) codePage {
	return codePage{translate: doc.UnicodeTranslatorFromDescriptor("")}
}

func (c codePage) encodeRune(r rune) byte {
	switch {
	case r == utf8.RuneError:
		return '?'
	case r < utf8.RuneSelf:
		return byte(r)
	}
	if out := c.translate(string(r)); len(out) == 1 && out != "." {
		return out[0]
	}
	return '?'
}

func (c codePage) encode(s string) string {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		out = append(out, c.encodeRune(r))
	}
	return string(out)
}
