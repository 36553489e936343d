package pdf

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/goliatone/go-userdetails/pkg/layout"
	"github.com/goliatone/go-userdetails/pkg/model"
	"github.com/goliatone/go-userdetails/pkg/render"
)

const lorem = "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat. Duis aute irure dolor in reprehenderit in voluptate velit esse cillum dolore eu fugiat nulla pariatur. Excepteur sint occaecat cupidatat non proident, sunt in culpa qui officia deserunt mollit anim id est laborum. Curabitur pretium tincidunt lacus nulla gravida orcis."

func fixedClock() time.Time {
	return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
}

func newTestRenderer() *Renderer {
	return New(WithCompression(false), WithClock(fixedClock))
}

func TestRender_DrawsEveryLine(t *testing.T) {
	r := newTestRenderer()
	blocks := layout.New().Layout(model.UserDetails{
		Name:  "John Doe",
		Email: "john@example.com",
		Phone: "1234567890",
	})

	out, err := r.Render(context.Background(), blocks, render.RenderOptions{DocumentID: "01HZX0000000000000000000AB"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", out[:8])
	}
	for _, text := range []string{"Personal Details", "Name: John Doe", "Email: john@example.com", "Phone: 1234567890"} {
		if !bytes.Contains(out, []byte("("+text+") Tj")) {
			t.Fatalf("expected %q to be drawn", text)
		}
	}
	if !bytes.Contains(out, []byte("/Keywords (01HZX0000000000000000000AB)")) {
		t.Fatalf("expected document id in metadata")
	}
	if !bytes.Contains(out, []byte("/Count 1")) {
		t.Fatalf("expected a single page")
	}
}

func TestTextWrapper_LongDescriptionFitsWidth(t *testing.T) {
	if len(lorem) < 500 {
		t.Fatalf("fixture too short: %d", len(lorem))
	}
	r := newTestRenderer()
	lines := r.TextWrapper().WrapText(lorem, layout.BodyFontSize, layout.ParagraphWidth)
	if len(lines) < 2 {
		t.Fatalf("expected multiple lines, got %d", len(lines))
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "", layout.BodyFontSize)
	for i, line := range lines {
		if w := doc.GetStringWidth(line); w > layout.ParagraphWidth {
			t.Fatalf("line %d is %.2fmm wide: %q", i, w, line)
		}
	}
	if got := strings.Join(strings.Fields(strings.Join(lines, " ")), " "); got != lorem {
		t.Fatalf("wrapping lost text:\n%s", got)
	}
}

func TestTextWrapper_KeepsLineBreaks(t *testing.T) {
	lines := New().TextWrapper().WrapText("first\r\nsecond", layout.BodyFontSize, layout.ParagraphWidth)
	if len(lines) != 2 || lines[0] != "first" || lines[1] != "second" {
		t.Fatalf("unexpected lines %q", lines)
	}
}

func TestRender_ParagraphAndUnsupportedRunes(t *testing.T) {
	r := newTestRenderer()
	desc := "Café 世界"
	engine := layout.New(layout.WithTextWrapper(r.TextWrapper()))
	blocks := engine.Layout(model.UserDetails{
		Name:        "Jörg Ł",
		Email:       "j@x.com",
		Phone:       "1234567890",
		Description: &desc,
	})

	out, err := r.Render(context.Background(), blocks, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.Contains(out, []byte("(Description:) Tj")) {
		t.Fatalf("expected description label")
	}
	if !bytes.Contains(out, []byte("??) Tj")) {
		t.Fatalf("expected unsupported runes to be replaced")
	}
}

func TestRender_Errors(t *testing.T) {
	r := newTestRenderer()
	if _, err := r.Render(context.Background(), nil, render.RenderOptions{}); !errors.Is(err, render.ErrNoBlocks) {
		t.Fatalf("expected ErrNoBlocks, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	blocks := layout.Layout(model.UserDetails{Name: "a", Email: "a@b.co", Phone: "1234567890"})
	if _, err := r.Render(ctx, blocks, render.RenderOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRendererMetadata(t *testing.T) {
	r := New()
	if r.Name() != "pdf" || r.ContentType() != "application/pdf" {
		t.Fatalf("unexpected metadata %s %s", r.Name(), r.ContentType())
	}
	if r.TextWrapper() != r.TextWrapper() {
		t.Fatalf("expected wrapper to be reused")
	}
}

func TestRender_EncodesWindows1252(t *testing.T) {
	r := newTestRenderer()
	blocks := layout.Layout(model.UserDetails{
		Name:  "€ “quoted” – 日本",
		Email: "j@x.com",
		Phone: "1234567890",
	})

	out, err := r.Render(context.Background(), blocks, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "(Name: \x80 \x93quoted\x94 \x96 ??) Tj"; !bytes.Contains(out, []byte(want)) {
		t.Fatalf("expected %q to be drawn", want)
	}
}

func TestCodePage_Encode(t *testing.T) {
	cp := newCodePage(fpdf.New("P", "mm", "A4", ""))
	tests := map[string]string{
		"plain ascii":   "plain ascii",
		"Café":          "Caf\xe9",
		"€ … — ‘x’":     "\x80 \x85 \x97 \x91x\x92",
		"Łódź 日本":       "?\xf3d? ??",
		"a.b":           "a.b",
		"bad \xff byte": "bad ? byte",
	}
	for in, want := range tests {
		if got := cp.encode(in); got != want {
			t.Errorf("encode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTextWrapper_KeepsOriginalRunes(t *testing.T) {
	lines := New().TextWrapper().WrapText("Preis € 5 – “günstig”", layout.BodyFontSize, layout.ParagraphWidth)
	if len(lines) != 1 || lines[0] != "Preis € 5 – “günstig”" {
		t.Fatalf("unexpected lines %q", lines)
	}
}
