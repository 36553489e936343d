package document

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-userdetails/pkg/layout"
	"github.com/goliatone/go-userdetails/pkg/model"
	"github.com/goliatone/go-userdetails/pkg/render"
)

type recordingRenderer struct {
	blocks []layout.DrawBlock
	opts   render.RenderOptions
	err    error
	wrap   layout.TextWrapper
}

func (r *recordingRenderer) Name() string        { return "recording" }
func (r *recordingRenderer) ContentType() string { return "application/x-test" }
func (r *recordingRenderer) Render(_ context.Context, blocks []layout.DrawBlock, opts render.RenderOptions) ([]byte, error) {
	r.blocks = blocks
	r.opts = opts
	if r.err != nil {
		return nil, r.err
	}
	return []byte("rendered"), nil
}

type measuringRenderer struct {
	recordingRenderer
}

func (m *measuringRenderer) TextWrapper() layout.TextWrapper { return m.wrap }

type textRenderer struct {
	recordingRenderer
}

func (textRenderer) FileExtension() string { return ".txt" }

func details() model.UserDetails {
	desc := "a b c"
	return model.UserDetails{Name: "John Doe", Email: "john@example.com", Phone: "1234567890", Description: &desc}
}

func TestNewGenerator_RequiresRenderer(t *testing.T) {
	if _, err := NewGenerator(nil); !errors.Is(err, ErrNilRenderer) {
		t.Fatalf("expected ErrNilRenderer, got %v", err)
	}
}

func TestGenerate(t *testing.T) {
	rec := &recordingRenderer{}
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	gen, err := NewGenerator(rec,
		WithIDSource(func() string { return "DOC1" }),
		WithClock(func() time.Time { return created }),
		WithAuthor("tester"),
	)
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}

	artifact, err := gen.Generate(context.Background(), details(), layout.WithPhoneLabel(layout.PhoneLabelPreview))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	want := &Artifact{
		ID:          "DOC1",
		Filename:    DefaultFilename,
		ContentType: "application/x-test",
		Body:        []byte("rendered"),
		CreatedAt:   created,
	}
	if diff := cmp.Diff(want, artifact); diff != "" {
		t.Fatalf("artifact mismatch (-want +got):\n%s", diff)
	}
	if rec.opts != (render.RenderOptions{DocumentID: "DOC1", Subject: "John Doe", Author: "tester"}) {
		t.Fatalf("unexpected render options %+v", rec.opts)
	}
	if rec.blocks[3].Text != "Phone Number: 1234567890" {
		t.Fatalf("per-call phone label not applied: %q", rec.blocks[3].Text)
	}
	if gen.Blocks(details())[3].Text != "Phone: 1234567890" {
		t.Fatalf("per-call option leaked into generator")
	}
}

func TestGenerate_UsesRendererWrapper(t *testing.T) {
	rec := &measuringRenderer{}
	rec.wrap = layout.WrapperFunc(func(string, float64, float64) []string { return []string{"wrapped"} })
	gen, err := NewGenerator(rec)
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	blocks := gen.Blocks(details())
	if diff := cmp.Diff([]string{"wrapped"}, blocks[len(blocks)-1].Lines); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_WrapsRenderError(t *testing.T) {
	boom := errors.New("boom")
	gen, _ := NewGenerator(&recordingRenderer{err: boom})
	if _, err := gen.Generate(context.Background(), details()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped render error, got %v", err)
	}
}

func TestFileSaver(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	saver := FileSaver{Dir: dir}
	artifact := &Artifact{Filename: DefaultFilename, Body: []byte("%PDF-test")}

	if err := saver.Save(context.Background(), artifact); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(dir, DefaultFilename))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "%PDF-test" {
		t.Fatalf("unexpected contents %q", got)
	}
	if err := saver.Save(context.Background(), nil); !errors.Is(err, ErrNilArtifact) {
		t.Fatalf("expected ErrNilArtifact, got %v", err)
	}
}

func TestHTTPSaver(t *testing.T) {
	rec := httptest.NewRecorder()
	artifact := &Artifact{ID: "DOC1", Filename: DefaultFilename, ContentType: "application/pdf", Body: []byte("%PDF")}
	if err := (HTTPSaver{Writer: rec}).Save(context.Background(), artifact); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="user-details.pdf"` {
		t.Fatalf("unexpected disposition %q", got)
	}
	if rec.Header().Get("Content-Type") != "application/pdf" || rec.Body.String() != "%PDF" {
		t.Fatalf("unexpected response %v %q", rec.Header(), rec.Body.String())
	}
	if rec.Header().Get("X-Document-Id") != "DOC1" {
		t.Fatalf("missing document id header")
	}
}

func TestNewGenerator_FilenameFollowsRendererExtension(t *testing.T) {
	tests := map[string]struct {
		opts []Option
		want string
	}{
		"default":         {want: "user-details.txt"},
		"custom pdf name": {opts: []Option{WithFilename("report.pdf")}, want: "report.txt"},
		"matching name":   {opts: []Option{WithFilename("notes.TXT")}, want: "notes.TXT"},
		"no extension":    {opts: []Option{WithFilename("notes")}, want: "notes.txt"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			gen, err := NewGenerator(&textRenderer{}, tc.opts...)
			if err != nil {
				t.Fatalf("new generator: %v", err)
			}
			artifact, err := gen.Generate(context.Background(), details())
			if err != nil {
				t.Fatalf("generate: %v", err)
			}
			if artifact.Filename != tc.want {
				t.Fatalf("filename = %q, want %q", artifact.Filename, tc.want)
			}
		})
	}
}
