package render_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-userdetails/pkg/layout"
	"github.com/goliatone/go-userdetails/pkg/render"
)

type stubRenderer struct{ name string }

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(context.Context, []layout.DrawBlock, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistry(t *testing.T) {
	reg := render.NewRegistry()
	reg.MustRegister(stubRenderer{name: "text"})
	reg.MustRegister(stubRenderer{name: "pdf"})

	if err := reg.Register(stubRenderer{name: "pdf"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := reg.Register(nil); err == nil {
		t.Fatalf("expected nil renderer error")
	}
	if err := reg.Register(stubRenderer{}); err == nil {
		t.Fatalf("expected empty name error")
	}
	if diff := cmp.Diff([]string{"pdf", "text"}, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !reg.Has("text") || reg.Has("html") {
		t.Fatalf("unexpected Has results")
	}
	if _, err := reg.Get("html"); err == nil {
		t.Fatalf("expected missing renderer error")
	}
	if reg.MustGet("pdf").Name() != "pdf" {
		t.Fatalf("MustGet returned wrong renderer")
	}
}
