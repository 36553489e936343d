package text

import (
	"path/filepath"
	"testing"

	"github.com/goliatone/go-userdetails/pkg/layout"
	"github.com/goliatone/go-userdetails/pkg/render"
	"github.com/goliatone/go-userdetails/pkg/testsupport"
	"github.com/goliatone/go-userdetails/pkg/validation"
)

func TestRender_Golden(t *testing.T) {
	raw := testsupport.MustLoadRawInput(t, filepath.Join("testdata", "full.json"))
	details, errs := validation.Validate(raw)
	if errs != nil {
		t.Fatalf("fixture must validate: %v", errs)
	}

	out, err := New().Render(testsupport.Context(), layout.Layout(details), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	goldenPath := filepath.Join("testdata", "full.golden")
	if testsupport.WriteMaybeGolden(t, goldenPath, out) {
		return
	}
	want := testsupport.MustReadGoldenString(t, goldenPath)
	if diff := testsupport.CompareGolden(want, string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}
