package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-userdetails/pkg/render"
)

func TestMergeAndSortHiddenFields(t *testing.T) {
	base := map[string]string{
		" screen ": "form",
		"":         "ignored",
	}

	merged := render.MergeHiddenFields(base,
		render.Hidden("screen", "preview"),
		render.Hidden("attempt", 2),
		render.Hidden("  ", "skip"),
	)

	wantMerged := map[string]string{
		"screen":  "preview",
		"attempt": "2",
	}
	if diff := cmp.Diff(wantMerged, merged); diff != "" {
		t.Fatalf("merged hidden fields mismatch (-want +got):\n%s", diff)
	}

	sorted := render.SortedHiddenFields(merged)
	wantSorted := []render.HiddenField{
		{Name: "attempt", Value: "2"},
		{Name: "screen", Value: "preview"},
	}
	if diff := cmp.Diff(wantSorted, sorted); diff != "" {
		t.Fatalf("sorted hidden fields mismatch (-want +got):\n%s", diff)
	}
}
