package layout

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-userdetails/pkg/testsupport"
)

func TestLayout_Golden(t *testing.T) {
	details := johnDoe()
	details.Position = strPtr("Engineer")
	blocks := Layout(details)

	goldenPath := filepath.Join("testdata", "with_position.golden.json")
	testsupport.WriteGolden(t, goldenPath, blocks)

	var want []DrawBlock
	if err := json.Unmarshal(testsupport.MustReadGolden(t, goldenPath), &want); err != nil {
		t.Fatalf("decode golden: %v", err)
	}
	if diff := testsupport.CompareGolden(want, blocks); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
}
