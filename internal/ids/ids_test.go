package ids

import (
	"testing"
	"time"
)

func TestGeneratorMonotonic(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	g := NewGeneratorWith(func() time.Time { return fixed }, nil)

	prev := g.New()
	for i := 0; i < 50; i++ {
		next := g.New()
		if next <= prev {
			t.Fatalf("ids not increasing: %s then %s", prev, next)
		}
		if !Valid(next) {
			t.Fatalf("invalid ulid %q", next)
		}
		prev = next
	}
}

func TestValid(t *testing.T) {
	if Valid("not-a-ulid") {
		t.Fatalf("expected invalid")
	}
	if !Valid(New()) {
		t.Fatalf("expected package id to be valid")
	}
}
