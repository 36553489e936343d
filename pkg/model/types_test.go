package model

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFieldErrorsFieldsOrder(t *testing.T) {
	errs := FieldErrors{
		FieldPhone: "short",
		"zeta":     "x",
		FieldName:  "required",
		"alpha":    "y",
	}
	want := []string{FieldName, FieldPhone, "alpha", "zeta"}
	if diff := cmp.Diff(want, errs.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(errs.Error(), "name: required; phone: short") {
		t.Fatalf("unexpected error string %q", errs.Error())
	}
}

func TestUserDetailsRawAndEqual(t *testing.T) {
	pos := "Dev"
	d := UserDetails{Name: "A", Email: "a@b.co", Phone: "1234567890", Position: &pos}
	raw := d.Raw()
	if raw.Position != "Dev" || raw.Description != "" {
		t.Fatalf("unexpected raw %+v", raw)
	}
	empty := ""
	other := UserDetails{Name: "A", Email: "a@b.co", Phone: "1234567890", Position: &pos, Description: &empty}
	if !d.Equal(other) {
		t.Fatalf("expected nil and empty description to compare equal")
	}
	if d.HasDescription() || !d.HasPosition() {
		t.Fatalf("presence helpers wrong for %+v", d)
	}
}

func TestRawInputValues(t *testing.T) {
	raw := RawInput{Name: "n", Email: "e", Phone: "p", Position: "o", Description: "d"}
	want := map[string]string{"name": "n", "email": "e", "phone": "p", "position": "o", "description": "d"}
	if diff := cmp.Diff(want, raw.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if raw.Value("unknown") != "" {
		t.Fatalf("unknown field should be empty")
	}
}

func TestRawInputSet(t *testing.T) {
	var raw RawInput
	for _, field := range FieldOrder {
		if !raw.Set(field, field+"-value") {
			t.Fatalf("Set(%q) reported unknown field", field)
		}
	}
	if raw.Set("age", "42") {
		t.Fatalf("expected unknown field to be rejected")
	}
	for _, field := range FieldOrder {
		if got := raw.Value(field); got != field+"-value" {
			t.Fatalf("Value(%q) = %q", field, got)
		}
	}
}
