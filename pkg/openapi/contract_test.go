package openapi

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-userdetails/pkg/model"
	"github.com/goliatone/go-userdetails/pkg/validation"
)

func mustDefault(t *testing.T) *Contract {
	t.Helper()
	contract, err := Default()
	if err != nil {
		t.Fatalf("load embedded contract: %v", err)
	}
	return contract
}

func TestDefaultContract(t *testing.T) {
	contract := mustDefault(t)

	if contract.Title() != "User Details API" || contract.Version() != "1.0.0" {
		t.Fatalf("unexpected info %q %q", contract.Title(), contract.Version())
	}

	var got []string
	for _, op := range contract.Operations() {
		got = append(got, op.Method+" "+op.Path+" "+op.ID)
	}
	want := []string{
		"POST /api/layout layoutDocument",
		"POST /api/pdf renderPDF",
		"POST /api/validate validateDetails",
		"GET /healthz health",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("operations mismatch (-want +got):\n%s", diff)
	}

	op, ok := contract.Operation("post", "/api/pdf")
	if !ok || !op.HasBody {
		t.Fatalf("expected /api/pdf to declare a JSON body, got %+v", op)
	}
	if op, ok := contract.Operation("GET", "/healthz"); !ok || op.HasBody {
		t.Fatalf("expected bodiless health check, got %+v", op)
	}
	if string(contract.Raw()) != string(Spec()) {
		t.Fatalf("raw document should match embedded spec")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(context.Background(), nil); !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
	if _, err := Load(context.Background(), []byte("openapi: 3.0.3\npaths: {}\n")); err == nil {
		t.Fatalf("expected validation error for document without info")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Load(ctx, Spec()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCheckRequest(t *testing.T) {
	contract := mustDefault(t)

	tests := []struct {
		name    string
		body    string
		wantRaw model.RawInput
		want    validation.Result
	}{
		{
			name:    "well formed",
			body:    `{"name":"John Doe","email":"john@example.com","phone":"1234567890","description":"a\nb"}`,
			wantRaw: model.RawInput{Name: "John Doe", Email: "john@example.com", Phone: "1234567890", Description: "a\nb"},
			want:    validation.Result{Valid: true},
		},
		{
			name: "empty object defers to the field validator",
			body: `{}`,
			want: validation.Result{Valid: true},
		},
		{
			name: "wrong types",
			body: `{"name":42,"phone":["123"]}`,
			want: validation.Invalid(
				validation.Issue{Path: "/name", Field: "name", Message: "value must be a string"},
				validation.Issue{Path: "/phone", Field: "phone", Message: "value must be a string"},
			),
		},
		{
			name: "unknown property",
			body: `{"name":"John","age":3}`,
			want: validation.Invalid(
				validation.Issue{Message: `property "age" is unsupported`},
			),
		},
		{
			name: "not an object",
			body: `["John"]`,
			want: validation.Invalid(
				validation.Issue{Message: "value must be an object"},
			),
		},
		{
			name: "malformed",
			body: `{"name":`,
			want: validation.Invalid(validation.Issue{Message: MessageMalformedBody}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, result, err := contract.CheckRequest("POST", "/api/validate", []byte(tt.body))
			if err != nil {
				t.Fatalf("check request: %v", err)
			}
			if diff := cmp.Diff(tt.want, result); diff != "" {
				t.Fatalf("result mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantRaw, raw); diff != "" {
				t.Fatalf("raw mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCheckRequest_MaxLength(t *testing.T) {
	contract := mustDefault(t)
	long := make([]byte, 201)
	for i := range long {
		long[i] = 'a'
	}

	_, result, err := contract.CheckRequest("POST", "/api/pdf", []byte(`{"position":"`+string(long)+`"}`))
	if err != nil {
		t.Fatalf("check request: %v", err)
	}
	want := validation.Invalid(validation.Issue{Path: "/position", Field: "position", Message: "maximum string length is 200"})
	if diff := cmp.Diff(want, result); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckRequest_UnknownOperation(t *testing.T) {
	contract := mustDefault(t)
	if _, _, err := contract.CheckRequest("GET", "/healthz", nil); !errors.Is(err, ErrUnknownOperation) {
		t.Fatalf("expected ErrUnknownOperation, got %v", err)
	}
}
