package openapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-userdetails/pkg/model"
	"github.com/goliatone/go-userdetails/pkg/render"
	"github.com/goliatone/go-userdetails/pkg/validation"
)

// MessageMalformedBody is reported when a request body is not a JSON value.
const MessageMalformedBody = "request body must be valid JSON"

// CheckRequest decodes a JSON body and checks it against the request schema
// of method/path. The returned Result lists every shape problem; RawInput is
// only populated when the body is well formed.
func (c *Contract) CheckRequest(method, path string, body []byte) (model.RawInput, validation.Result, error) {
	key := operationKey(method, path)
	schema, ok := c.bodies[key]
	if !ok {
		return model.RawInput{}, validation.Result{}, fmt.Errorf("%w: %s", ErrUnknownOperation, key)
	}

	var value any
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(&value); err != nil {
		return model.RawInput{}, validation.Invalid(validation.Issue{Message: MessageMalformedBody}), nil
	}
	value = normalizeNumbers(value)

	if err := schema.VisitJSON(value, openapi3.MultiErrors()); err != nil {
		return model.RawInput{}, validation.Invalid(issuesFromError(err)...), nil
	}

	var raw model.RawInput
	if err := json.Unmarshal(body, &raw); err != nil {
		return model.RawInput{}, validation.Invalid(validation.Issue{Message: MessageMalformedBody}), nil
	}
	return raw, validation.Result{Valid: true}, nil
}

// normalizeNumbers turns json.Number values into float64, which is what
// schema visiting expects.
func normalizeNumbers(value any) any {
	switch typed := value.(type) {
	case json.Number:
		f, err := typed.Float64()
		if err != nil {
			return typed.String()
		}
		return f
	case map[string]any:
		for k, v := range typed {
			typed[k] = normalizeNumbers(v)
		}
		return typed
	case []any:
		for i, v := range typed {
			typed[i] = normalizeNumbers(v)
		}
		return typed
	default:
		return typed
	}
}

func issuesFromError(err error) []validation.Issue {
	var schemaErrs []*openapi3.SchemaError
	collectSchemaErrors(err, &schemaErrs)

	if len(schemaErrs) == 0 {
		return []validation.Issue{{Message: strings.TrimSpace(err.Error())}}
	}

	payload := make(map[string][]string, len(schemaErrs))
	for _, schemaErr := range schemaErrs {
		pointer := "/" + strings.Join(escapePointer(schemaErr.JSONPointer()), "/")
		message := strings.TrimSpace(schemaErr.Reason)
		if message == "" {
			message = strings.TrimSpace(schemaErr.Error())
		}
		payload[pointer] = append(payload[pointer], message)
	}

	// Unknown properties and type errors on the body itself have no field
	// and surface as form-level issues.
	mapping := render.MapErrorPayload(payload)
	issues := make([]validation.Issue, 0, len(schemaErrs))
	for _, field := range model.FieldOrder {
		for _, msg := range mapping.Fields[field] {
			issues = append(issues, validation.Issue{Path: "/" + field, Field: field, Message: msg})
		}
	}
	for _, msg := range mapping.Form {
		issues = append(issues, validation.Issue{Message: msg})
	}
	return issues
}

func collectSchemaErrors(err error, out *[]*openapi3.SchemaError) {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		for _, inner := range multi {
			collectSchemaErrors(inner, out)
		}
		return
	}
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		*out = append(*out, schemaErr)
	}
}

func escapePointer(segments []string) []string {
	out := make([]string, len(segments))
	for i, segment := range segments {
		segment = strings.ReplaceAll(segment, "~", "~0")
		out[i] = strings.ReplaceAll(segment, "/", "~1")
	}
	return out
}
