package render

import (
	"sort"
	"strings"

	"github.com/goliatone/go-userdetails/pkg/model"
)

// ErrorMapping splits an error payload into field-level and form-level
// messages keyed by form field identifiers.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// First returns the first message recorded for field.
func (m ErrorMapping) First(field string) string {
	if msgs := m.Fields[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// FieldErrors flattens the mapping into one message per field.
func (m ErrorMapping) FieldErrors() model.FieldErrors {
	if len(m.Fields) == 0 {
		return nil
	}
	out := make(model.FieldErrors, len(m.Fields))
	for field, msgs := range m.Fields {
		if len(msgs) > 0 {
			out[field] = msgs[0]
		}
	}
	return out
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapFieldErrors converts validator output into an ErrorMapping.
func MapFieldErrors(errs model.FieldErrors) ErrorMapping {
	payload := make(map[string][]string, len(errs))
	for field, msg := range errs {
		payload[field] = append(payload[field], msg)
	}
	return MapErrorPayload(payload)
}

// MapErrorPayload normalises error payloads (including JSON pointer paths such
// as "/body/email") into form field identifiers. Unknown paths are treated as
// form-level errors so messages are not lost.
func MapErrorPayload(payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{
		Fields: make(map[string][]string),
	}
	if len(payload) == 0 {
		mapping.Fields = nil
		return mapping
	}

	known := make(map[string]struct{}, len(model.FieldOrder))
	for _, field := range model.FieldOrder {
		known[field] = struct{}{}
	}

	for _, rawPath := range sortedKeys(payload) {
		normalizedMessages := normalizeMessages(payload[rawPath])
		if len(normalizedMessages) == 0 {
			continue
		}

		field, formLevel := mapErrorPath(rawPath, known)
		if formLevel {
			mapping.Form = append(mapping.Form, normalizedMessages...)
			continue
		}
		mapping.Fields[field] = normalizeMessages(append(mapping.Fields[field], normalizedMessages...))
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func mapErrorPath(raw string, known map[string]struct{}) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) {
		return "", true
	}
	segments := dropWrapperSegments(parsePathSegments(trimmed))
	if len(segments) == 0 {
		return "", true
	}
	if _, ok := known[segments[0]]; ok {
		return segments[0], false
	}
	return "", true
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = strings.TrimPrefix(clean, "#")
		clean = strings.TrimPrefix(clean, "/")
		clean = strings.TrimPrefix(clean, ".")
		clean = strings.TrimPrefix(clean, "$")
	}
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	wrappers := map[string]struct{}{
		"body":       {},
		"request":    {},
		"payload":    {},
		"data":       {},
		"properties": {},
	}

	out := segments
	for len(out) > 0 {
		if _, ok := wrappers[strings.ToLower(out[0])]; ok {
			out = out[1:]
			continue
		}
		break
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}

func sortedKeys(payload map[string][]string) []string {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
