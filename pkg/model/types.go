package model

import (
	"sort"
	"strings"
)

// Canonical field identifiers used for error keys, form control names, and
// JSON payloads.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldPosition    = "position"
	FieldDescription = "description"
)

// FieldOrder lists the form fields in display order.
var FieldOrder = []string{FieldName, FieldEmail, FieldPhone, FieldPosition, FieldDescription}

// RawInput holds the five form values exactly as the user typed them.
type RawInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Position    string `json:"position"`
	Description string `json:"description"`
}

// Value returns the raw value for a field identifier.
func (r RawInput) Value(field string) string {
	switch field {
	case FieldName:
		return r.Name
	case FieldEmail:
		return r.Email
	case FieldPhone:
		return r.Phone
	case FieldPosition:
		return r.Position
	case FieldDescription:
		return r.Description
	default:
		return ""
	}
}

// Set assigns the raw value for a field identifier. Unknown identifiers are
// ignored and reported as false.
func (r *RawInput) Set(field, value string) bool {
	switch field {
	case FieldName:
		r.Name = value
	case FieldEmail:
		r.Email = value
	case FieldPhone:
		r.Phone = value
	case FieldPosition:
		r.Position = value
	case FieldDescription:
		r.Description = value
	default:
		return false
	}
	return true
}

// Values returns the raw input keyed by field identifier, which is the shape
// templates use to prefill controls.
func (r RawInput) Values() map[string]string {
	out := make(map[string]string, len(FieldOrder))
	for _, field := range FieldOrder {
		out[field] = r.Value(field)
	}
	return out
}

// UserDetails is a validated record. Position and Description are nil when
// the user left them blank.
type UserDetails struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	Position    *string `json:"position,omitempty"`
	Description *string `json:"description,omitempty"`
}

// HasPosition reports whether the optional position is present.
func (d UserDetails) HasPosition() bool {
	return d.Position != nil && *d.Position != ""
}

// HasDescription reports whether the optional description is present.
func (d UserDetails) HasDescription() bool {
	return d.Description != nil && *d.Description != ""
}

// PositionValue returns the position or an empty string when absent.
func (d UserDetails) PositionValue() string {
	if d.Position == nil {
		return ""
	}
	return *d.Position
}

// DescriptionValue returns the description or an empty string when absent.
func (d UserDetails) DescriptionValue() string {
	if d.Description == nil {
		return ""
	}
	return *d.Description
}

// Raw converts the record back into form values, used to prefill the form
// after a validation round trip.
func (d UserDetails) Raw() RawInput {
	return RawInput{
		Name:        d.Name,
		Email:       d.Email,
		Phone:       d.Phone,
		Position:    d.PositionValue(),
		Description: d.DescriptionValue(),
	}
}

// Equal compares two records by value, treating nil and empty optional
// fields as equivalent.
func (d UserDetails) Equal(other UserDetails) bool {
	return d.Name == other.Name &&
		d.Email == other.Email &&
		d.Phone == other.Phone &&
		d.PositionValue() == other.PositionValue() &&
		d.DescriptionValue() == other.DescriptionValue()
}

// FieldErrors maps a field identifier to a human-readable message. A nil or
// empty map means the input was valid.
type FieldErrors map[string]string

// Has reports whether the field has an error.
func (e FieldErrors) Has(field string) bool {
	if len(e) == 0 {
		return false
	}
	_, ok := e[field]
	return ok
}

// Fields returns the failing field identifiers in form order, followed by any
// unknown keys sorted alphabetically.
func (e FieldErrors) Fields() []string {
	if len(e) == 0 {
		return nil
	}
	out := make([]string, 0, len(e))
	seen := make(map[string]struct{}, len(e))
	for _, field := range FieldOrder {
		if _, ok := e[field]; ok {
			out = append(out, field)
			seen[field] = struct{}{}
		}
	}
	var extra []string
	for field := range e {
		if _, ok := seen[field]; !ok {
			extra = append(extra, field)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

// Error implements error so FieldErrors can travel through error returns.
func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "model: no field errors"
	}
	parts := make([]string, 0, len(e))
	for _, field := range e.Fields() {
		parts = append(parts, field+": "+e[field])
	}
	return "model: invalid input (" + strings.Join(parts, "; ") + ")"
}

// Clone returns a copy of the map, or nil when empty.
func (e FieldErrors) Clone() FieldErrors {
	if len(e) == 0 {
		return nil
	}
	out := make(FieldErrors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
