package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-userdetails/pkg/model"
)

// Messages returned for each failing field.
const (
	MessageNameRequired = "Name is required"
	MessageEmailInvalid = "Invalid email format"
	MessagePhoneShort   = "Phone number must be at least 10 digits"
)

// MinPhoneLength is the minimum number of characters accepted for a phone
// number after trimming surrounding whitespace.
const MinPhoneLength = 10

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9_'+\-.]*[A-Za-z0-9_+\-]@([A-Za-z0-9][A-Za-z0-9\-]*\.)+[A-Za-z]{2,}$`)

// ErrUnknownField is returned by Rules.Check for identifiers outside the form.
var ErrUnknownField = errors.New("validation: unknown field")

// Rule describes the constraints attached to one field.
type Rule struct {
	Field     string
	Required  bool
	MinLength int
	Pattern   *regexp.Regexp
	Message   string
}

// check returns the configured message when value violates the rule.
func (r Rule) check(value string) (string, bool) {
	if r.Required && value == "" {
		return r.Message, false
	}
	if r.MinLength > 0 && utf8.RuneCountInString(value) < r.MinLength {
		return r.Message, false
	}
	if r.Pattern != nil && !matchEmail(r.Pattern, value) {
		return r.Message, false
	}
	return "", true
}

// Rules is the ordered rule set for the form.
type Rules []Rule

// DefaultRules returns the personal-details constraints. Position and
// description carry no rules.
func DefaultRules() Rules {
	return Rules{
		{Field: model.FieldName, Required: true, Message: MessageNameRequired},
		{Field: model.FieldEmail, Required: true, Pattern: emailPattern, Message: MessageEmailInvalid},
		{Field: model.FieldPhone, Required: true, MinLength: MinPhoneLength, Message: MessagePhoneShort},
	}
}

// Lookup returns the rule for field, if any.
func (rs Rules) Lookup(field string) (Rule, bool) {
	for _, rule := range rs {
		if rule.Field == field {
			return rule, true
		}
	}
	return Rule{}, false
}

// Check validates a single value. Fields without rules always pass; unknown
// identifiers return ErrUnknownField.
func (rs Rules) Check(field, value string) error {
	if !knownField(field) {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	rule, ok := rs.Lookup(field)
	if !ok {
		return nil
	}
	if msg, ok := rule.check(strings.TrimSpace(value)); !ok {
		return errors.New(msg)
	}
	return nil
}

func knownField(field string) bool {
	for _, candidate := range model.FieldOrder {
		if candidate == field {
			return true
		}
	}
	return false
}

func matchEmail(pattern *regexp.Regexp, value string) bool {
	if !pattern.MatchString(value) {
		return false
	}
	local, _, _ := strings.Cut(value, "@")
	if strings.HasPrefix(local, ".") || strings.Contains(local, "..") {
		return false
	}
	return true
}
