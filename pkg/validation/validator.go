package validation

import (
	"strings"

	"github.com/goliatone/go-userdetails/pkg/model"
)

// Validator applies a rule set to raw input.
type Validator struct {
	rules Rules
}

// New constructs a Validator. Without arguments it uses DefaultRules.
func New(rules ...Rule) *Validator {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Validator{rules: append(Rules(nil), rules...)}
}

// Rules returns a copy of the configured rule set.
func (v *Validator) Rules() Rules {
	return append(Rules(nil), v.rules...)
}

// Validate checks raw and returns either a populated record or the errors of
// every failing field. Values are trimmed; blank optional fields are absent.
func (v *Validator) Validate(raw model.RawInput) (model.UserDetails, model.FieldErrors) {
	var errs model.FieldErrors
	for _, rule := range v.rules {
		value := strings.TrimSpace(raw.Value(rule.Field))
		if msg, ok := rule.check(value); !ok {
			if errs == nil {
				errs = make(model.FieldErrors)
			}
			errs[rule.Field] = msg
		}
	}
	if len(errs) > 0 {
		return model.UserDetails{}, errs
	}

	return model.UserDetails{
		Name:        strings.TrimSpace(raw.Name),
		Email:       strings.TrimSpace(raw.Email),
		Phone:       strings.TrimSpace(raw.Phone),
		Position:    optional(raw.Position),
		Description: optionalMultiline(raw.Description),
	}, nil
}

// Validate runs the default rule set.
func Validate(raw model.RawInput) (model.UserDetails, model.FieldErrors) {
	return defaultValidator.Validate(raw)
}

var defaultValidator = New()

func optional(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// optionalMultiline keeps interior line breaks and indentation but drops
// leading and trailing blank space.
func optionalMultiline(value string) *string {
	normalized := strings.ReplaceAll(value, "\r\n", "\n")
	trimmed := strings.Trim(normalized, " \t\r\n")
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
