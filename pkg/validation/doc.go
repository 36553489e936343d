// Package validation implements the field rules for personal details.
//
// Validate checks a RawInput in one pass and reports every failing field at
// once. Rules exposes the same constraints per field so interactive front-ends
// (the terminal prompts in particular) can reject a value as soon as it is
// typed instead of waiting for the whole form.
package validation
