// Package model defines the personal-details record shared by the validator,
// the layout engine, and every renderer. RawInput carries untyped form values
// as submitted; UserDetails is only ever produced by the validation package
// and always satisfies the field constraints (name, email, and phone present).
// Optional fields use nil pointers for "absent" so renderers never have to
// distinguish between an empty string and a missing value.
package model
