package openapi

import _ "embed"

//go:embed openapi.yaml
var embeddedSpec []byte

// Spec returns a copy of the embedded OpenAPI document.
func Spec() []byte {
	return append([]byte(nil), embeddedSpec...)
}
