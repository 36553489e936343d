// Package openapi embeds the HTTP API contract and shape-checks request
// bodies against it with kin-openapi before the field validator runs.
// Consumers only see validation.Issue values, never kin-openapi types.
package openapi
