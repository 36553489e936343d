// Package detailsform serves the personal-details form over HTTP.
//
// The component mounts a chi router with two groups of routes. The page
// routes (GET /, POST /view, POST /back, POST /download) drive the
// form/preview screens through a controller.Controller and keep per-visitor
// state in an in-memory session store keyed by a cookie. The JSON routes
// under /api shape-check request bodies against the embedded OpenAPI
// document before running field validation, layout, or PDF rendering.
//
// Embedded stylesheet and script assets are served from /assets/ and the
// OpenAPI document from /openapi.yaml.
package detailsform
