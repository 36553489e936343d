package userdetails

import (
	"io/fs"

	"github.com/goliatone/go-userdetails/pkg/openapi"
	"github.com/goliatone/go-userdetails/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in page templates so callers can copy
// or extend them and load the result with vanilla.WithTemplatesFS.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the stylesheet and script used by the HTML pages.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(userdetails.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}

// APISpec returns the embedded OpenAPI document for the JSON API.
func APISpec() []byte {
	return openapi.Spec()
}
