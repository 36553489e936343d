package detailsform

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath returns the subtree pattern the component is registered under.
func MountPath(basePath string) string {
	return mountPath(basePath, "/")
}

func registerRoutes(mux Mux, basePath string, build func(string) (http.Handler, error)) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("detailsform: missing mux")
	}
	prefix := trimBasePath(basePath)
	handler, err := build(prefix)
	if err != nil {
		return "", err
	}
	pattern := mountPath(basePath, "/")
	if prefix != "" {
		handler = http.StripPrefix(prefix, handler)
	}
	mux.Handle(pattern, handler)
	return pattern, nil
}

func trimBasePath(basePath string) string {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" || basePath == "/" {
		return ""
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	return strings.TrimRight(basePath, "/")
}

func mountPath(basePath, routePath string) string {
	routePath = strings.TrimSpace(routePath)
	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}
	return trimBasePath(basePath) + routePath
}
