package detailsform

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goliatone/go-userdetails/pkg/renderers/text"
)

func TestMountPath(t *testing.T) {
	tests := map[string]string{
		"":          "/",
		"/":         "/",
		"details":   "/details/",
		"/details/": "/details/",
		" /a/b ":    "/a/b/",
	}
	for base, want := range tests {
		if got := MountPath(base); got != want {
			t.Errorf("MountPath(%q) = %q, want %q", base, got, want)
		}
	}
}

func TestRegisterRoutes_BasePath(t *testing.T) {
	c, err := New(newController(t, text.New()))
	if err != nil {
		t.Fatalf("new component: %v", err)
	}

	mux := http.NewServeMux()
	pattern, err := c.RegisterRoutes(mux, "/details")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if pattern != "/details/" {
		t.Fatalf("unexpected pattern %q", pattern)
	}

	res, body := serve(mux, httptest.NewRequest(http.MethodGet, "/details/", nil))
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	assertContains(t, body, `action="/details/view"`, `formaction="/details/download"`)
	if cookie := sessionCookie(t, res); cookie.Path != "/details" {
		t.Fatalf("unexpected cookie path %q", cookie.Path)
	}

	res, body = serve(mux, httptest.NewRequest(http.MethodGet, "/details/assets/userdetails.css", nil))
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for asset, got %d", res.StatusCode)
	}
	if !strings.Contains(body, ".ud-page") {
		t.Fatalf("unexpected stylesheet %q", body)
	}

	res, _ = serve(mux, postForm("/details/view", johnDoe(), nil))
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for view, got %d", res.StatusCode)
	}
}

func TestRegisterRoutes_MissingMux(t *testing.T) {
	c, err := New(newController(t, text.New()))
	if err != nil {
		t.Fatalf("new component: %v", err)
	}
	if _, err := c.RegisterRoutes(nil, "/"); err == nil {
		t.Fatalf("expected error for nil mux")
	}
}
