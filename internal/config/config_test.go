package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func envMap(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(Options{LookupEnv: envMap(nil)})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadLayers(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "userdetails.yaml")
	yamlDoc := `
http:
  addr: ":9000"
session:
  ttl: 10m
document:
  phone_label: "Phone Number"
theme:
  tokens:
    color-primary: "#0055ff"
`
	if err := os.WriteFile(file, []byte(yamlDoc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(Options{
		File: file,
		LookupEnv: envMap(map[string]string{
			"USERDETAILS_HTTP_ADDR":   ":9100",
			"USERDETAILS_LOG_FORMAT":  "console",
			"USERDETAILS_SESSION_TTL": "15m",
		}),
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Addr != ":9100" {
		t.Fatalf("env should override file, got %q", cfg.HTTP.Addr)
	}
	if cfg.Session.TTL != 15*time.Minute {
		t.Fatalf("unexpected ttl %s", cfg.Session.TTL)
	}
	if cfg.Document.PhoneLabel != "Phone Number" || cfg.Log.Format != "console" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Theme.Tokens["color-primary"] != "#0055ff" {
		t.Fatalf("tokens not loaded: %+v", cfg.Theme.Tokens)
	}
	if cfg.Document.Filename != "user-details.pdf" {
		t.Fatalf("defaults should survive partial files, got %q", cfg.Document.Filename)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.BindFlags(fs)
	if err := fs.Parse([]string{"-addr", ":9200"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if cfg.HTTP.Addr != ":9200" {
		t.Fatalf("flags should override env, got %q", cfg.HTTP.Addr)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("USERDETAILS_TEST_ONLY_LABEL=Tel\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("USERDETAILS_TEST_ONLY_LABEL") })

	if _, err := Load(Options{EnvFiles: []string{envFile, filepath.Join(dir, "missing.env")}}); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := os.Getenv("USERDETAILS_TEST_ONLY_LABEL"); got != "Tel" {
		t.Fatalf("expected .env to populate the environment, got %q", got)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(Options{File: filepath.Join(t.TempDir(), "nope.yaml"), Required: true, LookupEnv: envMap(nil)}); err == nil {
		t.Fatalf("expected missing required file error")
	}
	if _, err := Load(Options{LookupEnv: envMap(map[string]string{"USERDETAILS_SESSION_TTL": "soon"})}); err == nil {
		t.Fatalf("expected duration parse error")
	}
	if _, err := Load(Options{LookupEnv: envMap(map[string]string{"USERDETAILS_LOG_FORMAT": "xml"})}); err == nil {
		t.Fatalf("expected log format error")
	}
}

func TestApplyFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	scratch := Default()
	scratch.BindFlags(fs)
	if err := fs.Parse([]string{"-addr", ":9000", "-session-ttl", "5m"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	cfg := Default()
	cfg.Log.Level = "debug"
	cfg.HTTP.Addr = ":7000"
	if err := cfg.ApplyFlags(fs); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if cfg.HTTP.Addr != ":9000" || cfg.Session.TTL != 5*time.Minute {
		t.Fatalf("explicit flags not applied: %+v", cfg)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("unset flag overwrote loaded value: %q", cfg.Log.Level)
	}
}
