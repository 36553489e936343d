// Package config loads runtime settings for the server and CLI binaries.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// variables from .env files, then USERDETAILS_* environment variables, then
// command-line flags bound by the caller.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces every environment variable read by Load.
const EnvPrefix = "USERDETAILS_"

// Config is the full runtime configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Session  SessionConfig  `yaml:"session"`
	Document DocumentConfig `yaml:"document"`
	Log      LogConfig      `yaml:"log"`
	Theme    ThemeConfig    `yaml:"theme"`
}

type HTTPConfig struct {
	Addr           string        `yaml:"addr"`
	ShutdownGrace  time.Duration `yaml:"shutdown_grace"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
}

type SessionConfig struct {
	TTL        time.Duration `yaml:"ttl"`
	CookieName string        `yaml:"cookie_name"`
	Secure     bool          `yaml:"secure"`
}

type DocumentConfig struct {
	// PhoneLabel pins the phone label for every download. Empty means the
	// label follows the screen ("Phone" on the form, "Phone Number" on the
	// preview).
	PhoneLabel string `yaml:"phone_label"`
	Filename   string `yaml:"filename"`
	OutputDir  string `yaml:"output_dir"`
	Author     string `yaml:"author"`
	Compress   bool   `yaml:"compress"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ThemeConfig struct {
	Name    string            `yaml:"name"`
	Variant string            `yaml:"variant"`
	Tokens  map[string]string `yaml:"tokens"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:          ":8383",
			ShutdownGrace: 5 * time.Second,
		},
		Session: SessionConfig{
			TTL:        30 * time.Minute,
			CookieName: "ud_session",
		},
		Document: DocumentConfig{
			Filename:  "user-details.pdf",
			OutputDir: ".",
			Compress:  true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Theme: ThemeConfig{
			Name:    "default",
			Variant: "light",
		},
	}
}

// Options controls where Load looks for settings.
type Options struct {
	// File is an optional YAML file. A missing file is ignored unless
	// Required is set.
	File     string
	Required bool
	// EnvFiles are loaded with godotenv before reading the environment.
	// Variables already present in the process environment win.
	EnvFiles []string
	// LookupEnv overrides os.LookupEnv, mainly for tests.
	LookupEnv func(string) (string, bool)
}

// Load builds a Config from defaults, file, and environment.
func Load(opts Options) (Config, error) {
	cfg := Default()

	if opts.File != "" {
		if err := cfg.mergeFile(opts.File, opts.Required); err != nil {
			return Config{}, err
		}
	}

	if len(opts.EnvFiles) > 0 {
		if err := loadEnvFiles(opts.EnvFiles); err != nil {
			return Config{}, err
		}
	}

	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) mergeFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func loadEnvFiles(files []string) error {
	existing := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("config: load env files: %w", err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		value, ok := lookup(EnvPrefix + key)
		if !ok {
			return "", false
		}
		return strings.TrimSpace(value), true
	}

	if v, ok := get("HTTP_ADDR"); ok {
		c.HTTP.Addr = v
	}
	if v, ok := get("HTTP_SHUTDOWN_GRACE"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %sHTTP_SHUTDOWN_GRACE: %w", EnvPrefix, err)
		}
		c.HTTP.ShutdownGrace = d
	}
	if v, ok := get("HTTP_ALLOWED_ORIGINS"); ok {
		c.HTTP.AllowedOrigins = splitList(v)
	}
	if v, ok := get("SESSION_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %sSESSION_TTL: %w", EnvPrefix, err)
		}
		c.Session.TTL = d
	}
	if v, ok := get("SESSION_COOKIE"); ok {
		c.Session.CookieName = v
	}
	if v, ok := get("SESSION_SECURE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %sSESSION_SECURE: %w", EnvPrefix, err)
		}
		c.Session.Secure = b
	}
	if v, ok := get("PHONE_LABEL"); ok {
		c.Document.PhoneLabel = v
	}
	if v, ok := get("OUTPUT_DIR"); ok {
		c.Document.OutputDir = v
	}
	if v, ok := get("DOCUMENT_AUTHOR"); ok {
		c.Document.Author = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := get("LOG_FORMAT"); ok {
		c.Log.Format = v
	}
	if v, ok := get("THEME"); ok {
		c.Theme.Name = v
	}
	if v, ok := get("THEME_VARIANT"); ok {
		c.Theme.Variant = v
	}
	return nil
}

// BindFlags registers flags that override the loaded values when parsed.
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.HTTP.Addr, "addr", c.HTTP.Addr, "HTTP listen address")
	fs.DurationVar(&c.HTTP.ShutdownGrace, "shutdown-grace", c.HTTP.ShutdownGrace, "graceful shutdown timeout")
	fs.DurationVar(&c.Session.TTL, "session-ttl", c.Session.TTL, "idle session lifetime")
	fs.StringVar(&c.Document.PhoneLabel, "phone-label", c.Document.PhoneLabel, "pin the phone label used in documents")
	fs.StringVar(&c.Document.OutputDir, "output", c.Document.OutputDir, "directory for downloaded documents")
	fs.StringVar(&c.Log.Level, "log-level", c.Log.Level, "log level (debug, info, warn, error)")
	fs.StringVar(&c.Log.Format, "log-format", c.Log.Format, "log format (json, console)")
	fs.StringVar(&c.Theme.Name, "theme", c.Theme.Name, "theme name")
	fs.StringVar(&c.Theme.Variant, "theme-variant", c.Theme.Variant, "theme variant")
}

// ApplyFlags copies every flag explicitly set on parsed onto c. parsed is
// expected to have been bound with BindFlags before parsing, which lets the
// caller parse the command line before the config file location is known.
func (c *Config) ApplyFlags(parsed *flag.FlagSet) error {
	target := flag.NewFlagSet("config", flag.ContinueOnError)
	c.BindFlags(target)

	var firstErr error
	parsed.Visit(func(f *flag.Flag) {
		if firstErr != nil || target.Lookup(f.Name) == nil {
			return
		}
		if err := target.Set(f.Name, f.Value.String()); err != nil {
			firstErr = fmt.Errorf("config: flag -%s: %w", f.Name, err)
		}
	})
	return firstErr
}

// Validate reports configuration values that cannot work.
func (c Config) Validate() error {
	if c.Session.TTL <= 0 {
		return fmt.Errorf("config: session ttl must be positive, got %s", c.Session.TTL)
	}
	if c.Session.CookieName == "" {
		return errors.New("config: session cookie name is required")
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: unsupported log format %q", c.Log.Format)
	}
	if c.Document.Filename == "" {
		return errors.New("config: document filename is required")
	}
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
