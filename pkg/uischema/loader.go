package uischema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-userdetails/pkg/model"
)

// LoadFS walks the provided filesystem and parses JSON/YAML UI schema files.
// When fsys is nil or no schema files are present, the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{fields: make(map[string]FieldConfig)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("uischema: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}
		return store.merge(doc, path)
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

var (
	defaultOnce  sync.Once
	defaultStore *Store
	defaultErr   error
)

// Default returns the store built from the embedded schema.
func Default() (*Store, error) {
	defaultOnce.Do(func() {
		defaultStore, defaultErr = LoadFS(EmbeddedFS())
	})
	return defaultStore, defaultErr
}

// Empty reports whether the store holds any configuration.
func (s *Store) Empty() bool {
	return s == nil || len(s.sources) == 0
}

// Sources lists the files that contributed to the store.
func (s *Store) Sources() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.sources...)
}

// Form returns the form screen configuration.
func (s *Store) Form() FormConfig {
	if s == nil {
		return FormConfig{}
	}
	return s.form
}

// Preview returns the preview screen configuration.
func (s *Store) Preview() PreviewConfig {
	if s == nil {
		return PreviewConfig{}
	}
	return s.preview
}

// Field returns the raw configuration for a field.
func (s *Store) Field(name string) (FieldConfig, bool) {
	if s == nil {
		return FieldConfig{}, false
	}
	cfg, ok := s.fields[name]
	return cfg, ok
}

// Fields resolves every form field in display order. Fields without
// configuration fall back to a text input labelled with the identifier.
// Explicit Order values sort first; ties keep the canonical form order.
func (s *Store) Fields() []Field {
	out := make([]Field, 0, len(model.FieldOrder))
	orders := make(map[string]int, len(model.FieldOrder))
	for idx, name := range model.FieldOrder {
		cfg, _ := s.Field(name)
		orders[name] = idx
		if cfg.Order != nil {
			orders[name] = *cfg.Order
		}
		out = append(out, resolveField(name, cfg))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return orders[out[i].Name] < orders[out[j].Name]
	})
	return out
}

// Action returns the resolved action of kind for the given screen ("form" or
// "preview").
func (s *Store) Action(screen, kind string) (Action, bool) {
	var actions []ActionConfig
	switch screen {
	case "form":
		actions = s.Form().Actions
	case "preview":
		actions = s.Preview().Actions
	}
	for _, action := range actions {
		if action.Kind == kind {
			return Action{
				Kind:      action.Kind,
				Label:     action.Label,
				BusyLabel: action.BusyLabel,
				Icon:      sanitizeIconMarkup(action.Icon),
			}, true
		}
	}
	return Action{}, false
}

// PreviewLabel returns the caption for field on the preview screen.
func (s *Store) PreviewLabel(field string) string {
	if label := strings.TrimSpace(s.Preview().Labels[field]); label != "" {
		return label
	}
	return titleCase(field) + ":"
}

func resolveField(name string, cfg FieldConfig) Field {
	field := Field{
		Name:        name,
		Label:       strings.TrimSpace(cfg.Label),
		Placeholder: cfg.Placeholder,
		Widget:      strings.ToLower(strings.TrimSpace(cfg.Widget)),
		Rows:        cfg.Rows,
		Icon:        sanitizeIconMarkup(cfg.Icon),
		CSSClass:    cfg.CSSClass,
	}
	if field.Label == "" {
		field.Label = titleCase(name)
	}
	if field.Widget == "" {
		field.Widget = "text"
	}
	if field.Widget == "textarea" && field.Rows <= 0 {
		field.Rows = 4
	}
	return field
}

type documentFile struct {
	Form    *FormConfig            `json:"form" yaml:"form"`
	Preview *PreviewConfig         `json:"preview" yaml:"preview"`
	Fields  map[string]FieldConfig `json:"fields" yaml:"fields"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("uischema: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("uischema: parse %s: invalid JSON or YAML", source)
}

func (s *Store) merge(doc documentFile, source string) error {
	if doc.Form != nil {
		s.form = *doc.Form
	}
	if doc.Preview != nil {
		s.preview = *doc.Preview
	}
	for key, cfg := range doc.Fields {
		name := strings.TrimSpace(key)
		if !knownField(name) {
			return fmt.Errorf("uischema: file %s configures unknown field %q", source, key)
		}
		if _, exists := s.fields[name]; exists {
			return fmt.Errorf("uischema: duplicate field %q (file %s)", name, source)
		}
		s.fields[name] = cfg
	}
	s.sources = append(s.sources, source)
	return nil
}

func knownField(name string) bool {
	for _, field := range model.FieldOrder {
		if field == name {
			return true
		}
	}
	return false
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func titleCase(value string) string {
	if value == "" {
		return ""
	}
	return strings.ToUpper(value[:1]) + value[1:]
}
