package uischema

// Store keeps the parsed UI schema. It is safe for concurrent readers when
// treated as immutable after construction.
type Store struct {
	form    FormConfig
	preview PreviewConfig
	fields  map[string]FieldConfig
	sources []string
}

// FormConfig describes the form screen chrome.
type FormConfig struct {
	Title   string         `json:"title" yaml:"title"`
	Actions []ActionConfig `json:"actions" yaml:"actions"`
}

// PreviewConfig describes the preview screen chrome. Labels maps field
// identifiers to the captions shown before each value.
type PreviewConfig struct {
	Title   string            `json:"title" yaml:"title"`
	Labels  map[string]string `json:"labels" yaml:"labels"`
	Actions []ActionConfig    `json:"actions" yaml:"actions"`
}

// ActionConfig serialises call-to-action buttons. BusyLabel replaces Label
// while a document is being generated.
type ActionConfig struct {
	Kind      string `json:"kind" yaml:"kind"`
	Label     string `json:"label" yaml:"label"`
	BusyLabel string `json:"busyLabel,omitempty" yaml:"busyLabel,omitempty"`
	Icon      string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// FieldConfig customises how one input is rendered.
type FieldConfig struct {
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Widget      string `json:"widget,omitempty" yaml:"widget,omitempty"`
	Rows        int    `json:"rows,omitempty" yaml:"rows,omitempty"`
	Icon        string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Order       *int   `json:"order,omitempty" yaml:"order,omitempty"`
	CSSClass    string `json:"cssClass,omitempty" yaml:"cssClass,omitempty"`
}

// Field is a resolved input ready for rendering. Icon holds sanitized SVG
// markup.
type Field struct {
	Name        string
	Label       string
	Placeholder string
	Widget      string
	Rows        int
	Icon        string
	CSSClass    string
}

// Action is a resolved button with sanitized icon markup.
type Action struct {
	Kind      string
	Label     string
	BusyLabel string
	Icon      string
}
