package controller

import "github.com/goliatone/go-userdetails/pkg/model"

// Screen identifies which view is active.
type Screen string

const (
	ScreenForm    Screen = "form"
	ScreenPreview Screen = "preview"
)

// ParseScreen maps a string to a Screen, defaulting to the form.
func ParseScreen(value string) Screen {
	if Screen(value) == ScreenPreview {
		return ScreenPreview
	}
	return ScreenForm
}

// State is the per-session controller state. Details is only set on the
// preview screen; Input keeps the last submitted values for re-display.
type State struct {
	Screen     Screen             `json:"screen"`
	Details    *model.UserDetails `json:"details,omitempty"`
	Input      model.RawInput     `json:"input"`
	Generating bool               `json:"generating"`
	Errors     model.FieldErrors  `json:"errors,omitempty"`
	LastError  string             `json:"lastError,omitempty"`
}

// InitialState returns an empty form.
func InitialState() State {
	return State{Screen: ScreenForm}
}

// IsPreview reports whether the preview screen is active with a record.
func (s State) IsPreview() bool {
	return s.Screen == ScreenPreview && s.Details != nil
}
