package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassPage     ChromeClass = "ud-page"
	ClassHeader   ChromeClass = "ud-header"
	ClassForm     ChromeClass = "ud-form"
	ClassField    ChromeClass = "ud-field"
	ClassPreview  ChromeClass = "ud-preview"
	ClassActions  ChromeClass = "ud-actions"
	ClassErrors   ChromeClass = "ud-errors"
	ClassFieldErr ChromeClass = "ud-field__error"
)

func chromeClasses() map[string]string {
	return map[string]string{
		"page":        string(ClassPage),
		"header":      string(ClassHeader),
		"form":        string(ClassForm),
		"field":       string(ClassField),
		"preview":     string(ClassPreview),
		"actions":     string(ClassActions),
		"errors":      string(ClassErrors),
		"field_error": string(ClassFieldErr),
	}
}
