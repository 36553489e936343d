package validation

import "github.com/goliatone/go-userdetails/pkg/model"

// Issue represents a validation error with optional location metadata.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Result captures validation outcomes for API responses.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// ResultFromErrors converts field errors into a Result with issues ordered
// like the form.
func ResultFromErrors(errs model.FieldErrors) Result {
	if len(errs) == 0 {
		return Result{Valid: true}
	}
	issues := make([]Issue, 0, len(errs))
	for _, field := range errs.Fields() {
		issues = append(issues, Issue{
			Path:    "/" + field,
			Field:   field,
			Message: errs[field],
		})
	}
	return Result{Valid: false, Issues: issues}
}

// Invalid builds a failing Result from pre-built issues.
func Invalid(issues ...Issue) Result {
	return Result{Valid: false, Issues: issues}
}
