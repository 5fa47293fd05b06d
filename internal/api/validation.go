package api

import "fmt"

// ValidationError is a single field failure as reported by the service.
type ValidationError struct {
	// Field is the name of the field that was in error.
	Field string `json:"field"`
	// Type is the URI identifying the kind of validation failure.
	Type string `json:"type"`
}

// ValidationErrors wraps the list of field failures from a validation-error
// problem. It implements error so the domain layer can hand it back to
// callers, who branch on it with errors.As and render per-field messages.
type ValidationErrors struct {
	Errors []ValidationError
}

func NewValidationErrors(errors []ValidationError) *ValidationErrors {
	return &ValidationErrors{Errors: errors}
}

// ErrorsForField returns the failures recorded against a single field.
func (v *ValidationErrors) ErrorsForField(field string) []ValidationError {
	var result []ValidationError
	for _, e := range v.Errors {
		if e.Field == field {
			result = append(result, e)
		}
	}
	return result
}

func (v *ValidationErrors) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(v.Errors))
}
