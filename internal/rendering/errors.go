package rendering

import "fmt"

// TemplateError represents an unknown or unusable template
type TemplateError struct {
	ID      string
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %s: %v", e.ID, e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s: %s", e.ID, e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}
