package parsing

import "fmt"

// MarkupError is returned when an HTML body cannot be parsed into text
type MarkupError struct {
	Message string
	Cause   error
}

func (e *MarkupError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("markup error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("markup error: %s", e.Message)
}

func (e *MarkupError) Unwrap() error {
	return e.Cause
}
