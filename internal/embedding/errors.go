package embedding

import "fmt"

// ProviderError is returned when the embedding service fails or answers with an error
type ProviderError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *ProviderError) Error() string {
	msg := e.Message
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("status %d: %s", e.StatusCode, msg)
	}
	if e.Cause != nil {
		return fmt.Sprintf("embedding provider error: %s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("embedding provider error: %s", msg)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}
