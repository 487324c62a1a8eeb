package recommend

import "fmt"

// OptionsError is returned for invalid caller options
type OptionsError struct {
	Field   string
	Message string
}

func (e *OptionsError) Error() string {
	return fmt.Sprintf("invalid option %s: %s", e.Field, e.Message)
}

// PipelineError is returned when no entry of a non-empty pool could be scored
type PipelineError struct {
	Attempted int
	Failed    int
	Cause     error
}

func (e *PipelineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("recommendation failed: %d of %d entries failed: %v", e.Failed, e.Attempted, e.Cause)
	}
	return fmt.Sprintf("recommendation failed: %d of %d entries failed", e.Failed, e.Attempted)
}

func (e *PipelineError) Unwrap() error {
	return e.Cause
}
