package matching

import "fmt"

// InputError is returned when a pair has nothing to score
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Message)
}
