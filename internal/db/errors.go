package db

import "fmt"

// QueryError reports an invalid search request, such as an unknown sort field
type QueryError struct {
	Field   string
	Message string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
