package roster

import "fmt"

// ValidationError rejects a user-actionable precondition failure. Callers map
// it to a 4xx response; it never reaches the transport layer as a payload.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
