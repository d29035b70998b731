package workflow

// ValidationError reports a malformed step at construction time.
// Steps that fail validation never enter a workflow.
type ValidationError struct {
	Field   string // field that violated its invariant
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
