package ai

import "fmt"

// ModelInvocationError reports a failed round trip to the model backend:
// missing configuration, transport failure, non-success status, or an empty
// candidate payload.
type ModelInvocationError struct {
	Op     string // logical operation, e.g. "generate", "analyze", "insight"
	Status int    // HTTP status when the backend answered, 0 otherwise
	Err    error
}

func (e *ModelInvocationError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("ai: %s invocation failed (status %d): %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("ai: %s invocation failed: %v", e.Op, e.Err)
}

func (e *ModelInvocationError) Unwrap() error { return e.Err }

// MalformedOutputError reports model output that came back but does not
// satisfy the expected contract. Raw keeps the offending payload for
// diagnostics.
type MalformedOutputError struct {
	Reason string
	Raw    string
}

func (e *MalformedOutputError) Error() string {
	return "ai: malformed model output: " + e.Reason
}
