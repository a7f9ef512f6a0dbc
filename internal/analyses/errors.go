package analyses

import "fmt"

// MalformedResponseError signals that the model reply could not be parsed
// into the expected result schema.
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed model response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed model response: %s", e.Reason)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// InputValidationError signals a rejected request payload.
type InputValidationError struct {
	Message string
}

func (e *InputValidationError) Error() string { return e.Message }
