package protocol

import "fmt"

// DecodeError reports a wire line that could not be parsed into a message.
type DecodeError struct {
	Wire   string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q: %s", e.Wire, e.Reason)
}

// ValidationError reports a decoded message whose parameters do not match the
// schema for its id.
type ValidationError struct {
	ID     ID
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validate %s: %s", e.ID.Name(), e.Reason)
}
