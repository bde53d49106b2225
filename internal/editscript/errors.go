package editscript

import "fmt"

// ParseError represents a script that could not be decoded or is malformed
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// OperationError reports the operation that stopped Apply.
// Position is zero-based.
type OperationError struct {
	Position int
	Op       Operation
	Cause    error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("operation %d (%s): %v", e.Position, e.Op.Op, e.Cause)
}

func (e *OperationError) Unwrap() error {
	return e.Cause
}
