// Package assembler snapshots a section store into a resume document, serializes it, and submits it
// to a persistence sink.
package assembler

import (
	"errors"
	"fmt"
)

// ErrSubmitInProgress is returned when Submit is called while another submit is still writing
var ErrSubmitInProgress = errors.New("submit already in progress")

// ErrPersistence is matched by PersistenceError via errors.Is
var ErrPersistence = errors.New("persistence failure")

// PersistenceError reports that the sink could not store the serialized document
type PersistenceError struct {
	Key   string
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure: could not write %q: %v", e.Key, e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

// DecodeError represents a serialized document that could not be decoded
type DecodeError struct {
	Message string
	Cause   error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("decode error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("decode error: %s", e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
