// Package persistence provides key-value sinks that store serialized resume documents.
package persistence

import (
	"context"
	"fmt"
	"strings"
)

// Sink stores a value under a key. Implementations replace any previous value.
type Sink interface {
	Write(ctx context.Context, key, value string) error
	Close() error
}

// InvalidKeyError is returned when a key cannot be stored by a sink
type InvalidKeyError struct {
	Key    string
	Reason string
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("invalid key %q: %s", e.Key, e.Reason)
}

// UnknownSinkError is returned by Open for an unrecognized sink kind
type UnknownSinkError struct {
	Kind string
}

func (e *UnknownSinkError) Error() string {
	return fmt.Sprintf("unknown sink kind: %q", e.Kind)
}

// WriteError wraps a backend failure with the sink kind and key
type WriteError struct {
	Sink  string
	Key   string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s sink: failed to write %q: %v", e.Sink, e.Key, e.Cause)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}

// checkKey rejects keys no backend can address
func checkKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return &InvalidKeyError{Key: key, Reason: "key is empty"}
	}
	return nil
}
