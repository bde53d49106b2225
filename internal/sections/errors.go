// Package sections provides the live, editable store of resume sections for one editing session.
package sections

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by the typed errors below via errors.Is.
var (
	ErrInvalidIndex   = errors.New("invalid index")
	ErrInvalidField   = errors.New("invalid field")
	ErrUnknownSection = errors.New("unknown section")
)

// InvalidIndexError is returned when a mutation addresses a list position that does not exist
type InvalidIndexError struct {
	Section Section
	Index   int
	Len     int
}

func (e *InvalidIndexError) Error() string {
	return fmt.Sprintf("invalid index: %s[%d] (length %d)", e.Section, e.Index, e.Len)
}

func (e *InvalidIndexError) Is(target error) bool {
	return target == ErrInvalidIndex
}

// InvalidFieldError is returned when a mutation names a field the target does not define.
// Section is empty for fixed fields.
type InvalidFieldError struct {
	Section Section
	Field   string
}

func (e *InvalidFieldError) Error() string {
	if e.Section == "" {
		return fmt.Sprintf("invalid field: %q is not a fixed field", e.Field)
	}
	return fmt.Sprintf("invalid field: %s entries have no field %q", e.Section, e.Field)
}

func (e *InvalidFieldError) Is(target error) bool {
	return target == ErrInvalidField
}

// UnknownSectionError is returned for a section name outside the seven list sections
type UnknownSectionError struct {
	Section Section
}

func (e *UnknownSectionError) Error() string {
	return fmt.Sprintf("unknown section: %q", e.Section)
}

func (e *UnknownSectionError) Is(target error) bool {
	return target == ErrUnknownSection
}
