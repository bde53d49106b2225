package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-builder/internal/assembler"
	"github.com/jonathan/resume-builder/internal/sections"
)

// ErrSessionNotFound indicates the session id is unknown or was deleted
type ErrSessionNotFound struct {
	SessionID string
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.SessionID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var notFound *ErrSessionNotFound
	var validation *ErrValidation

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.Is(err, sections.ErrUnknownSection), errors.Is(err, sections.ErrInvalidField):
		return http.StatusBadRequest
	case errors.Is(err, sections.ErrInvalidIndex):
		return http.StatusNotFound
	case errors.Is(err, assembler.ErrSubmitInProgress):
		return http.StatusConflict
	case errors.Is(err, assembler.ErrPersistence):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
