package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gabinete-digital/gabinete-api/internal/schema"
)

// Sentinel errors returned by the entity service. The API layer maps them
// to status codes with errors.Is.
var (
	// ErrNotFound indicates the addressed record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidPayload indicates a create or update hook rejected the payload.
	ErrInvalidPayload = errors.New("invalid payload")

	// ErrNothingToUpdate indicates an update body with no writable column.
	ErrNothingToUpdate = errors.New("no columns to update")
)

// ValidationError carries the schema check that rejected a payload.
type ValidationError struct {
	Result schema.Result
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Result.NotAllowed) > 0 {
		parts = append(parts, "not allowed: "+strings.Join(e.Result.NotAllowed, ", "))
	}
	if len(e.Result.MissingRequired) > 0 {
		parts = append(parts, "missing required: "+strings.Join(e.Result.MissingRequired, ", "))
	}
	return fmt.Sprintf("validation failed (%s)", strings.Join(parts, "; "))
}

// AsValidationError extracts a *ValidationError from err's chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}
