package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate matches any DBError of kind KindUniqueViolation.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidReference matches any DBError of kind KindForeignKeyViolation.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrInvalidEntity matches DBErrors raised by NOT NULL and CHECK constraints.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrEmptyData is returned by Create and Update when there is no column to write.
	ErrEmptyData = errors.New("no columns to write")
)

// ErrorKind classifies a persistence failure.
type ErrorKind int

// Error kinds produced by the persistence layer.
const (
	KindOther ErrorKind = iota
	KindUniqueViolation
	KindForeignKeyViolation
	KindNotNullViolation
	KindCheckViolation
)

// String implements fmt.Stringer.
func (k ErrorKind) String() string {
	switch k {
	case KindUniqueViolation:
		return "unique_violation"
	case KindForeignKeyViolation:
		return "foreign_key_violation"
	case KindNotNullViolation:
		return "not_null_violation"
	case KindCheckViolation:
		return "check_violation"
	default:
		return "other"
	}
}

// DBError is the tagged error surfaced by Model implementations. Handlers
// switch on Kind (or use errors.Is with the sentinels above) instead of
// matching driver message text.
type DBError struct {
	Kind       ErrorKind
	Table      string // table the statement targeted
	Op         string // create, get_all, find_one, update, delete
	Constraint string // violated constraint name, when the driver reports one
	Column     string // offending column, when the driver reports one
	Err        error  // original driver error
}

// Error implements the error interface for DBError.
func (e *DBError) Error() string {
	msg := fmt.Sprintf("%s on %s failed", e.Op, e.Table)
	if e.Kind != KindOther {
		msg += ": " + e.Kind.String()
	}
	if e.Constraint != "" {
		msg += fmt.Sprintf(" (%s)", e.Constraint)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *DBError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match a DBError against the kind sentinels.
func (e *DBError) Is(target error) bool {
	switch target {
	case ErrDuplicate:
		return e.Kind == KindUniqueViolation
	case ErrInvalidReference:
		return e.Kind == KindForeignKeyViolation
	case ErrInvalidEntity:
		return e.Kind == KindNotNullViolation || e.Kind == KindCheckViolation
	}
	return false
}

// AsDBError extracts a *DBError from err's chain.
func AsDBError(err error) (*DBError, bool) {
	var dbErr *DBError
	if errors.As(err, &dbErr) {
		return dbErr, true
	}
	return nil, false
}
