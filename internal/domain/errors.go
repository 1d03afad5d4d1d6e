package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrUnknownEntity is returned when a registry lookup names no entity.
	ErrUnknownEntity = errors.New("unknown entity")

	// ErrDuplicateEntity is returned when two definitions share a path or table.
	ErrDuplicateEntity = errors.New("duplicate entity definition")

	// ErrInvalidDefinition is returned when a definition is missing its table,
	// path or id column, or its id column is not part of the schema.
	ErrInvalidDefinition = errors.New("invalid entity definition")

	// ErrInvalidPassword is returned when a password cannot be hashed.
	ErrInvalidPassword = errors.New("invalid password")
)
