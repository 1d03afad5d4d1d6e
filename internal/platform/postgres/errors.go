package postgres

import (
	"errors"

	"github.com/gabinete-digital/gabinete-api/internal/store"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const (
	// uniqueViolationCode is the PostgreSQL error code for unique constraint violations
	uniqueViolationCode = "23505"

	// foreignKeyViolationCode is the PostgreSQL error code for foreign key violations
	foreignKeyViolationCode = "23503"

	// checkViolationCode is the PostgreSQL error code for check constraint violations
	checkViolationCode = "23514"

	// notNullViolationCode is the PostgreSQL error code for not null violations
	notNullViolationCode = "23502"
)

// ClassifyError wraps a driver error in a *store.DBError whose Kind is
// derived from the PostgreSQL SQLSTATE code. Errors that are not
// *pgconn.PgError (network failures, scan errors) become KindOther.
// A nil err yields nil.
func ClassifyError(err error, table, op string) error {
	if err == nil {
		return nil
	}

	dbErr := &store.DBError{
		Kind:  store.KindOther,
		Table: table,
		Op:    op,
		Err:   err,
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		dbErr.Constraint = pgErr.ConstraintName
		dbErr.Column = pgErr.ColumnName
		switch pgErr.Code {
		case uniqueViolationCode:
			dbErr.Kind = store.KindUniqueViolation
		case foreignKeyViolationCode:
			dbErr.Kind = store.KindForeignKeyViolation
		case notNullViolationCode:
			dbErr.Kind = store.KindNotNullViolation
		case checkViolationCode:
			dbErr.Kind = store.KindCheckViolation
		}
	}

	return dbErr
}
