package store

import (
	"context"
	"database/sql"
)

// DBTX is an interface that abstracts the database access layer.
// It is implemented by both *sql.DB and *sql.Tx, allowing our code
// to work with either a database connection or a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Record is a single row keyed by column name.
type Record map[string]any

// Model is the generic data-access contract bound to one table.
//
// Column names passed to Create, Update and the lookup methods are
// interpolated into SQL; callers must only pass names that were checked
// against the entity's column schema first.
type Model interface {
	// Table returns the table this model is bound to.
	Table() string

	// Create inserts one row using every key of data as a column.
	Create(ctx context.Context, data Record) error

	// GetAll returns every row of the table.
	GetAll(ctx context.Context) ([]Record, error)

	// GetAllByColumn returns the rows where column equals value.
	GetAllByColumn(ctx context.Context, column string, value any) ([]Record, error)

	// FindOne returns the first row where column equals value, or a nil
	// Record and nil error when nothing matches.
	FindOne(ctx context.Context, column string, value any) (Record, error)

	// Delete removes the rows where column equals value. The boolean reports
	// that the statement executed, not that a row was affected; callers check
	// existence with FindOne first.
	Delete(ctx context.Context, column string, value any) (bool, error)

	// Update sets the columns in data on the rows where idColumn equals idValue.
	Update(ctx context.Context, idColumn string, idValue any, data Record) (bool, error)
}
