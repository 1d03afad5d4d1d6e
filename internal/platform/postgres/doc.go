// Package postgres provides the PostgreSQL implementation of the generic
// store.Model contract, the embedded schema migrations and the mapping of
// driver errors onto store.DBError kinds.
//
// Every table is served by the same TableModel; statements are built from
// the column names of the record being written, with identifiers quoted
// through pgx and values always passed as bind parameters.
package postgres
