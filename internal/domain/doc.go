// Package domain declares the gabinete entities: the table each one lives in,
// its column schema, the messages shown to API clients and the write hooks
// that run before a record is stored.
//
// Entities are plain data. The generic CRUD handler in internal/api reads a
// Definition and drives the sanitizer, the schema validator and a store.Model
// from it, so adding an entity means adding one Definition to the registry.
package domain
