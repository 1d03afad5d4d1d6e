// Package store defines the persistence contracts shared by the HTTP layer
// and the database implementations: the generic table Model, the Record row
// type, the DBTX handle and the tagged DBError used to classify failures.
package store
