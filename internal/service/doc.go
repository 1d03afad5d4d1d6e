// Package service holds the use cases behind the HTTP handlers: the generic
// entity CRUD flow (sanitize, hook, validate, persist) and the login flow.
//
// Services depend on the store.Model interface, never on a concrete
// database, and return sentinel errors that the api package maps to
// envelopes.
package service
