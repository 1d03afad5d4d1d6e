// Package api implements the HTTP handlers of the gabinete API.
//
// Every handler answers with the JSON envelope built by shared.Responder.
// EntityHandler serves the generic CRUD routes of each registered entity,
// AuthHandler the login flow, UploadHandler file uploads and
// FallbackHandler the health check plus the 404 and 405 answers. Service
// errors are translated to envelope statuses in errors.go.
package api
