// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional config.yaml. The resulting
// Config is built once at startup and passed explicitly to the components
// that need it; nothing re-reads configuration per request.
package config
