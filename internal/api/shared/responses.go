package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"

	"github.com/gabinete-digital/gabinete-api/internal/redact"
)

// Envelope is the body of every API response. Status and StatusCode are
// always present; the other members are omitted when empty.
type Envelope struct {
	Status     string `json:"status"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message,omitempty"`
	Data       any    `json:"data,omitempty"`
	Links      []any  `json:"links,omitempty"`
	Errors     any    `json:"errors,omitempty"`
}

// EnvelopeOption sets an optional envelope member.
type EnvelopeOption func(*Envelope)

// WithMessage sets the human readable message.
func WithMessage(message string) EnvelopeOption {
	return func(e *Envelope) { e.Message = message }
}

// WithData sets the payload.
func WithData(data any) EnvelopeOption {
	return func(e *Envelope) { e.Data = data }
}

// WithLinks sets related links.
func WithLinks(links ...any) EnvelopeOption {
	return func(e *Envelope) { e.Links = links }
}

// WithErrors sets the error detail. It only reaches the client when the
// Responder runs in development mode.
func WithErrors(detail any) EnvelopeOption {
	return func(e *Envelope) { e.Errors = detail }
}

// WithErrorMessage is WithErrors with the {"message": ...} shape used by
// handlers.
func WithErrorMessage(message string) EnvelopeOption {
	return WithErrors(map[string]string{"message": message})
}

// Responder writes envelopes. It is built once from configuration and shared
// by every handler.
type Responder struct {
	development bool
}

// NewResponder returns a Responder. development enables the errors member.
func NewResponder(development bool) *Responder {
	return &Responder{development: development}
}

// Development reports whether error detail is exposed.
func (rs *Responder) Development() bool {
	return rs.development
}

// Build assembles an envelope, dropping empty members and, outside
// development mode, the error detail.
func (rs *Responder) Build(status string, code int, opts ...EnvelopeOption) Envelope {
	env := Envelope{Status: status, StatusCode: code}
	for _, opt := range opts {
		opt(&env)
	}

	if isEmpty(env.Data) {
		env.Data = nil
	}
	if len(env.Links) == 0 {
		env.Links = nil
	}
	if !rs.development || isEmpty(env.Errors) {
		env.Errors = nil
	}
	return env
}

// Respond writes the envelope as JSON with code as the HTTP status.
func (rs *Responder) Respond(
	w http.ResponseWriter,
	r *http.Request,
	status string,
	code int,
	opts ...EnvelopeOption,
) {
	RespondWithJSON(w, r, code, rs.Build(status, code, opts...))
}

// RespondWithErrorAndLog writes an error envelope and logs err. The raw error
// is only copied into the envelope in development mode; the log line always
// carries the redacted form.
//
// Log level strategy:
// - 5xx errors: Always logged at ERROR level
// - 4xx errors: Logged at DEBUG level
func (rs *Responder) RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status string,
	code int,
	message string,
	err error,
	opts ...EnvelopeOption,
) {
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", code),
		slog.String("user_message", message),
	}

	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)),
		)
		opts = append([]EnvelopeOption{WithErrorMessage(err.Error())}, opts...)
	}

	logLevel := slog.LevelDebug
	if code >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	opts = append([]EnvelopeOption{WithMessage(message)}, opts...)
	rs.Respond(w, r, status, code, opts...)
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// isEmpty treats nil, empty strings and empty maps, slices and arrays as absent.
func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Map, reflect.Slice, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
