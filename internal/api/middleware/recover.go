package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gabinete-digital/gabinete-api/internal/api/shared"
	"github.com/gabinete-digital/gabinete-api/internal/platform/logger"
)

// Recover converts a panic in a later handler into a 500 envelope.
// http.ErrAbortHandler is re-raised so the server can drop the connection.
func Recover(responder *shared.Responder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.FromContext(r.Context()).Error("panic recovered",
					"panic", fmt.Sprint(rec),
					"stack", string(debug.Stack()))

				responder.RespondWithErrorAndLog(w, r,
					"internal_server_error", http.StatusInternalServerError,
					"Erro interno do servidor", fmt.Errorf("panic: %v", rec))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
