package middleware

import (
	"net/http"
)

const (
	corsAllowHeaders = "X-Requested-With, Content-Type, Accept, Origin, Authorization"
	corsAllowMethods = "GET, POST, PUT, DELETE"
)

// CORS sets the cross-origin headers on every response and answers
// preflight OPTIONS requests with 204. An empty origin means "*".
func CORS(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
			h.Set("Access-Control-Allow-Methods", corsAllowMethods)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
