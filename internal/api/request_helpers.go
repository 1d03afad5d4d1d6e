package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// pathParam returns the trimmed URL parameter name.
func pathParam(r *http.Request, name string) string {
	return strings.TrimSpace(chi.URLParam(r, name))
}
