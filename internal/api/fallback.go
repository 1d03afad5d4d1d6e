package api

import (
	"net/http"

	"github.com/gabinete-digital/gabinete-api/internal/api/shared"
)

// FallbackHandler answers requests no route handles, in the envelope format.
type FallbackHandler struct {
	responder *shared.Responder
}

// NewFallbackHandler creates a FallbackHandler.
func NewFallbackHandler(responder *shared.Responder) *FallbackHandler {
	return &FallbackHandler{responder: responder}
}

// NotFound is installed as the router's NotFound handler.
func (h *FallbackHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.responder.Respond(w, r, StatusNotFound, http.StatusNotFound, shared.WithMessage(MsgRouteNotFound))
}

// MethodNotAllowed is installed as the router's MethodNotAllowed handler.
func (h *FallbackHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.responder.Respond(w, r, StatusMethodNotAllowed, http.StatusMethodNotAllowed, shared.WithMessage(MsgMethodNotAllowed))
}

// Health handles GET /health.
func (h *FallbackHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.responder.Respond(w, r, StatusSuccess, http.StatusOK, shared.WithMessage("OK"))
}
