package api

import (
	"net/http"

	"github.com/gabinete-digital/gabinete-api/internal/api/shared"
	"github.com/gabinete-digital/gabinete-api/internal/domain"
	"github.com/gabinete-digital/gabinete-api/internal/service"
)

// EntityHandler serves the CRUD routes of one entity.
type EntityHandler struct {
	svc       *service.EntityService
	def       domain.Definition
	responder *shared.Responder
}

// NewEntityHandler creates a handler for the entity managed by svc.
func NewEntityHandler(svc *service.EntityService, responder *shared.Responder) *EntityHandler {
	return &EntityHandler{
		svc:       svc,
		def:       svc.Definition(),
		responder: responder,
	}
}

// Definition returns the entity served by h.
func (h *EntityHandler) Definition() domain.Definition {
	return h.def
}

// Create handles POST /api/{entity}.
func (h *EntityHandler) Create(w http.ResponseWriter, r *http.Request) {
	payload, err := shared.DecodePayload(r)
	if err != nil {
		h.responder.RespondWithErrorAndLog(w, r, StatusBadRequest, http.StatusBadRequest, MsgInvalidBody, err)
		return
	}

	id, err := h.svc.Create(r.Context(), payload)
	if err != nil {
		h.fail(w, r, err, false)
		return
	}

	h.responder.Respond(w, r, StatusCreated, http.StatusCreated,
		shared.WithMessage(h.def.CreatedMessage()),
		shared.WithData(CreatedResponse{ID: id}),
	)
}

// Update handles PUT /api/{entity}/{id}.
func (h *EntityHandler) Update(w http.ResponseWriter, r *http.Request) {
	payload, err := shared.DecodePayload(r)
	if err != nil {
		h.responder.RespondWithErrorAndLog(w, r, StatusBadRequest, http.StatusBadRequest, MsgInvalidBody, err)
		return
	}

	if err := h.svc.Update(r.Context(), pathParam(r, "id"), payload); err != nil {
		h.fail(w, r, err, false)
		return
	}

	h.responder.Respond(w, r, StatusSuccess, http.StatusOK, shared.WithMessage(h.def.UpdatedMessage()))
}

// List handles GET /api/{entity}/{gabinete} for tenant entities and
// GET /api/{entity} for global ones.
func (h *EntityHandler) List(w http.ResponseWriter, r *http.Request) {
	gabinete := pathParam(r, "gabinete")
	if h.def.Tenant() && gabinete == "" {
		h.responder.Respond(w, r, StatusBadRequest, http.StatusBadRequest, shared.WithMessage(MsgMissingGabinete))
		return
	}

	records, err := h.svc.List(r.Context(), gabinete)
	if err != nil {
		h.fail(w, r, err, false)
		return
	}

	if len(records) == 0 {
		h.responder.Respond(w, r, StatusEmpty, http.StatusOK, shared.WithMessage(h.def.ListEmptyMessage()))
		return
	}
	h.responder.Respond(w, r, StatusSuccess, http.StatusOK, shared.WithData(records))
}

// Get handles the single-record lookup.
func (h *EntityHandler) Get(w http.ResponseWriter, r *http.Request) {
	record, err := h.svc.Get(r.Context(), pathParam(r, "id"))
	if err != nil {
		h.fail(w, r, err, false)
		return
	}
	h.responder.Respond(w, r, StatusSuccess, http.StatusOK, shared.WithData(record))
}

// Delete handles DELETE /api/{entity}/{id}.
func (h *EntityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), pathParam(r, "id")); err != nil {
		h.fail(w, r, err, true)
		return
	}
	h.responder.Respond(w, r, StatusSuccess, http.StatusOK, shared.WithMessage(h.def.DeletedMessage()))
}

func (h *EntityHandler) fail(w http.ResponseWriter, r *http.Request, err error, deleting bool) {
	failure := mapEntityError(h.def, err, deleting)

	var opts []shared.EnvelopeOption
	if failure.detail != "" {
		opts = append(opts, shared.WithErrorMessage(failure.detail))
	}
	h.responder.RespondWithErrorAndLog(w, r, failure.status, failure.code, failure.message, err, opts...)
}
