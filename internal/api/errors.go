package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gabinete-digital/gabinete-api/internal/domain"
	"github.com/gabinete-digital/gabinete-api/internal/service"
	"github.com/gabinete-digital/gabinete-api/internal/store"
)

// Envelope statuses.
const (
	StatusSuccess          = "success"
	StatusCreated          = "created"
	StatusEmpty            = "empty"
	StatusBadRequest       = "bad_request"
	StatusUnauthorized     = "unauthorized"
	StatusNotFound         = "not_found"
	StatusMethodNotAllowed = "method_not_allowed"
	StatusConflict         = "conflict"
	StatusInternalError    = "internal_server_error"
)

// Messages shared by several handlers.
const (
	MsgInternalError       = "Erro interno do servidor"
	MsgNotAllowedPrefix    = "Campos não permitidos: "
	MsgMissingRequired     = "Campos obrigatórios faltando"
	MsgInvalidBody         = "Corpo da requisição inválido"
	MsgInvalidData         = "Dados inválidos"
	MsgNothingToUpdate     = "Nenhum campo para atualizar"
	MsgDuplicateEmail      = "Email já cadastrado"
	MsgRouteNotFound       = "Rota não encontrada"
	MsgMethodNotAllowed    = "Método não permitido para esta rota"
	MsgMissingGabinete     = "ID do gabinete não informado"
	MsgLoginFieldsRequired = "Email e senha são obrigatórios"
)

// entityFailure is the envelope an entity operation failure maps to.
type entityFailure struct {
	status  string
	code    int
	message string
	detail  string // development-mode errors.message, when it differs from err
}

// mapEntityError translates a service or store error into an envelope.
// deleting selects the dependents message for foreign key violations.
func mapEntityError(def domain.Definition, err error, deleting bool) entityFailure {
	if vErr, ok := service.AsValidationError(err); ok {
		if len(vErr.Result.NotAllowed) > 0 {
			return entityFailure{
				status:  StatusBadRequest,
				code:    http.StatusBadRequest,
				message: MsgNotAllowedPrefix + strings.Join(vErr.Result.NotAllowed, ", "),
			}
		}
		return entityFailure{
			status:  StatusBadRequest,
			code:    http.StatusBadRequest,
			message: MsgMissingRequired,
			detail:  MsgMissingRequired + ": " + strings.Join(vErr.Result.MissingRequired, ", "),
		}
	}

	switch {
	case errors.Is(err, service.ErrNotFound):
		return entityFailure{status: StatusNotFound, code: http.StatusNotFound, message: def.NotFoundMessage()}
	case errors.Is(err, service.ErrInvalidPayload), errors.Is(err, store.ErrInvalidEntity):
		return entityFailure{status: StatusBadRequest, code: http.StatusBadRequest, message: MsgInvalidData}
	case errors.Is(err, service.ErrNothingToUpdate), errors.Is(err, store.ErrEmptyData):
		return entityFailure{status: StatusBadRequest, code: http.StatusBadRequest, message: MsgNothingToUpdate}
	case errors.Is(err, store.ErrDuplicate):
		message := def.ConflictMessage()
		if mentionsEmail(err) {
			message = MsgDuplicateEmail
		}
		return entityFailure{status: StatusConflict, code: http.StatusConflict, message: message}
	case errors.Is(err, store.ErrInvalidReference):
		message := def.ReferenceMessage()
		if deleting {
			message = def.DeleteRefusedMessage()
		}
		return entityFailure{status: StatusBadRequest, code: http.StatusBadRequest, message: message}
	}

	return entityFailure{status: StatusInternalError, code: http.StatusInternalServerError, message: MsgInternalError}
}

// mentionsEmail reports whether a unique violation was raised by an email
// column or constraint.
func mentionsEmail(err error) bool {
	dbErr, ok := store.AsDBError(err)
	if !ok {
		return false
	}
	return strings.Contains(dbErr.Constraint, "email") || strings.Contains(dbErr.Column, "email")
}
