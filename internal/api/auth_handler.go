package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gabinete-digital/gabinete-api/internal/api/shared"
	"github.com/gabinete-digital/gabinete-api/internal/service"
	"github.com/gabinete-digital/gabinete-api/internal/service/auth"
)

// Login messages.
const (
	MsgLoginSuccess    = "Login realizado com sucesso"
	MsgUserNotFound    = "Usuário não encontrado"
	MsgInvalidPassword = "Senha inválida"
	MsgInactiveUser    = "Usuário inativo"
)

// Authenticator checks credentials and issues a session.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*service.Session, error)
}

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	authenticator Authenticator
	responder     *shared.Responder
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(authenticator Authenticator, responder *shared.Responder) *AuthHandler {
	return &AuthHandler{
		authenticator: authenticator,
		responder:     responder,
	}
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		h.responder.RespondWithErrorAndLog(w, r, StatusBadRequest, http.StatusBadRequest, MsgLoginFieldsRequired, err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		h.responder.RespondWithErrorAndLog(w, r, StatusBadRequest, http.StatusBadRequest, MsgLoginFieldsRequired, nil)
		return
	}

	session, err := h.authenticator.Login(r.Context(), req.Email, req.Senha)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			h.unauthorized(w, r, MsgUserNotFound, err)
		case errors.Is(err, auth.ErrInvalidPassword):
			h.unauthorized(w, r, MsgInvalidPassword, err)
		case errors.Is(err, auth.ErrInactiveUser):
			h.unauthorized(w, r, MsgInactiveUser, err)
		default:
			h.responder.RespondWithErrorAndLog(w, r, StatusInternalError, http.StatusInternalServerError, MsgInternalError, err)
		}
		return
	}

	h.responder.Respond(w, r, StatusSuccess, http.StatusOK,
		shared.WithMessage(MsgLoginSuccess),
		shared.WithData(session),
	)
}

func (h *AuthHandler) unauthorized(w http.ResponseWriter, r *http.Request, message string, err error) {
	h.responder.RespondWithErrorAndLog(w, r, StatusUnauthorized, http.StatusUnauthorized, message, err)
}
