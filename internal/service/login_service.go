package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gabinete-digital/gabinete-api/internal/sanitize"
	"github.com/gabinete-digital/gabinete-api/internal/service/auth"
	"github.com/gabinete-digital/gabinete-api/internal/store"
)

// Usuario columns read by the login flow.
const (
	colUsuarioID       = "usuario_id"
	colUsuarioEmail    = "usuario_email"
	colUsuarioNome     = "usuario_nome"
	colUsuarioSenha    = "usuario_senha"
	colUsuarioAtivo    = "usuario_ativo"
	colUsuarioGabinete = "usuario_gabinete"
	colUsuarioTipo     = "usuario_tipo"
	colUsuarioGestor   = "usuario_gestor"
)

// Session is the result of a successful login.
type Session struct {
	ID       string `json:"id"`
	Nome     string `json:"nome"`
	Email    string `json:"email"`
	Gabinete string `json:"gabinete"`
	Tipo     string `json:"tipo"`
	Gestor   bool   `json:"gestor"`
	Token    string `json:"token"`
}

// LoginService checks credentials against the usuario table and issues
// access tokens.
type LoginService struct {
	usuarios   store.Model
	verifier   auth.PasswordVerifier
	jwtService auth.JWTService
	sanitizer  *sanitize.Sanitizer
	logger     *slog.Logger
}

// NewLoginService creates a LoginService. usuarios must be bound to the
// usuario table.
func NewLoginService(
	usuarios store.Model,
	verifier auth.PasswordVerifier,
	jwtService auth.JWTService,
	sanitizer *sanitize.Sanitizer,
	logger *slog.Logger,
) *LoginService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoginService{
		usuarios:   usuarios,
		verifier:   verifier,
		jwtService: jwtService,
		sanitizer:  sanitizer,
		logger:     logger.With("component", "login_service"),
	}
}

// Login returns a Session for the usuario with email when password matches
// and the account is active. The password is compared as sent.
func (s *LoginService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = s.sanitizer.String(email, true)

	usuario, err := s.usuarios.FindOne(ctx, colUsuarioEmail, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up usuario: %w", err)
	}
	if usuario == nil {
		s.logger.Debug("login for unknown email")
		return nil, auth.ErrUserNotFound
	}

	id := text(usuario[colUsuarioID])
	if err := s.verifier.Compare(text(usuario[colUsuarioSenha]), password); err != nil {
		s.logger.Debug("login with wrong password", slog.String("usuario_id", id))
		return nil, auth.ErrInvalidPassword
	}

	if !truthy(usuario[colUsuarioAtivo]) {
		s.logger.Debug("login for inactive usuario", slog.String("usuario_id", id))
		return nil, auth.ErrInactiveUser
	}

	session := &Session{
		ID:       id,
		Nome:     text(usuario[colUsuarioNome]),
		Email:    text(usuario[colUsuarioEmail]),
		Gabinete: text(usuario[colUsuarioGabinete]),
		Tipo:     text(usuario[colUsuarioTipo]),
		Gestor:   truthy(usuario[colUsuarioGestor]),
	}

	token, err := s.jwtService.GenerateToken(ctx, auth.Claims{
		UserID:   session.ID,
		Email:    session.Email,
		Nome:     session.Nome,
		Gabinete: session.Gabinete,
		Tipo:     session.Tipo,
		Gestor:   session.Gestor,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	session.Token = token

	s.logger.Info("usuario logged in", slog.String("usuario_id", id))
	return session, nil
}

func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	}
	return fmt.Sprint(v)
}

// truthy reads the boolean columns, which may come back as bool, integer
// or text depending on the driver.
func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case int64:
		return t != 0
	case int:
		return t != 0
	case json.Number:
		n, err := t.Int64()
		return err == nil && n != 0
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return err == nil && b
	}
	return false
}
