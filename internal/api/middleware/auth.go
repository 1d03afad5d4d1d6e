package middleware

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/gabinete-digital/gabinete-api/internal/api/shared"
	"github.com/gabinete-digital/gabinete-api/internal/service/auth"
)

// Messages returned by the auth gate.
const (
	MsgTokenMissing = "Token não fornecido"
	MsgTokenInvalid = "Token inválido"
	MsgTokenExpired = "Token expirado"
)

var bearerPattern = regexp.MustCompile(`(?i)^\s*Bearer\s+(.+)$`)

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
	responder  *shared.Responder
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService, responder *shared.Responder) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		responder:  responder,
	}
}

// Authenticate validates the bearer token in the Authorization header and
// attaches the verified claims to the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			m.reject(w, r, MsgTokenMissing, auth.ErrMissingToken)
			return
		}

		token, ok := BearerToken(authHeader)
		if !ok {
			m.reject(w, r, MsgTokenInvalid, auth.ErrInvalidToken)
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				m.reject(w, r, MsgTokenExpired, err)
				return
			}
			m.reject(w, r, MsgTokenInvalid, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithClaims(r.Context(), claims)))
	})
}

func (m *AuthMiddleware) reject(w http.ResponseWriter, r *http.Request, message string, err error) {
	m.responder.RespondWithErrorAndLog(w, r, "unauthorized", http.StatusUnauthorized, message, err)
}

// BearerToken extracts the token from an Authorization header value. The
// scheme is matched case-insensitively.
func BearerToken(header string) (string, bool) {
	match := bearerPattern.FindStringSubmatch(header)
	if match == nil {
		return "", false
	}
	token := strings.TrimSpace(match[1])
	return token, token != ""
}

// GetClaims extracts the verified identity from the request context.
func GetClaims(r *http.Request) (*auth.Claims, bool) {
	return shared.ClaimsFromContext(r.Context())
}
