package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gabinete-digital/gabinete-api/internal/api/shared"
	"github.com/gabinete-digital/gabinete-api/internal/mocks"
	"github.com/gabinete-digital/gabinete-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	claims := &auth.Claims{UserID: "u-1", Gabinete: "g-1", Email: "ana@example.com"}

	tests := []struct {
		name            string
		authHeader      string
		validateErr     error
		claims          *auth.Claims
		expectedStatus  int
		expectedMessage string
		expectedToken   string
	}{
		{
			name:           "valid token",
			authHeader:     "Bearer valid-token",
			claims:         claims,
			expectedStatus: http.StatusOK,
			expectedToken:  "valid-token",
		},
		{
			name:           "lowercase scheme",
			authHeader:     "bearer valid-token",
			claims:         claims,
			expectedStatus: http.StatusOK,
			expectedToken:  "valid-token",
		},
		{
			name:            "missing auth header",
			authHeader:      "",
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: MsgTokenMissing,
		},
		{
			name:            "invalid auth format",
			authHeader:      "Basic dXNlcjpwYXNz",
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: MsgTokenInvalid,
		},
		{
			name:            "bearer without token",
			authHeader:      "Bearer   ",
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: MsgTokenInvalid,
		},
		{
			name:            "expired token",
			authHeader:      "Bearer expired-token",
			validateErr:     auth.ErrExpiredToken,
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: MsgTokenExpired,
		},
		{
			name:            "invalid token",
			authHeader:      "Bearer invalid-token",
			validateErr:     auth.ErrInvalidToken,
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: MsgTokenInvalid,
		},
		{
			name:            "unexpected validation error",
			authHeader:      "Bearer odd-token",
			validateErr:     errors.New("boom"),
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: MsgTokenInvalid,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var seenToken string
			jwtService := &mocks.MockJWTService{
				ValidateTokenFn: func(_ context.Context, token string) (*auth.Claims, error) {
					seenToken = token
					return tt.claims, tt.validateErr
				},
			}

			mw := NewAuthMiddleware(jwtService, shared.NewResponder(false))

			var captured *auth.Claims
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				captured, _ = GetClaims(r)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/pessoa/g-1", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			mw.Authenticate(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, tt.expectedToken, seenToken)
				assert.Same(t, tt.claims, captured)
				return
			}

			assert.Nil(t, captured)
			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "unauthorized", body["status"])
			assert.Equal(t, float64(http.StatusUnauthorized), body["status_code"])
			assert.Equal(t, tt.expectedMessage, body["message"])
			assert.NotContains(t, body, "errors")
		})
	}
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{header: "Bearer abc.def.ghi", token: "abc.def.ghi", ok: true},
		{header: "BEARER abc", token: "abc", ok: true},
		{header: "Bearer\tabc ", token: "abc", ok: true},
		{header: "Bearerabc", ok: false},
		{header: "Token abc", ok: false},
		{header: "Bearer ", ok: false},
	}

	for _, tc := range tests {
		token, ok := BearerToken(tc.header)
		assert.Equal(t, tc.ok, ok, tc.header)
		assert.Equal(t, tc.token, token, tc.header)
	}
}
