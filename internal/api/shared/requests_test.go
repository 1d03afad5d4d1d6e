package shared

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePayload(t *testing.T) {
	t.Run("object keeps numbers as json.Number", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"emenda_valor": 1500.50, "emenda_ano": 2025}`))

		payload, err := DecodePayload(req)
		require.NoError(t, err)

		m, ok := payload.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, json.Number("1500.50"), m["emenda_valor"])
		assert.Equal(t, json.Number("2025"), m["emenda_ano"])
	})

	t.Run("empty body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))

		payload, err := DecodePayload(req)
		require.NoError(t, err)
		assert.Nil(t, payload)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":`))

		_, err := DecodePayload(req)
		assert.Error(t, err)
	})
}

type loginLike struct {
	Email string `json:"email" validate:"required"`
}

func TestDecodeJSONAndValidate(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.com"}`))

	var body loginLike
	require.NoError(t, DecodeJSON(req, &body))
	assert.NoError(t, ValidateRequest(body))

	assert.Error(t, ValidateRequest(loginLike{}))

	empty := httptest.NewRequest(http.MethodPost, "/", nil)
	assert.ErrorIs(t, DecodeJSON(empty, &body), ErrEmptyBody)
}
