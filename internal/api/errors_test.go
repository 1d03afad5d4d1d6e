package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gabinete-digital/gabinete-api/internal/schema"
	"github.com/gabinete-digital/gabinete-api/internal/service"
	"github.com/gabinete-digital/gabinete-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapEntityError(t *testing.T) {
	def := orgaoTipo()

	tests := []struct {
		name     string
		err      error
		deleting bool
		want     entityFailure
	}{
		{
			name: "not found",
			err:  service.ErrNotFound,
			want: entityFailure{StatusNotFound, http.StatusNotFound, "Tipo de órgão não encontrado", ""},
		},
		{
			name: "not allowed wins over missing",
			err: &service.ValidationError{Result: schema.Result{
				NotAllowed: []string{"x", "y"}, MissingRequired: []string{"z"},
			}},
			want: entityFailure{StatusBadRequest, http.StatusBadRequest, "Campos não permitidos: x, y", ""},
		},
		{
			name: "missing required",
			err: &service.ValidationError{Result: schema.Result{
				NotAllowed: []string{}, MissingRequired: []string{"a", "b"},
			}},
			want: entityFailure{StatusBadRequest, http.StatusBadRequest, MsgMissingRequired,
				"Campos obrigatórios faltando: a, b"},
		},
		{
			name: "generic duplicate",
			err:  fmt.Errorf("wrapped: %w", &store.DBError{Kind: store.KindUniqueViolation, Constraint: "uq_orgaos_tipos_nome"}),
			want: entityFailure{StatusConflict, http.StatusConflict, "Tipo de órgão já existe", ""},
		},
		{
			name: "duplicate email by column",
			err:  &store.DBError{Kind: store.KindUniqueViolation, Column: "pessoa_email"},
			want: entityFailure{StatusConflict, http.StatusConflict, MsgDuplicateEmail, ""},
		},
		{
			name: "reference on write",
			err:  &store.DBError{Kind: store.KindForeignKeyViolation},
			want: entityFailure{StatusBadRequest, http.StatusBadRequest, "Registro relacionado não encontrado", ""},
		},
		{
			name:     "reference on delete",
			err:      &store.DBError{Kind: store.KindForeignKeyViolation},
			deleting: true,
			want: entityFailure{StatusBadRequest, http.StatusBadRequest,
				"Tipo de órgão não pode ser deletado pois possui órgãos associados", ""},
		},
		{
			name: "not null",
			err:  &store.DBError{Kind: store.KindNotNullViolation},
			want: entityFailure{StatusBadRequest, http.StatusBadRequest, MsgInvalidData, ""},
		},
		{
			name: "hook rejection",
			err:  fmt.Errorf("%w: bad password", service.ErrInvalidPayload),
			want: entityFailure{StatusBadRequest, http.StatusBadRequest, MsgInvalidData, ""},
		},
		{
			name: "other",
			err:  errors.New("boom"),
			want: entityFailure{StatusInternalError, http.StatusInternalServerError, MsgInternalError, ""},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, mapEntityError(def, tc.err, tc.deleting))
		})
	}
}
