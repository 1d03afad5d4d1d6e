package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/gabinete-digital/gabinete-api/internal/domain"
	"github.com/gabinete-digital/gabinete-api/internal/mocks"
	"github.com/gabinete-digital/gabinete-api/internal/sanitize"
	"github.com/gabinete-digital/gabinete-api/internal/schema"
	"github.com/gabinete-digital/gabinete-api/internal/service"
	"github.com/gabinete-digital/gabinete-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upperHasher struct{}

func (upperHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func pessoaTipo() domain.Definition {
	return domain.Definition{
		Path:           "pessoa-tipo",
		Table:          "pessoas_tipos",
		IDColumn:       "pessoa_tipo_id",
		GabineteColumn: "pessoa_tipo_gabinete",
		Columns: schema.Columns{
			"pessoa_tipo_id":        {Required: true},
			"pessoa_tipo_nome":      {Required: true},
			"pessoa_tipo_gabinete":  {Required: true},
			"pessoa_tipo_descricao": {},
		},
		Noun: "Tipo de pessoa",
	}
}

func usuarioDefinition(t *testing.T) domain.Definition {
	t.Helper()
	reg, err := domain.Gabinete(upperHasher{})
	require.NoError(t, err)
	def, err := reg.Lookup("usuario")
	require.NoError(t, err)
	return def
}

func TestEntityServiceCreate(t *testing.T) {
	t.Run("sanitizes and inserts with a generated id", func(t *testing.T) {
		model := mocks.NewMemoryModel("pessoas_tipos", "pessoa_tipo_id")
		svc := service.NewEntityService(pessoaTipo(), model, sanitize.New(), nil)

		id, err := svc.Create(context.Background(), map[string]any{
			"pessoa_tipo_nome":     "  <b>Eleitor</b> ",
			"pessoa_tipo_gabinete": "g1",
		})
		require.NoError(t, err)
		require.NotEmpty(t, id)

		rows := model.Rows()
		require.Len(t, rows, 1)
		assert.Equal(t, id, rows[0]["pessoa_tipo_id"])
		assert.Equal(t, "&lt;b&gt;Eleitor&lt;/b&gt;", rows[0]["pessoa_tipo_nome"])
	})

	t.Run("reports columns outside the schema", func(t *testing.T) {
		model := mocks.NewMemoryModel("pessoas_tipos", "pessoa_tipo_id")
		svc := service.NewEntityService(pessoaTipo(), model, sanitize.New(), nil)

		_, err := svc.Create(context.Background(), map[string]any{
			"pessoa_tipo_nome":     "Eleitor",
			"pessoa_tipo_gabinete": "g1",
			"zeta":                 1,
			"alpha":                2,
		})
		vErr, ok := service.AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, []string{"alpha", "zeta"}, vErr.Result.NotAllowed)
		assert.Empty(t, model.Rows())
	})

	t.Run("empty body reports required columns except the id", func(t *testing.T) {
		svc := service.NewEntityService(pessoaTipo(), mocks.NewMemoryModel("pessoas_tipos", "pessoa_tipo_id"), sanitize.New(), nil)

		_, err := svc.Create(context.Background(), nil)
		vErr, ok := service.AsValidationError(err)
		require.True(t, ok)
		assert.Empty(t, vErr.Result.NotAllowed)
		assert.Equal(t, []string{"pessoa_tipo_gabinete", "pessoa_tipo_nome"}, vErr.Result.MissingRequired)
	})

	t.Run("non-object body is a validation failure", func(t *testing.T) {
		svc := service.NewEntityService(pessoaTipo(), mocks.NewMemoryModel("pessoas_tipos", "pessoa_tipo_id"), sanitize.New(), nil)

		_, err := svc.Create(context.Background(), []any{"a"})
		vErr, ok := service.AsValidationError(err)
		require.True(t, ok)
		assert.Len(t, vErr.Result.MissingRequired, 3)
	})

	t.Run("wraps store errors", func(t *testing.T) {
		model := mocks.NewMemoryModel("pessoas_tipos", "pessoa_tipo_id")
		model.CreateErr = &store.DBError{Kind: store.KindUniqueViolation, Table: "pessoas_tipos", Op: "create"}
		svc := service.NewEntityService(pessoaTipo(), model, sanitize.New(), nil)

		_, err := svc.Create(context.Background(), map[string]any{
			"pessoa_tipo_nome":     "Eleitor",
			"pessoa_tipo_gabinete": "g1",
		})
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	t.Run("usuario password is hashed unsanitized", func(t *testing.T) {
		model := mocks.NewMemoryModel("usuario", "usuario_id")
		svc := service.NewEntityService(usuarioDefinition(t), model, sanitize.New(), nil)

		_, err := svc.Create(context.Background(), map[string]any{
			"usuario_tipo":     "1",
			"usuario_gabinete": "g1",
			"usuario_nome":     "Ana",
			"usuario_email":    "ana@example.com",
			"usuario_telefone": "61999999999",
			"usuario_senha":    "s3nh@<forte>",
			"usuario_gestor":   true,
		})
		require.NoError(t, err)

		rows := model.Rows()
		require.Len(t, rows, 1)
		assert.Equal(t, "hashed:s3nh@<forte>", rows[0]["usuario_senha"])
		assert.Equal(t, true, rows[0]["usuario_ativo"])
	})

	t.Run("hook failures are invalid payloads", func(t *testing.T) {
		svc := service.NewEntityService(usuarioDefinition(t), mocks.NewMemoryModel("usuario", "usuario_id"), sanitize.New(), nil)

		_, err := svc.Create(context.Background(), map[string]any{"usuario_senha": 123})
		assert.ErrorIs(t, err, service.ErrInvalidPayload)
	})
}

func TestEntityServiceUpdate(t *testing.T) {
	seed := store.Record{"pessoa_tipo_id": "t1", "pessoa_tipo_nome": "Eleitor", "pessoa_tipo_gabinete": "g1"}

	t.Run("updates only the sent columns", func(t *testing.T) {
		model := mocks.NewMemoryModel("pessoas_tipos", "pessoa_tipo_id", seed)
		svc := service.NewEntityService(pessoaTipo(), model, sanitize.New(), nil)

		err := svc.Update(context.Background(), "t1", map[string]any{"pessoa_tipo_descricao": "Base"})
		require.NoError(t, err)

		rows := model.Rows()
		assert.Equal(t, "Base", rows[0]["pessoa_tipo_descricao"])
		assert.Equal(t, "Eleitor", rows[0]["pessoa_tipo_nome"])
	})

	t.Run("missing record", func(t *testing.T) {
		svc := service.NewEntityService(pessoaTipo(), mocks.NewMemoryModel("pessoas_tipos", "pessoa_tipo_id"), sanitize.New(), nil)

		err := svc.Update(context.Background(), "nope", map[string]any{"pessoa_tipo_nome": "x"})
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("rejects unknown columns but not missing ones", func(t *testing.T) {
		model := mocks.NewMemoryModel("pessoas_tipos", "pessoa_tipo_id", seed)
		svc := service.NewEntityService(pessoaTipo(), model, sanitize.New(), nil)

		err := svc.Update(context.Background(), "t1", map[string]any{"cor": "azul"})
		vErr, ok := service.AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, []string{"cor"}, vErr.Result.NotAllowed)
		assert.Empty(t, vErr.Result.MissingRequired)
	})

	t.Run("id column is not rewritten", func(t *testing.T) {
		model := mocks.NewMemoryModel("pessoas_tipos", "pessoa_tipo_id", seed)
		svc := service.NewEntityService(pessoaTipo(), model, sanitize.New(), nil)

		err := svc.Update(context.Background(), "t1", map[string]any{"pessoa_tipo_id": "other"})
		assert.ErrorIs(t, err, service.ErrNothingToUpdate)
		assert.Equal(t, "t1", model.Rows()[0]["pessoa_tipo_id"])
	})

	t.Run("usuario password is rehashed", func(t *testing.T) {
		model := mocks.NewMemoryModel("usuario", "usuario_id", store.Record{"usuario_id": "u1", "usuario_senha": "old"})
		svc := service.NewEntityService(usuarioDefinition(t), model, sanitize.New(), nil)

		require.NoError(t, svc.Update(context.Background(), "u1", map[string]any{"usuario_senha": "nova"}))
		assert.Equal(t, "hashed:nova", model.Rows()[0]["usuario_senha"])
	})

	t.Run("empty usuario password keeps the stored hash", func(t *testing.T) {
		model := mocks.NewMemoryModel("usuario", "usuario_id",
			store.Record{"usuario_id": "u1", "usuario_senha": "hashed:secret", "usuario_nome": "Ana"})
		svc := service.NewEntityService(usuarioDefinition(t), model, sanitize.New(), nil)

		err := svc.Update(context.Background(), "u1", map[string]any{"usuario_senha": ""})
		assert.ErrorIs(t, err, service.ErrNothingToUpdate)
		assert.Equal(t, "hashed:secret", model.Rows()[0]["usuario_senha"])

		require.NoError(t, svc.Update(context.Background(), "u1",
			map[string]any{"usuario_senha": "", "usuario_nome": "Ana Maria"}))
		row := model.Rows()[0]
		assert.Equal(t, "hashed:secret", row["usuario_senha"])
		assert.Equal(t, "Ana Maria", row["usuario_nome"])
	})
}

func TestEntityServiceList(t *testing.T) {
	t.Run("tenant entities filter by gabinete", func(t *testing.T) {
		model := mocks.NewMemoryModel("pessoas_tipos", "pessoa_tipo_id",
			store.Record{"pessoa_tipo_id": "t1", "pessoa_tipo_gabinete": "g1"},
			store.Record{"pessoa_tipo_id": "t2", "pessoa_tipo_gabinete": "g2"},
		)
		svc := service.NewEntityService(pessoaTipo(), model, sanitize.New(), nil)

		records, err := svc.List(context.Background(), "g1")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "t1", records[0]["pessoa_tipo_id"])
	})

	t.Run("global entities list everything", func(t *testing.T) {
		def := pessoaTipo()
		def.GabineteColumn = ""
		model := mocks.NewMemoryModel("pessoas_tipos", "pessoa_tipo_id",
			store.Record{"pessoa_tipo_id": "t1"},
			store.Record{"pessoa_tipo_id": "t2"},
		)
		svc := service.NewEntityService(def, model, sanitize.New(), nil)

		records, err := svc.List(context.Background(), "")
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("hidden columns are removed", func(t *testing.T) {
		model := mocks.NewMemoryModel("usuario", "usuario_id",
			store.Record{"usuario_id": "u1", "usuario_gabinete": "g1", "usuario_senha": "hash"},
		)
		svc := service.NewEntityService(usuarioDefinition(t), model, sanitize.New(), nil)

		records, err := svc.List(context.Background(), "g1")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.NotContains(t, records[0], "usuario_senha")
	})

	t.Run("store failure", func(t *testing.T) {
		model := mocks.NewMemoryModel("pessoas_tipos", "pessoa_tipo_id")
		model.Err = errors.New("connection refused")
		svc := service.NewEntityService(pessoaTipo(), model, sanitize.New(), nil)

		_, err := svc.List(context.Background(), "g1")
		assert.ErrorContains(t, err, "connection refused")
	})
}

func TestEntityServiceGetAndDelete(t *testing.T) {
	model := mocks.NewMemoryModel("pessoas_tipos", "pessoa_tipo_id",
		store.Record{"pessoa_tipo_id": json.Number("7"), "pessoa_tipo_nome": "Eleitor"},
	)
	svc := service.NewEntityService(pessoaTipo(), model, sanitize.New(), nil)

	record, err := svc.Get(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "Eleitor", record["pessoa_tipo_nome"])

	_, err = svc.Get(context.Background(), "8")
	assert.ErrorIs(t, err, service.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), "8"), service.ErrNotFound)

	require.NoError(t, svc.Delete(context.Background(), "7"))
	assert.Empty(t, model.Rows())
}

func TestEntityServiceDeleteReferenced(t *testing.T) {
	model := mocks.NewMemoryModel("pessoas_tipos", "pessoa_tipo_id", store.Record{"pessoa_tipo_id": "t1"})
	model.DeleteErr = &store.DBError{Kind: store.KindForeignKeyViolation, Table: "pessoas_tipos", Op: "delete"}
	svc := service.NewEntityService(pessoaTipo(), model, sanitize.New(), nil)

	err := svc.Delete(context.Background(), "t1")
	assert.ErrorIs(t, err, store.ErrInvalidReference)
}
