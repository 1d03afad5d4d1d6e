package domain

import (
	"fmt"

	"github.com/gabinete-digital/gabinete-api/internal/schema"
)

// Hook mutates a sanitized payload before it is validated and written.
type Hook func(data map[string]any) error

// Definition describes one CRUD entity.
type Definition struct {
	// Path is the URL segment under /api, e.g. "pessoa-tipo".
	Path string
	// Table is the database table.
	Table string
	// IDColumn holds the UUID primary key.
	IDColumn string
	// GabineteColumn is the tenant column. Entities without one are listed
	// globally instead of per gabinete.
	GabineteColumn string
	Columns        schema.Columns

	// Noun names one record in messages ("Tipo de pessoa").
	Noun string
	// Feminine selects the grammatical gender of generated messages.
	Feminine bool
	// EmptyMessage is returned when a listing has no rows.
	EmptyMessage string
	// DependentsMessage replaces the default message when a delete is
	// refused by a foreign key.
	DependentsMessage string
	// InvalidReferenceMessage is returned when a write names a missing
	// foreign row.
	InvalidReferenceMessage string

	// Hidden columns are removed from every response.
	Hidden []string
	// Raw columns skip the sanitizer; their values are consumed by hooks.
	Raw []string

	BeforeCreate Hook
	BeforeUpdate Hook
}

// Validate checks that the definition can drive the CRUD handler.
func (d Definition) Validate() error {
	switch {
	case d.Path == "":
		return fmt.Errorf("%w: empty path", ErrInvalidDefinition)
	case d.Table == "":
		return fmt.Errorf("%w: %s has no table", ErrInvalidDefinition, d.Path)
	case d.IDColumn == "" || !d.Columns.Has(d.IDColumn):
		return fmt.Errorf("%w: %s id column %q not in schema", ErrInvalidDefinition, d.Path, d.IDColumn)
	case d.GabineteColumn != "" && !d.Columns.Has(d.GabineteColumn):
		return fmt.Errorf("%w: %s gabinete column %q not in schema", ErrInvalidDefinition, d.Path, d.GabineteColumn)
	}
	return nil
}

// Tenant reports whether records are partitioned by gabinete.
func (d Definition) Tenant() bool {
	return d.GabineteColumn != ""
}

func (d Definition) suffix(masculine, feminine string) string {
	if d.Feminine {
		return feminine
	}
	return masculine
}

// CreatedMessage is returned with 201.
func (d Definition) CreatedMessage() string {
	return d.Noun + " " + d.suffix("criado", "criada") + " com sucesso"
}

// UpdatedMessage is returned after a successful update.
func (d Definition) UpdatedMessage() string {
	return d.Noun + " " + d.suffix("atualizado", "atualizada") + " com sucesso"
}

// DeletedMessage is returned after a successful delete.
func (d Definition) DeletedMessage() string {
	return d.Noun + " " + d.suffix("deletado", "deletada") + " com sucesso"
}

// NotFoundMessage is returned with 404.
func (d Definition) NotFoundMessage() string {
	return d.Noun + " não " + d.suffix("encontrado", "encontrada")
}

// ConflictMessage is returned when a unique constraint rejects a write.
func (d Definition) ConflictMessage() string {
	return d.Noun + " já existe"
}

// DeleteRefusedMessage is returned when dependent rows block a delete.
func (d Definition) DeleteRefusedMessage() string {
	if d.DependentsMessage != "" {
		return d.DependentsMessage
	}
	return d.Noun + " não pode ser " + d.suffix("deletado", "deletada") + " pois possui dependências"
}

// ReferenceMessage is returned when a write points at a missing row.
func (d Definition) ReferenceMessage() string {
	if d.InvalidReferenceMessage != "" {
		return d.InvalidReferenceMessage
	}
	return "Registro relacionado não encontrado"
}

// ListEmptyMessage is returned with status "empty".
func (d Definition) ListEmptyMessage() string {
	if d.EmptyMessage != "" {
		return d.EmptyMessage
	}
	return "Nenhum registro encontrado"
}

// IsRaw reports whether column bypasses the sanitizer.
func (d Definition) IsRaw(column string) bool {
	for _, c := range d.Raw {
		if c == column {
			return true
		}
	}
	return false
}

// Redact removes hidden columns from record in place.
func (d Definition) Redact(record map[string]any) {
	for _, c := range d.Hidden {
		delete(record, c)
	}
}
