package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gabinete-digital/gabinete-api/internal/domain"
	"github.com/gabinete-digital/gabinete-api/internal/sanitize"
	"github.com/gabinete-digital/gabinete-api/internal/schema"
	"github.com/gabinete-digital/gabinete-api/internal/store"
	"github.com/google/uuid"
)

// EntityService runs the CRUD use cases for one entity definition.
type EntityService struct {
	def       domain.Definition
	model     store.Model
	sanitizer *sanitize.Sanitizer
	logger    *slog.Logger
	newID     func() string
}

// NewEntityService binds def to model. Every payload passes through
// sanitizer before it reaches a hook or the schema check.
func NewEntityService(
	def domain.Definition,
	model store.Model,
	sanitizer *sanitize.Sanitizer,
	logger *slog.Logger,
) *EntityService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EntityService{
		def:       def,
		model:     model,
		sanitizer: sanitizer,
		logger:    logger.With("component", "entity_service", "entity", def.Path),
		newID:     uuid.NewString,
	}
}

// Definition returns the entity this service manages.
func (s *EntityService) Definition() domain.Definition {
	return s.def
}

// Create sanitizes payload, assigns a new id, runs the create hook,
// validates the result and inserts it. It returns the new id.
func (s *EntityService) Create(ctx context.Context, payload any) (string, error) {
	data, err := s.clean(payload)
	if err != nil {
		return "", err
	}

	id := s.newID()
	data[s.def.IDColumn] = id

	if s.def.BeforeCreate != nil {
		if err := s.def.BeforeCreate(data); err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
	}

	if result := schema.Validate(s.def.Columns, data); !result.Valid() {
		return "", &ValidationError{Result: result}
	}

	if err := s.model.Create(ctx, store.Record(data)); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", s.def.Path, err)
	}

	s.logger.Debug("record created", slog.String("id", id))
	return id, nil
}

// Update changes the columns present in payload on the record with id.
// Required columns may be omitted; unknown columns are rejected. The id
// column itself is never rewritten.
func (s *EntityService) Update(ctx context.Context, id string, payload any) error {
	id = s.sanitizer.String(id, true)

	existing, err := s.model.FindOne(ctx, s.def.IDColumn, id)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", s.def.Path, err)
	}
	if existing == nil {
		return ErrNotFound
	}

	data, err := s.clean(payload)
	if err != nil {
		return err
	}
	delete(data, s.def.IDColumn)

	if s.def.BeforeUpdate != nil {
		if err := s.def.BeforeUpdate(data); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
	}

	if result := schema.Validate(s.def.Columns, data); len(result.NotAllowed) > 0 {
		return &ValidationError{Result: schema.Result{
			NotAllowed:      result.NotAllowed,
			MissingRequired: []string{},
		}}
	}
	if len(data) == 0 {
		return ErrNothingToUpdate
	}

	if _, err := s.model.Update(ctx, s.def.IDColumn, id, store.Record(data)); err != nil {
		return fmt.Errorf("failed to update %s: %w", s.def.Path, err)
	}

	s.logger.Debug("record updated", slog.String("id", id), slog.Int("columns", len(data)))
	return nil
}

// List returns every record of a global entity, or the records of gabinete
// for a tenant entity. Hidden columns are removed.
func (s *EntityService) List(ctx context.Context, gabinete string) ([]store.Record, error) {
	var (
		records []store.Record
		err     error
	)
	if s.def.Tenant() {
		records, err = s.model.GetAllByColumn(ctx, s.def.GabineteColumn, s.sanitizer.String(gabinete, true))
	} else {
		records, err = s.model.GetAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.def.Path, err)
	}

	for _, record := range records {
		s.def.Redact(record)
	}
	return records, nil
}

// Get returns the record with id without its hidden columns.
func (s *EntityService) Get(ctx context.Context, id string) (store.Record, error) {
	record, err := s.model.FindOne(ctx, s.def.IDColumn, s.sanitizer.String(id, true))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", s.def.Path, err)
	}
	if record == nil {
		return nil, ErrNotFound
	}
	s.def.Redact(record)
	return record, nil
}

// Delete removes the record with id. A missing record is reported before
// any delete statement runs.
func (s *EntityService) Delete(ctx context.Context, id string) error {
	id = s.sanitizer.String(id, true)

	existing, err := s.model.FindOne(ctx, s.def.IDColumn, id)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", s.def.Path, err)
	}
	if existing == nil {
		return ErrNotFound
	}

	if _, err := s.model.Delete(ctx, s.def.IDColumn, id); err != nil {
		return fmt.Errorf("failed to delete %s: %w", s.def.Path, err)
	}

	s.logger.Debug("record deleted", slog.String("id", id))
	return nil
}

// clean sanitizes every column except the raw ones, which are copied as
// sent. A body that is not a JSON object fails validation with every
// required column missing.
func (s *EntityService) clean(payload any) (map[string]any, error) {
	if payload == nil {
		return make(map[string]any), nil
	}

	fields, ok := payload.(map[string]any)
	if !ok {
		return nil, &ValidationError{Result: schema.Validate(s.def.Columns, payload)}
	}

	data := make(map[string]any, len(fields))
	for key, value := range fields {
		if s.def.IsRaw(key) {
			data[key] = value
			continue
		}
		data[s.sanitizer.String(key, true)] = s.sanitizer.Clean(value, true)
	}
	return data, nil
}
