package mocks

import (
	"context"

	"github.com/gabinete-digital/gabinete-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockModel is a mock of store.Model for use with testify/mock
type TestifyMockModel struct {
	mock.Mock
	TableName string
}

var _ store.Model = (*TestifyMockModel)(nil)

// Table returns TableName without recording a call.
func (m *TestifyMockModel) Table() string {
	return m.TableName
}

// Create is a mock implementation of store.Model.Create
func (m *TestifyMockModel) Create(ctx context.Context, data store.Record) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}

// GetAll is a mock implementation of store.Model.GetAll
func (m *TestifyMockModel) GetAll(ctx context.Context) ([]store.Record, error) {
	args := m.Called(ctx)
	if records, ok := args.Get(0).([]store.Record); ok {
		return records, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetAllByColumn is a mock implementation of store.Model.GetAllByColumn
func (m *TestifyMockModel) GetAllByColumn(
	ctx context.Context,
	column string,
	value any,
) ([]store.Record, error) {
	args := m.Called(ctx, column, value)
	if records, ok := args.Get(0).([]store.Record); ok {
		return records, args.Error(1)
	}
	return nil, args.Error(1)
}

// FindOne is a mock implementation of store.Model.FindOne
func (m *TestifyMockModel) FindOne(ctx context.Context, column string, value any) (store.Record, error) {
	args := m.Called(ctx, column, value)
	if record, ok := args.Get(0).(store.Record); ok {
		return record, args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete is a mock implementation of store.Model.Delete
func (m *TestifyMockModel) Delete(ctx context.Context, column string, value any) (bool, error) {
	args := m.Called(ctx, column, value)
	return args.Bool(0), args.Error(1)
}

// Update is a mock implementation of store.Model.Update
func (m *TestifyMockModel) Update(
	ctx context.Context,
	idColumn string,
	idValue any,
	data store.Record,
) (bool, error) {
	args := m.Called(ctx, idColumn, idValue, data)
	return args.Bool(0), args.Error(1)
}
