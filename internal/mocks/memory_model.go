package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/gabinete-digital/gabinete-api/internal/store"
)

// MemoryModel is an in-memory store.Model keyed by one id column.
// Values are compared with fmt.Sprint so json.Number and string ids match.
type MemoryModel struct {
	mu       sync.Mutex
	table    string
	idColumn string
	rows     []store.Record

	// Err, when set, is returned by every method.
	Err error
	// CreateErr and UpdateErr and DeleteErr override Err for one operation.
	CreateErr error
	UpdateErr error
	DeleteErr error
}

var _ store.Model = (*MemoryModel)(nil)

// NewMemoryModel returns an empty model for table.
func NewMemoryModel(table, idColumn string, rows ...store.Record) *MemoryModel {
	m := &MemoryModel{table: table, idColumn: idColumn}
	for _, row := range rows {
		m.rows = append(m.rows, clone(row))
	}
	return m
}

// Rows returns a copy of the stored rows.
func (m *MemoryModel) Rows() []store.Record {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]store.Record, 0, len(m.rows))
	for _, row := range m.rows {
		out = append(out, clone(row))
	}
	return out
}

// Table implements store.Model.
func (m *MemoryModel) Table() string {
	return m.table
}

// Create implements store.Model.
func (m *MemoryModel) Create(_ context.Context, data store.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := first(m.CreateErr, m.Err); err != nil {
		return err
	}
	if len(data) == 0 {
		return store.ErrEmptyData
	}
	m.rows = append(m.rows, clone(data))
	return nil
}

// GetAll implements store.Model.
func (m *MemoryModel) GetAll(_ context.Context) ([]store.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]store.Record, 0, len(m.rows))
	for _, row := range m.rows {
		out = append(out, clone(row))
	}
	return out, nil
}

// GetAllByColumn implements store.Model.
func (m *MemoryModel) GetAllByColumn(_ context.Context, column string, value any) ([]store.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]store.Record, 0)
	for _, row := range m.rows {
		if matches(row, column, value) {
			out = append(out, clone(row))
		}
	}
	return out, nil
}

// FindOne implements store.Model.
func (m *MemoryModel) FindOne(_ context.Context, column string, value any) (store.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	for _, row := range m.rows {
		if matches(row, column, value) {
			return clone(row), nil
		}
	}
	return nil, nil
}

// Delete implements store.Model.
func (m *MemoryModel) Delete(_ context.Context, column string, value any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := first(m.DeleteErr, m.Err); err != nil {
		return false, err
	}
	kept := m.rows[:0]
	for _, row := range m.rows {
		if !matches(row, column, value) {
			kept = append(kept, row)
		}
	}
	m.rows = kept
	return true, nil
}

// Update implements store.Model.
func (m *MemoryModel) Update(_ context.Context, idColumn string, idValue any, data store.Record) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := first(m.UpdateErr, m.Err); err != nil {
		return false, err
	}
	if len(data) == 0 {
		return false, store.ErrEmptyData
	}
	for _, row := range m.rows {
		if matches(row, idColumn, idValue) {
			for k, v := range data {
				row[k] = v
			}
		}
	}
	return true, nil
}

// Columns returns the sorted column names of the first row whose id column
// equals id, or nil.
func (m *MemoryModel) Columns(id any) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, row := range m.rows {
		if matches(row, m.idColumn, id) {
			cols := make([]string, 0, len(row))
			for c := range row {
				cols = append(cols, c)
			}
			sort.Strings(cols)
			return cols
		}
	}
	return nil
}

func matches(row store.Record, column string, value any) bool {
	v, ok := row[column]
	return ok && fmt.Sprint(v) == fmt.Sprint(value)
}

func clone(r store.Record) store.Record {
	out := make(store.Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func first(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
