package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/gabinete-digital/gabinete-api/internal/platform/logger"
	"github.com/gabinete-digital/gabinete-api/internal/store"
	"github.com/jackc/pgx/v5"
)

// TableModel implements store.Model against a single PostgreSQL table.
// SQL is generated from the column names it is given; every statement binds
// values as parameters and runs on its own, without a transaction.
type TableModel struct {
	db     store.DBTX
	table  string
	logger *slog.Logger
}

// Ensure TableModel implements store.Model interface
var _ store.Model = (*TableModel)(nil)

// NewTableModel binds a model to table using the shared database handle.
// The handle is owned by the caller; TableModel never opens or closes it.
// If logger is nil, a default logger will be used.
func NewTableModel(db store.DBTX, table string, logger *slog.Logger) *TableModel {
	if db == nil {
		panic("db cannot be nil")
	}
	if table == "" {
		panic("table cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TableModel{
		db:    db,
		table: table,
		logger: logger.With(
			slog.String("component", "table_model"),
			slog.String("table", table),
		),
	}
}

// Table implements store.Model.Table
func (m *TableModel) Table() string {
	return m.table
}

// Create implements store.Model.Create
func (m *TableModel) Create(ctx context.Context, data store.Record) error {
	log := logger.FromContextOrDefault(ctx, m.logger)

	if len(data) == 0 {
		return store.ErrEmptyData
	}

	columns := sortedColumns(data)
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		quoted[i] = quoteIdent(col)
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = data[col]
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(m.table),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "),
	)

	if _, err := m.db.ExecContext(ctx, query, args...); err != nil {
		log.Debug("insert failed", slog.Int("columns", len(columns)))
		return ClassifyError(err, m.table, "create")
	}

	log.Debug("record created", slog.Int("columns", len(columns)))
	return nil
}

// GetAll implements store.Model.GetAll
func (m *TableModel) GetAll(ctx context.Context) ([]store.Record, error) {
	query := fmt.Sprintf("SELECT * FROM %s", quoteIdent(m.table))
	return m.query(ctx, "get_all", query)
}

// GetAllByColumn implements store.Model.GetAllByColumn
func (m *TableModel) GetAllByColumn(
	ctx context.Context,
	column string,
	value any,
) ([]store.Record, error) {
	query := fmt.Sprintf(
		"SELECT * FROM %s WHERE %s = $1",
		quoteIdent(m.table),
		quoteIdent(column),
	)
	return m.query(ctx, "get_all_by_column", query, value)
}

// FindOne implements store.Model.FindOne
func (m *TableModel) FindOne(ctx context.Context, column string, value any) (store.Record, error) {
	query := fmt.Sprintf(
		"SELECT * FROM %s WHERE %s = $1 LIMIT 1",
		quoteIdent(m.table),
		quoteIdent(column),
	)

	records, err := m.query(ctx, "find_one", query, value)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

// Delete implements store.Model.Delete
func (m *TableModel) Delete(ctx context.Context, column string, value any) (bool, error) {
	log := logger.FromContextOrDefault(ctx, m.logger)

	query := fmt.Sprintf(
		"DELETE FROM %s WHERE %s = $1",
		quoteIdent(m.table),
		quoteIdent(column),
	)

	if _, err := m.db.ExecContext(ctx, query, value); err != nil {
		return false, ClassifyError(err, m.table, "delete")
	}

	log.Debug("delete executed", slog.String("column", column))
	return true, nil
}

// Update implements store.Model.Update
func (m *TableModel) Update(
	ctx context.Context,
	idColumn string,
	idValue any,
	data store.Record,
) (bool, error) {
	log := logger.FromContextOrDefault(ctx, m.logger)

	if len(data) == 0 {
		return false, store.ErrEmptyData
	}

	columns := sortedColumns(data)
	sets := make([]string, len(columns))
	args := make([]any, 0, len(columns)+1)
	for i, col := range columns {
		sets[i] = fmt.Sprintf("%s = $%d", quoteIdent(col), i+1)
		args = append(args, data[col])
	}
	args = append(args, idValue)

	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s = $%d",
		quoteIdent(m.table),
		strings.Join(sets, ", "),
		quoteIdent(idColumn),
		len(args),
	)

	if _, err := m.db.ExecContext(ctx, query, args...); err != nil {
		return false, ClassifyError(err, m.table, "update")
	}

	log.Debug("update executed", slog.Int("columns", len(columns)))
	return true, nil
}

func (m *TableModel) query(
	ctx context.Context,
	op string,
	query string,
	args ...any,
) ([]store.Record, error) {
	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, ClassifyError(err, m.table, op)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			m.logger.Warn("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, ClassifyError(err, m.table, op)
	}
	return records, nil
}

// scanRecords reads every row into a Record keyed by the result column names.
// Byte slices are converted to strings so records serialize as JSON text.
func scanRecords(rows *sql.Rows) ([]store.Record, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	records := make([]store.Record, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}

		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		record := make(store.Record, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				record[col] = string(b)
				continue
			}
			record[col] = values[i]
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return records, nil
}

// sortedColumns gives generated statements a stable column order.
func sortedColumns(data store.Record) []string {
	columns := make([]string, 0, len(data))
	for col := range data {
		columns = append(columns, col)
	}
	sort.Strings(columns)
	return columns
}

func quoteIdent(name string) string {
	return pgx.Identifier{name}.Sanitize()
}
