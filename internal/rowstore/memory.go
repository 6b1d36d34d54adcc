package rowstore

import (
	"context"
	"fmt"
	"sync"
)

// Memory is an in-process Store used for local development and tests.
type Memory struct {
	mu     sync.Mutex
	tables map[string][][]string
}

func NewMemory() *Memory {
	return &Memory{tables: make(map[string][][]string)}
}

// Seed replaces a table's contents with a copy of rows.
func (m *Memory) Seed(table string, rows ...[]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[table] = copyRows(rows)
}

func (m *Memory) ReadTable(_ context.Context, table string) ([][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyRows(m.tables[table]), nil
}

func (m *Memory) AppendRow(ctx context.Context, table string, values []string) error {
	return m.AppendRows(ctx, table, [][]string{values})
}

func (m *Memory) AppendRows(_ context.Context, table string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[table] = append(m.tables[table], copyRows(rows)...)
	return nil
}

func (m *Memory) UpdateRow(_ context.Context, table string, rowNumber int, values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := m.tables[table]
	if rowNumber < 1 || rowNumber > len(rows) {
		return fmt.Errorf("update %s row %d: out of range", table, rowNumber)
	}
	rows[rowNumber-1] = append([]string(nil), values...)
	return nil
}

func (m *Memory) UpdateCell(_ context.Context, table string, rowNumber, colIndex int, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := m.tables[table]
	if rowNumber < 1 || rowNumber > len(rows) {
		return fmt.Errorf("update %s!%s%d: out of range", table, ColumnLetter(colIndex), rowNumber)
	}
	row := rows[rowNumber-1]
	for len(row) <= colIndex {
		row = append(row, "")
	}
	row[colIndex] = value
	rows[rowNumber-1] = row
	return nil
}

func (m *Memory) DeleteRow(_ context.Context, table string, rowNumber int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := m.tables[table]
	if rowNumber < 1 || rowNumber > len(rows) {
		return fmt.Errorf("delete %s row %d: out of range", table, rowNumber)
	}
	m.tables[table] = append(rows[:rowNumber-1:rowNumber-1], rows[rowNumber:]...)
	return nil
}

func copyRows(rows [][]string) [][]string {
	if rows == nil {
		return nil
	}
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}
