// Package rowstore treats named sheets as ad hoc tables: row 1 is the
// header, data rows follow in insertion order.
//
// Row numbers are 1-based and include the header, so the first data row is
// row 2. Every cell is a string; an empty cell and a missing cell read the
// same.
package rowstore

import (
	"context"
	"errors"
	"time"
)

// HeaderRow is the row number of the header.
const HeaderRow = 1

// ErrTableNotFound is returned by backends that cannot resolve a table name.
var ErrTableNotFound = errors.New("table not found")

// Store is the row-level contract every backend implements. Errors from the
// backing service are returned as is; Store implementations neither retry
// nor cache.
type Store interface {
	// ReadTable returns every row including the header at index 0. An
	// empty table may return no rows at all.
	ReadTable(ctx context.Context, table string) ([][]string, error)
	AppendRow(ctx context.Context, table string, values []string) error
	// AppendRows appends all rows in a single backend call. An empty batch
	// is a no-op.
	AppendRows(ctx context.Context, table string, rows [][]string) error
	UpdateRow(ctx context.Context, table string, rowNumber int, values []string) error
	UpdateCell(ctx context.Context, table string, rowNumber, colIndex int, value string) error
	DeleteRow(ctx context.Context, table string, rowNumber int) error
}

// ColumnLetter converts a zero-based column index into spreadsheet column
// letters: 0 is "A", 25 is "Z", 26 is "AA".
func ColumnLetter(index int) string {
	var buf []byte
	for n := index; n >= 0; n = n/26 - 1 {
		buf = append([]byte{byte('A' + n%26)}, buf...)
	}
	return string(buf)
}

// Cell returns row[i], or "" when the row is shorter than i+1.
func Cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// EnsureHeader writes header as row 1 when the table has no rows yet. It
// reports whether it wrote anything.
func EnsureHeader(ctx context.Context, s Store, table string, header []string) (bool, error) {
	rows, err := s.ReadTable(ctx, table)
	if err != nil {
		return false, err
	}
	if len(rows) > 0 {
		return false, nil
	}
	if err := s.AppendRow(ctx, table, header); err != nil {
		return false, err
	}
	return true, nil
}

// TimeLayout is the timestamp format written to cells: UTC, millisecond
// precision, "Z" suffix.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTime renders t in TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime parses a timestamp cell. Unparseable or empty cells yield the
// zero time.
func ParseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// DataRows drops the header from the result of ReadTable. The i-th data row
// lives at row number i+2.
func DataRows(rows [][]string) [][]string {
	if len(rows) <= HeaderRow {
		return nil
	}
	return rows[HeaderRow:]
}

// DataRowNumber converts an index into DataRows into a row number.
func DataRowNumber(index int) int {
	return index + HeaderRow + 1
}
