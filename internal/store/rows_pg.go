package store

// Row store implementation (Postgres)

import (
	"context"
	"fmt"
	"time"

	"booklend/internal/rowstore"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RowsPG keeps every table in sheet_rows, ordered by position. Row numbers
// are derived from that order, so deleting a row shifts later rows up the
// same way a spreadsheet does.
type RowsPG struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

var _ rowstore.Store = (*RowsPG)(nil)

func NewRowsPG(db *pgxpool.Pool, timeout time.Duration) *RowsPG {
	return &RowsPG{db: db, timeout: timeout}
}

func (r *RowsPG) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// positionAt resolves a 1-based row number to its position key.
const positionAt = `
	SELECT position FROM sheet_rows
	WHERE sheet = $1
	ORDER BY position
	OFFSET $2 LIMIT 1`

func (r *RowsPG) ReadTable(ctx context.Context, table string) ([][]string, error) {
	const query = `
	SELECT array(SELECT coalesce(c, '') FROM unnest(cells) WITH ORDINALITY AS t(c, n) ORDER BY n)
	FROM sheet_rows
	WHERE sheet = $1
	ORDER BY position`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		var cells []string
		if err := rows.Scan(&cells); err != nil {
			return nil, err
		}
		out = append(out, cells)
	}
	return out, rows.Err()
}

func (r *RowsPG) AppendRow(ctx context.Context, table string, values []string) error {
	return r.AppendRows(ctx, table, [][]string{values})
}

func (r *RowsPG) AppendRows(ctx context.Context, table string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(`INSERT INTO sheet_rows (sheet, cells) VALUES ($1, $2)`, table, row)
	}
	return r.db.SendBatch(timeoutCtx, batch).Close()
}

func (r *RowsPG) UpdateRow(ctx context.Context, table string, rowNumber int, values []string) error {
	query := `UPDATE sheet_rows SET cells = $3 WHERE position = (` + positionAt + `)`
	return r.execRow(ctx, table, rowNumber, query, values)
}

func (r *RowsPG) UpdateCell(ctx context.Context, table string, rowNumber, colIndex int, value string) error {
	// Assigning past the end of a text[] pads with NULLs, which ReadTable
	// reads back as "".
	query := fmt.Sprintf(`UPDATE sheet_rows SET cells[%d] = $3 WHERE position = (%s)`, colIndex+1, positionAt)
	return r.execRow(ctx, table, rowNumber, query, value)
}

func (r *RowsPG) DeleteRow(ctx context.Context, table string, rowNumber int) error {
	query := `DELETE FROM sheet_rows WHERE position = (` + positionAt + `)`
	return r.execRow(ctx, table, rowNumber, query)
}

func (r *RowsPG) execRow(ctx context.Context, table string, rowNumber int, query string, extra ...any) error {
	if rowNumber < 1 {
		return fmt.Errorf("%s row %d: out of range", table, rowNumber)
	}
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	args := append([]any{table, rowNumber - 1}, extra...)
	tag, err := r.db.Exec(timeoutCtx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s row %d: out of range", table, rowNumber)
	}
	return nil
}
