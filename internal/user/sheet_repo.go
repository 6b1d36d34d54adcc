package user

import (
	"context"
	"fmt"
	"time"

	"booklend/internal/rowstore"
)

var now = time.Now

type SheetRepo struct {
	store rowstore.Store
}

func NewSheetRepo(store rowstore.Store) *SheetRepo {
	return &SheetRepo{store: store}
}

// ResolveRole returns RoleAdmin only when the first row matching email says
// "admin". An unknown email is a regular user; no row is ever created.
func (r *SheetRepo) ResolveRole(ctx context.Context, email string) (Role, error) {
	rows, err := r.store.ReadTable(ctx, Table)
	if err != nil {
		return RoleUser, fmt.Errorf("read %s: %w", Table, err)
	}
	for _, row := range rowstore.DataRows(rows) {
		if rowstore.Cell(row, colEmail) != email {
			continue
		}
		if Role(rowstore.Cell(row, colRole)) == RoleAdmin {
			return RoleAdmin, nil
		}
		return RoleUser, nil
	}
	return RoleUser, nil
}

// List returns every users row.
func (r *SheetRepo) List(ctx context.Context) ([]Record, error) {
	rows, err := r.store.ReadTable(ctx, Table)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", Table, err)
	}
	data := rowstore.DataRows(rows)
	out := make([]Record, 0, len(data))
	for _, row := range data {
		out = append(out, Record{
			Email:     rowstore.Cell(row, colEmail),
			Role:      Role(rowstore.Cell(row, colRole)),
			CreatedAt: rowstore.Cell(row, colCreatedAt),
		})
	}
	return out, nil
}

// Grant sets the role of email, appending a users row when there is none.
// It is used by operator tooling; request handling never writes users.
func (r *SheetRepo) Grant(ctx context.Context, email string, role Role) error {
	rows, err := r.store.ReadTable(ctx, Table)
	if err != nil {
		return fmt.Errorf("read %s: %w", Table, err)
	}
	for i, row := range rowstore.DataRows(rows) {
		if rowstore.Cell(row, colEmail) == email {
			if err := r.store.UpdateCell(ctx, Table, rowstore.DataRowNumber(i), colRole, string(role)); err != nil {
				return fmt.Errorf("update %s role: %w", Table, err)
			}
			return nil
		}
	}
	if err := r.store.AppendRow(ctx, Table, []string{email, string(role), rowstore.FormatTime(now())}); err != nil {
		return fmt.Errorf("append %s: %w", Table, err)
	}
	return nil
}
