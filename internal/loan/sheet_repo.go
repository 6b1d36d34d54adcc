package loan

import (
	"context"
	"fmt"
	"time"

	"booklend/internal/book"
	"booklend/internal/rowstore"
	"booklend/internal/user"

	"github.com/google/uuid"
)

var (
	now   = time.Now
	newID = uuid.NewString
)

// SheetRepo stores loans in the loans table. The open-loan check and the
// append that follows it are not atomic.
type SheetRepo struct {
	store rowstore.Store
	books BookFinder
}

var _ book.LoanChecker = (*SheetRepo)(nil)

func NewSheetRepo(store rowstore.Store, books BookFinder) *SheetRepo {
	return &SheetRepo{store: store, books: books}
}

func (r *SheetRepo) readRows(ctx context.Context) ([][]string, error) {
	rows, err := r.store.ReadTable(ctx, Table)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", Table, err)
	}
	return rowstore.DataRows(rows), nil
}

// List returns all loans, open and closed, in sheet order.
func (r *SheetRepo) List(ctx context.Context) ([]Loan, error) {
	rows, err := r.readRows(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Loan, 0, len(rows))
	for _, row := range rows {
		out = append(out, rowToLoan(row))
	}
	return out, nil
}

// OpenForBook returns the first open loan of bookID, or nil.
func (r *SheetRepo) OpenForBook(ctx context.Context, bookID string) (*Loan, error) {
	loans, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range loans {
		if loans[i].BookID == bookID && loans[i].Open() {
			return &loans[i], nil
		}
	}
	return nil, nil
}

func (r *SheetRepo) HasOpenLoan(ctx context.Context, bookID string) (bool, error) {
	l, err := r.OpenForBook(ctx, bookID)
	if err != nil {
		return false, err
	}
	return l != nil, nil
}

// Borrow opens a loan of bookID for borrower.
func (r *SheetRepo) Borrow(ctx context.Context, bookID, borrower string) (Loan, error) {
	open, err := r.OpenForBook(ctx, bookID)
	if err != nil {
		return Loan{}, err
	}
	if open != nil {
		return Loan{}, ErrAlreadyOnLoan
	}

	b, err := r.books.Get(ctx, bookID)
	if err != nil {
		return Loan{}, err
	}
	if b == nil {
		return Loan{}, book.ErrNotFound
	}

	l := Loan{
		ID:         newID(),
		BookID:     bookID,
		Borrower:   borrower,
		BorrowedAt: rowstore.FormatTime(now()),
	}
	if err := r.store.AppendRow(ctx, Table, loanToRow(l)); err != nil {
		return Loan{}, fmt.Errorf("append %s: %w", Table, err)
	}
	return l, nil
}

// Return closes the loan with loanID. Only its borrower or an admin may do
// so. Returning an already closed loan overwrites its return time.
func (r *SheetRepo) Return(ctx context.Context, loanID, caller string, role user.Role) (Loan, error) {
	rows, err := r.readRows(ctx)
	if err != nil {
		return Loan{}, err
	}
	for i, row := range rows {
		if rowstore.Cell(row, colID) != loanID {
			continue
		}
		l := rowToLoan(row)
		if l.Borrower != caller && !role.IsAdmin() {
			return Loan{}, ErrNotBorrower
		}
		returnedAt := rowstore.FormatTime(now())
		if err := r.store.UpdateCell(ctx, Table, rowstore.DataRowNumber(i), colReturnedAt, returnedAt); err != nil {
			return Loan{}, fmt.Errorf("update %s: %w", Table, err)
		}
		l.ReturnedAt = &returnedAt
		return l, nil
	}
	return Loan{}, ErrNotFound
}

func rowToLoan(row []string) Loan {
	l := Loan{
		ID:         rowstore.Cell(row, colID),
		BookID:     rowstore.Cell(row, colBookID),
		Borrower:   rowstore.Cell(row, colBorrower),
		BorrowedAt: rowstore.Cell(row, colBorrowedAt),
	}
	if s := rowstore.Cell(row, colReturnedAt); s != "" {
		l.ReturnedAt = &s
	}
	return l
}

func loanToRow(l Loan) []string {
	returnedAt := ""
	if l.ReturnedAt != nil {
		returnedAt = *l.ReturnedAt
	}
	return []string{l.ID, l.BookID, l.Borrower, l.BorrowedAt, returnedAt}
}
