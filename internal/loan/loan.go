package loan

import (
	"booklend/internal/apperror"
)

// Table is the name of the loans table.
const Table = "loans"

// Header is the loans table header row.
var Header = []string{"id", "bookId", "borrower", "borrowedAt", "returnedAt"}

const (
	colID = iota
	colBookID
	colBorrower
	colBorrowedAt
	colReturnedAt
)

var (
	ErrAlreadyOnLoan = apperror.Invalid("book is already on loan")
	ErrNotFound      = apperror.NotFound("loan not found")

	// ErrNotBorrower is returned when someone other than the borrower or an
	// admin tries to close a loan.
	ErrNotBorrower = apperror.Forbidden("only the borrower can return this book")
)

// Loan is one row of the loans table. A nil ReturnedAt means the book is
// still on loan.
type Loan struct {
	ID         string  `json:"id"`
	BookID     string  `json:"bookId"`
	Borrower   string  `json:"borrower"`
	BorrowedAt string  `json:"borrowedAt"`
	ReturnedAt *string `json:"returnedAt"`
}

// Open reports whether the loan has not been returned yet.
func (l Loan) Open() bool {
	return l.ReturnedAt == nil
}
