package http

import (
	"context"

	"booklend/internal/auth"
	"booklend/internal/book"
	"booklend/internal/catalog"
	"booklend/internal/loan"
	"booklend/internal/review"
	"booklend/internal/user"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (auth.Identity, error)
}

type RoleResolver interface {
	ResolveRole(ctx context.Context, email string) (user.Role, error)
}

type BookRepository interface {
	ListWithStats(ctx context.Context) ([]book.WithStats, error)
	Get(ctx context.Context, id string) (*book.Book, error)
	Search(ctx context.Context, query string) ([]book.Book, error)
	Create(ctx context.Context, in book.Input) (book.Book, error)
	CreateMany(ctx context.Context, inputs []book.Input) ([]book.Book, error)
	Delete(ctx context.Context, id string, role user.Role) error
}

type LoanRepository interface {
	List(ctx context.Context) ([]loan.Loan, error)
	OpenForBook(ctx context.Context, bookID string) (*loan.Loan, error)
	Borrow(ctx context.Context, bookID, borrower string) (loan.Loan, error)
	Return(ctx context.Context, loanID, caller string, role user.Role) (loan.Loan, error)
}

type ReviewRepository interface {
	ListWithBooks(ctx context.Context) ([]review.WithBook, error)
	ListByBook(ctx context.Context, bookID string) ([]review.Review, error)
	GetByBookAndUser(ctx context.Context, bookID, email string) (*review.Review, error)
	CreateOrUpdate(ctx context.Context, in review.Input, author string) (review.Review, error)
	Delete(ctx context.Context, id, caller string, role user.Role) error
}

type CatalogService interface {
	Search(ctx context.Context, query string) (catalog.SearchResult, error)
	Get(ctx context.Context, id string) (catalog.Volume, error)
}
