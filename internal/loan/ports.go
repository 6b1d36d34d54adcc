package loan

import (
	"context"

	"booklend/internal/book"
)

// BookFinder resolves a book id. A nil book with a nil error means the id
// does not exist.
type BookFinder interface {
	Get(ctx context.Context, id string) (*book.Book, error)
}
