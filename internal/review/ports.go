package review

import (
	"context"

	"booklend/internal/book"
)

// BookLister supplies the books reviews are joined against.
type BookLister interface {
	List(ctx context.Context) ([]book.Book, error)
}
