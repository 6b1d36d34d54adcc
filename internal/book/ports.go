package book

import (
	"context"
)

// StatsSource provides review aggregates keyed by book id. Books without
// reviews are absent from the map.
type StatsSource interface {
	StatsByBook(ctx context.Context) (map[string]RatingStats, error)
}

// LoanChecker reports whether a book is currently lent out.
type LoanChecker interface {
	HasOpenLoan(ctx context.Context, bookID string) (bool, error)
}
