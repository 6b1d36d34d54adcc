package review

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"booklend/internal/book"
	"booklend/internal/rowstore"
	"booklend/internal/user"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var (
	now   = time.Now
	newID = uuid.NewString
)

type SheetRepo struct {
	store rowstore.Store
	books BookLister
}

var _ book.StatsSource = (*SheetRepo)(nil)

func NewSheetRepo(store rowstore.Store, books BookLister) *SheetRepo {
	return &SheetRepo{store: store, books: books}
}

func (r *SheetRepo) readRows(ctx context.Context) ([][]string, error) {
	rows, err := r.store.ReadTable(ctx, Table)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", Table, err)
	}
	return rowstore.DataRows(rows), nil
}

// StatsByBook aggregates ratings per book in one scan. Books without reviews
// are absent from the result.
func (r *SheetRepo) StatsByBook(ctx context.Context) (map[string]book.RatingStats, error) {
	rows, err := r.readRows(ctx)
	if err != nil {
		return nil, err
	}
	type acc struct{ total, count int }
	sums := make(map[string]*acc)
	for _, row := range rows {
		id := rowstore.Cell(row, colBookID)
		a, ok := sums[id]
		if !ok {
			a = &acc{}
			sums[id] = a
		}
		a.total += parseRating(rowstore.Cell(row, colRating))
		a.count++
	}

	out := make(map[string]book.RatingStats, len(sums))
	for id, a := range sums {
		out[id] = book.RatingStats{
			AverageRating: float64(a.total) / float64(a.count),
			ReviewCount:   a.count,
		}
	}
	return out, nil
}

// ListWithBooks returns every review with its book's title and image, most
// recently updated first.
func (r *SheetRepo) ListWithBooks(ctx context.Context) ([]WithBook, error) {
	var (
		rows  [][]string
		books []book.Book
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = r.readRows(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		books, err = r.books.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byID := make(map[string]book.Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}

	out := make([]WithBook, 0, len(rows))
	for _, row := range rows {
		rv := WithBook{Review: rowToReview(row), BookTitle: DeletedBookTitle}
		if b, ok := byID[rv.BookID]; ok {
			rv.BookTitle = b.Title
			rv.BookImageURL = b.ImageURL
		}
		out = append(out, rv)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return rowstore.ParseTime(out[i].UpdatedAt).After(rowstore.ParseTime(out[j].UpdatedAt))
	})
	return out, nil
}

// ListByBook returns the reviews of bookID in sheet order.
func (r *SheetRepo) ListByBook(ctx context.Context, bookID string) ([]Review, error) {
	rows, err := r.readRows(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Review, 0)
	for _, row := range rows {
		if rowstore.Cell(row, colBookID) == bookID {
			out = append(out, rowToReview(row))
		}
	}
	return out, nil
}

// GetByBookAndUser returns the review email wrote for bookID, or nil.
func (r *SheetRepo) GetByBookAndUser(ctx context.Context, bookID, email string) (*Review, error) {
	rows, err := r.readRows(ctx)
	if err != nil {
		return nil, err
	}
	if i := findOwn(rows, bookID, email); i >= 0 {
		rv := rowToReview(rows[i])
		return &rv, nil
	}
	return nil, nil
}

// CreateOrUpdate keeps one review per book and author: an existing review is
// overwritten in place, keeping its id and createdAt.
func (r *SheetRepo) CreateOrUpdate(ctx context.Context, in Input, author string) (Review, error) {
	rows, err := r.readRows(ctx)
	if err != nil {
		return Review{}, err
	}
	ts := rowstore.FormatTime(now())

	if i := findOwn(rows, in.BookID, author); i >= 0 {
		existing := rowToReview(rows[i])
		rv := Review{
			ID:        existing.ID,
			BookID:    in.BookID,
			Rating:    in.Rating,
			Comment:   in.Comment,
			CreatedBy: author,
			CreatedAt: existing.CreatedAt,
			UpdatedAt: ts,
		}
		if err := r.store.UpdateRow(ctx, Table, rowstore.DataRowNumber(i), reviewToRow(rv)); err != nil {
			return Review{}, fmt.Errorf("update %s: %w", Table, err)
		}
		return rv, nil
	}

	rv := Review{
		ID:        newID(),
		BookID:    in.BookID,
		Rating:    in.Rating,
		Comment:   in.Comment,
		CreatedBy: author,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if err := r.store.AppendRow(ctx, Table, reviewToRow(rv)); err != nil {
		return Review{}, fmt.Errorf("append %s: %w", Table, err)
	}
	return rv, nil
}

// Delete removes a review. Only its author or an admin may delete it.
func (r *SheetRepo) Delete(ctx context.Context, id, caller string, role user.Role) error {
	rows, err := r.readRows(ctx)
	if err != nil {
		return err
	}
	for i, row := range rows {
		if rowstore.Cell(row, colID) != id {
			continue
		}
		if rowstore.Cell(row, colCreatedBy) != caller && !role.IsAdmin() {
			return ErrNotOwner
		}
		if err := r.store.DeleteRow(ctx, Table, rowstore.DataRowNumber(i)); err != nil {
			return fmt.Errorf("delete %s row: %w", Table, err)
		}
		return nil
	}
	return ErrNotFound
}

func findOwn(rows [][]string, bookID, email string) int {
	for i, row := range rows {
		if rowstore.Cell(row, colBookID) == bookID && rowstore.Cell(row, colCreatedBy) == email {
			return i
		}
	}
	return -1
}

// parseRating reads a rating cell; anything unparseable counts as 0.
func parseRating(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func rowToReview(row []string) Review {
	return Review{
		ID:        rowstore.Cell(row, colID),
		BookID:    rowstore.Cell(row, colBookID),
		Rating:    parseRating(rowstore.Cell(row, colRating)),
		Comment:   rowstore.Cell(row, colComment),
		CreatedBy: rowstore.Cell(row, colCreatedBy),
		CreatedAt: rowstore.Cell(row, colCreatedAt),
		UpdatedAt: rowstore.Cell(row, colUpdatedAt),
	}
}

func reviewToRow(rv Review) []string {
	return []string{
		rv.ID,
		rv.BookID,
		strconv.Itoa(rv.Rating),
		rv.Comment,
		rv.CreatedBy,
		rv.CreatedAt,
		rv.UpdatedAt,
	}
}
