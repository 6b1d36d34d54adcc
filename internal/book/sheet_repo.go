package book

import (
	"context"
	"fmt"
	"strings"
	"time"

	"booklend/internal/apperror"
	"booklend/internal/rowstore"
	"booklend/internal/user"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var (
	now   = time.Now
	newID = uuid.NewString
)

// SheetRepo implements book storage on top of a row store. Every query is a
// full scan of the books table.
type SheetRepo struct {
	store rowstore.Store
	stats StatsSource
	loans LoanChecker
}

// NewSheetRepo creates a book repository. stats and loans may be nil: books
// then list with zero stats and deletion skips the open-loan guard.
func NewSheetRepo(store rowstore.Store, stats StatsSource, loans LoanChecker) *SheetRepo {
	return &SheetRepo{store: store, stats: stats, loans: loans}
}

func (r *SheetRepo) readRows(ctx context.Context) ([][]string, error) {
	rows, err := r.store.ReadTable(ctx, Table)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", Table, err)
	}
	return rowstore.DataRows(rows), nil
}

// List returns all books in sheet order.
func (r *SheetRepo) List(ctx context.Context) ([]Book, error) {
	rows, err := r.readRows(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Book, 0, len(rows))
	for _, row := range rows {
		out = append(out, rowToBook(row))
	}
	return out, nil
}

// ListWithStats returns all books joined with their review aggregates.
func (r *SheetRepo) ListWithStats(ctx context.Context) ([]WithStats, error) {
	var (
		books []Book
		stats map[string]RatingStats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		books, err = r.List(gctx)
		return err
	})
	if r.stats != nil {
		g.Go(func() error {
			var err error
			stats, err = r.stats.StatsByBook(gctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]WithStats, 0, len(books))
	for _, b := range books {
		s := stats[b.ID]
		out = append(out, WithStats{Book: b, AverageRating: s.AverageRating, ReviewCount: s.ReviewCount})
	}
	return out, nil
}

// Get returns the book with id, or nil when there is none.
func (r *SheetRepo) Get(ctx context.Context, id string) (*Book, error) {
	books, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range books {
		if books[i].ID == id {
			return &books[i], nil
		}
	}
	return nil, nil
}

// Search matches query case-insensitively against the title and each
// author, and case-sensitively as a substring of the ISBN.
func (r *SheetRepo) Search(ctx context.Context, query string) ([]Book, error) {
	books, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Book, 0)
	for _, b := range books {
		if matches(b, query) {
			out = append(out, b)
		}
	}
	return out, nil
}

func matches(b Book, query string) bool {
	lower := strings.ToLower(query)
	if strings.Contains(strings.ToLower(b.Title), lower) {
		return true
	}
	for _, a := range b.Authors {
		if strings.Contains(strings.ToLower(a), lower) {
			return true
		}
	}
	return strings.Contains(b.ISBN, query)
}

// Create registers one book. It fails without writing when a book with the
// same non-empty ISBN or catalog id already exists.
func (r *SheetRepo) Create(ctx context.Context, in Input) (Book, error) {
	existing, err := r.List(ctx)
	if err != nil {
		return Book{}, err
	}
	if dup := findDuplicate(existing, in.ISBN, in.GoogleBooksID); dup != nil {
		return Book{}, apperror.With(ErrDuplicate, "already registered: %s", dup.Title)
	}

	b := newBook(in)
	if err := r.store.AppendRow(ctx, Table, bookToRow(b)); err != nil {
		return Book{}, fmt.Errorf("append %s: %w", Table, err)
	}
	return b, nil
}

// CreateMany registers a batch in one append. Inputs that duplicate a book
// that existed before the call are skipped; duplicates within the batch
// itself are not detected. Only the created books are returned.
func (r *SheetRepo) CreateMany(ctx context.Context, inputs []Input) ([]Book, error) {
	existing, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	created := make([]Book, 0, len(inputs))
	rows := make([][]string, 0, len(inputs))
	for _, in := range inputs {
		if findDuplicate(existing, in.ISBN, in.GoogleBooksID) != nil {
			continue
		}
		b := newBook(in)
		created = append(created, b)
		rows = append(rows, bookToRow(b))
	}

	if err := r.store.AppendRows(ctx, Table, rows); err != nil {
		return nil, fmt.Errorf("append %s: %w", Table, err)
	}
	return created, nil
}

// Delete removes the book with id. Only admins may delete, and a book that
// is currently lent out cannot be deleted.
func (r *SheetRepo) Delete(ctx context.Context, id string, role user.Role) error {
	if !role.IsAdmin() {
		return ErrForbidden
	}
	rows, err := r.readRows(ctx)
	if err != nil {
		return err
	}
	for i, row := range rows {
		if rowstore.Cell(row, colID) != id {
			continue
		}
		if r.loans != nil {
			onLoan, err := r.loans.HasOpenLoan(ctx, id)
			if err != nil {
				return err
			}
			if onLoan {
				return ErrOnLoan
			}
		}
		if err := r.store.DeleteRow(ctx, Table, rowstore.DataRowNumber(i)); err != nil {
			return fmt.Errorf("delete %s row: %w", Table, err)
		}
		return nil
	}
	return ErrNotFound
}

func findDuplicate(books []Book, isbn, googleBooksID string) *Book {
	for i := range books {
		if isbn != "" && books[i].ISBN == isbn {
			return &books[i]
		}
		if googleBooksID != "" && books[i].GoogleBooksID == googleBooksID {
			return &books[i]
		}
	}
	return nil
}

func newBook(in Input) Book {
	authors := in.Authors
	if authors == nil {
		authors = []string{}
	}
	return Book{
		ID:            newID(),
		Title:         in.Title,
		ISBN:          in.ISBN,
		Authors:       authors,
		Publisher:     in.Publisher,
		PublishedDate: in.PublishedDate,
		ImageURL:      in.ImageURL,
		GoogleBooksID: in.GoogleBooksID,
		CreatedAt:     rowstore.FormatTime(now()),
		CreatedBy:     in.CreatedBy,
		Genre:         in.Genre,
		TitleKana:     in.TitleKana,
	}
}

// splitAuthors is lossy for author names containing a comma.
func splitAuthors(s string) []string {
	out := []string{}
	for _, a := range strings.Split(s, ",") {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

func rowToBook(row []string) Book {
	return Book{
		ID:            rowstore.Cell(row, colID),
		Title:         rowstore.Cell(row, colTitle),
		ISBN:          rowstore.Cell(row, colISBN),
		Authors:       splitAuthors(rowstore.Cell(row, colAuthors)),
		Publisher:     rowstore.Cell(row, colPublisher),
		PublishedDate: rowstore.Cell(row, colPublishedDate),
		ImageURL:      rowstore.Cell(row, colImageURL),
		GoogleBooksID: rowstore.Cell(row, colGoogleBooksID),
		CreatedAt:     rowstore.Cell(row, colCreatedAt),
		CreatedBy:     rowstore.Cell(row, colCreatedBy),
		Genre:         rowstore.Cell(row, colGenre),
		TitleKana:     rowstore.Cell(row, colTitleKana),
	}
}

func bookToRow(b Book) []string {
	return []string{
		b.ID,
		b.Title,
		b.ISBN,
		strings.Join(b.Authors, ", "),
		b.Publisher,
		b.PublishedDate,
		b.ImageURL,
		b.GoogleBooksID,
		b.CreatedAt,
		b.CreatedBy,
		b.Genre,
		b.TitleKana,
	}
}
