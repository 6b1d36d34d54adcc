package book

import (
	"booklend/internal/apperror"
)

// Table is the name of the books table.
const Table = "books"

// Header is the books table header row.
var Header = []string{
	"id", "title", "isbn", "authors", "publisher", "publishedDate",
	"imageUrl", "googleBooksId", "createdAt", "createdBy", "genre", "titleKana",
}

const (
	colID = iota
	colTitle
	colISBN
	colAuthors
	colPublisher
	colPublishedDate
	colImageURL
	colGoogleBooksID
	colCreatedAt
	colCreatedBy
	colGenre
	colTitleKana
)

var (
	// ErrNotFound is returned when no book has the requested id.
	ErrNotFound = apperror.NotFound("book not found")
	// ErrDuplicate is wrapped by the error returned when a book with the
	// same ISBN or catalog id already exists.
	ErrDuplicate = apperror.Invalid("book already registered")
	// ErrForbidden is returned when a non-admin tries to delete a book.
	ErrForbidden = apperror.Forbidden("only admins can delete books")
	// ErrOnLoan is returned when deleting a book that is currently lent out.
	ErrOnLoan = apperror.Invalid("book is currently on loan")
)

// Book represents a row of the books table.
type Book struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	ISBN          string   `json:"isbn"`
	Authors       []string `json:"authors"`
	Publisher     string   `json:"publisher"`
	PublishedDate string   `json:"publishedDate"`
	ImageURL      string   `json:"imageUrl"`
	GoogleBooksID string   `json:"googleBooksId"`
	CreatedAt     string   `json:"createdAt"`
	CreatedBy     string   `json:"createdBy"`
	Genre         string   `json:"genre"`
	TitleKana     string   `json:"titleKana"`
}

// WithStats is a book joined with its review aggregate.
type WithStats struct {
	Book
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}

// RatingStats aggregates the reviews of one book.
type RatingStats struct {
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}

// Input is the client-supplied part of a new book. CreatedBy is never read
// from JSON; callers set it from the authenticated identity.
type Input struct {
	Title         string   `json:"title"`
	ISBN          string   `json:"isbn"`
	Authors       []string `json:"authors"`
	Publisher     string   `json:"publisher"`
	PublishedDate string   `json:"publishedDate"`
	ImageURL      string   `json:"imageUrl"`
	GoogleBooksID string   `json:"googleBooksId"`
	Genre         string   `json:"genre"`
	TitleKana     string   `json:"titleKana"`
	CreatedBy     string   `json:"-"`
}
