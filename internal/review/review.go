package review

import (
	"booklend/internal/apperror"
)

// Table is the name of the reviews table.
const Table = "reviews"

// Header is the reviews table header row.
var Header = []string{"id", "bookId", "rating", "comment", "createdBy", "createdAt", "updatedAt"}

const (
	colID = iota
	colBookID
	colRating
	colComment
	colCreatedBy
	colCreatedAt
	colUpdatedAt
)

// DeletedBookTitle stands in for the title of a reviewed book that no longer
// exists.
const DeletedBookTitle = "(deleted book)"

var (
	ErrNotFound = apperror.NotFound("review not found")
	ErrNotOwner = apperror.Forbidden("you can only delete your own review")
)

type Review struct {
	ID        string `json:"id"`
	BookID    string `json:"bookId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedBy string `json:"createdBy"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// WithBook is a review denormalized with the title and cover of its book.
type WithBook struct {
	Review
	BookTitle    string `json:"bookTitle"`
	BookImageURL string `json:"bookImageUrl"`
}

// Input is what a user submits. The author always comes from the caller.
type Input struct {
	BookID  string `json:"bookId"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}
