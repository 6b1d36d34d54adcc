package http

import (
	"bytes"
	"encoding/json"
	"errors"

	"booklend/internal/apperror"
	"booklend/internal/book"
	"booklend/internal/review"
)

var (
	errInvalidJSON     = apperror.Invalid("invalid JSON body")
	errActionRequired  = apperror.Invalid("action is required")
	errUnknownAction   = apperror.Invalid("unknown action")
	errUnhandledAction = errors.New("request variant has no handler")
)

// request is the closed set of actions the API accepts. Each variant carries
// exactly the parameters its action needs.
type request interface {
	action() string
}

type (
	getMyRoleRequest struct{}

	getBooksRequest struct{}

	getBookByIDRequest struct {
		ID string `json:"id" validate:"required"`
	}

	searchBooksRequest struct {
		Query string `json:"query" validate:"required"`
	}

	createBookRequest struct {
		Book *book.Input `json:"book" validate:"required"`
	}

	createBooksRequest struct {
		Books []book.Input `json:"books" validate:"required,min=1"`
	}

	deleteBookRequest struct {
		ID string `json:"id" validate:"required"`
	}

	getLoansRequest struct{}

	getLoanByBookIDRequest struct {
		BookID string `json:"bookId" validate:"required"`
	}

	borrowBookRequest struct {
		BookID string `json:"bookId" validate:"required"`
	}

	returnBookRequest struct {
		LoanID string `json:"loanId" validate:"required"`
	}

	getAllReviewsRequest struct{}

	getReviewsByBookIDRequest struct {
		BookID string `json:"bookId" validate:"required"`
	}

	getMyReviewRequest struct {
		BookID string `json:"bookId" validate:"required"`
	}

	createOrUpdateReviewRequest struct {
		Review *reviewPayload `json:"review" validate:"required"`
	}

	deleteReviewRequest struct {
		ID string `json:"id" validate:"required"`
	}

	searchExternalCatalogRequest struct {
		Query string `json:"query" validate:"required"`
	}

	getExternalCatalogItemRequest struct {
		ID string `json:"id" validate:"required"`
	}
)

type reviewPayload struct {
	BookID  string `json:"bookId" validate:"required"`
	Rating  int    `json:"rating" validate:"rating"`
	Comment string `json:"comment"`
}

func (p reviewPayload) input() review.Input {
	return review.Input{BookID: p.BookID, Rating: p.Rating, Comment: p.Comment}
}

func (getMyRoleRequest) action() string { return "getMyRole" }
func (getBooksRequest) action() string { return "getBooks" }
func (getBookByIDRequest) action() string { return "getBookById" }
func (searchBooksRequest) action() string { return "searchBooks" }
func (createBookRequest) action() string { return "createBook" }
func (createBooksRequest) action() string { return "createBooks" }
func (deleteBookRequest) action() string { return "deleteBook" }
func (getLoansRequest) action() string { return "getLoans" }
func (getLoanByBookIDRequest) action() string { return "getLoanByBookId" }
func (borrowBookRequest) action() string { return "borrowBook" }
func (returnBookRequest) action() string { return "returnBook" }
func (getAllReviewsRequest) action() string { return "getAllReviews" }
func (getReviewsByBookIDRequest) action() string { return "getReviewsByBookId" }
func (getMyReviewRequest) action() string { return "getMyReview" }
func (createOrUpdateReviewRequest) action() string { return "createOrUpdateReview" }
func (deleteReviewRequest) action() string { return "deleteReview" }
func (searchExternalCatalogRequest) action() string { return "searchExternalCatalog" }
func (getExternalCatalogItemRequest) action() string { return "getExternalCatalogItem" }

var newRequest = map[string]func() request{
	"getMyRole":              func() request { return &getMyRoleRequest{} },
	"getBooks":               func() request { return &getBooksRequest{} },
	"getBookById":            func() request { return &getBookByIDRequest{} },
	"searchBooks":            func() request { return &searchBooksRequest{} },
	"createBook":             func() request { return &createBookRequest{} },
	"createBooks":            func() request { return &createBooksRequest{} },
	"deleteBook":             func() request { return &deleteBookRequest{} },
	"getLoans":               func() request { return &getLoansRequest{} },
	"getLoanByBookId":        func() request { return &getLoanByBookIDRequest{} },
	"borrowBook":             func() request { return &borrowBookRequest{} },
	"returnBook":             func() request { return &returnBookRequest{} },
	"getAllReviews":          func() request { return &getAllReviewsRequest{} },
	"getReviewsByBookId":     func() request { return &getReviewsByBookIDRequest{} },
	"getMyReview":            func() request { return &getMyReviewRequest{} },
	"createOrUpdateReview":   func() request { return &createOrUpdateReviewRequest{} },
	"deleteReview":           func() request { return &deleteReviewRequest{} },
	"searchExternalCatalog":  func() request { return &searchExternalCatalogRequest{} },
	"getExternalCatalogItem": func() request { return &getExternalCatalogItemRequest{} },
}

// decodeRequest reads the action name first, then decodes and validates the
// parameters of the matching variant. An empty body reads as {}.
func decodeRequest(body []byte) (request, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errActionRequired
	}

	var envelope struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, errActionRequired
		}
		return nil, errInvalidJSON
	}
	if envelope.Action == "" {
		return nil, errActionRequired
	}

	factory, ok := newRequest[envelope.Action]
	if !ok {
		return nil, apperror.With(errUnknownAction, "unknown action: %s", envelope.Action)
	}

	req := factory()
	if err := json.Unmarshal(body, req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, apperror.Invalid("%s is required", typeErr.Field)
		}
		return nil, errInvalidJSON
	}
	if err := ValidateStruct(req); err != nil {
		return nil, err
	}
	return req, nil
}
