// Package http serves the single-endpoint action API.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"booklend/internal/apperror"
	"booklend/internal/auth"
	"booklend/internal/book"
	"booklend/internal/httpx"
	"booklend/internal/user"

	"go.uber.org/zap"
)

// Services are the repositories and services the dispatcher calls into.
type Services struct {
	Roles   RoleResolver
	Books   BookRepository
	Loans   LoanRepository
	Reviews ReviewRepository
	Catalog CatalogService
}

// Dispatcher authenticates each POST, decodes its action and routes it to
// the matching repository call.
type Dispatcher struct {
	auth        Authenticator
	tokenHeader string
	svc         Services
	log         *zap.Logger
}

func NewDispatcher(authn Authenticator, tokenHeader string, svc Services, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{auth: authn, tokenHeader: tokenHeader, svc: svc, log: log}
}

// caller is the authenticated identity every action runs as.
type caller struct {
	email string
	role  user.Role
}

type roleResponse struct {
	Role user.Role `json:"role"`
}

func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
		return
	case http.MethodPost:
	default:
		httpx.JSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	ctx := r.Context()

	identity, err := d.auth.Authenticate(ctx, auth.TokenFromRequest(r, d.tokenHeader))
	if err != nil {
		d.writeError(w, r, "", "", err)
		return
	}
	httpx.SetUser(ctx, identity.Email)

	role, err := d.svc.Roles.ResolveRole(ctx, identity.Email)
	if err != nil {
		d.writeError(w, r, "", identity.Email, err)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpx.JSONError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		d.writeError(w, r, "", identity.Email, errInvalidJSON)
		return
	}

	req, err := decodeRequest(body)
	if err != nil {
		d.writeError(w, r, "", identity.Email, err)
		return
	}
	httpx.SetAction(ctx, req.action())

	data, err := d.dispatch(ctx, caller{email: identity.Email, role: role}, req)
	if err != nil {
		d.writeError(w, r, req.action(), identity.Email, err)
		return
	}
	httpx.JSONSuccess(w, data)
}

func (d *Dispatcher) dispatch(ctx context.Context, c caller, req request) (any, error) {
	switch req := req.(type) {
	case *getMyRoleRequest:
		return roleResponse{Role: c.role}, nil

	case *getBooksRequest:
		return d.svc.Books.ListWithStats(ctx)
	case *getBookByIDRequest:
		return d.svc.Books.Get(ctx, req.ID)
	case *searchBooksRequest:
		return d.svc.Books.Search(ctx, req.Query)
	case *createBookRequest:
		in := *req.Book
		in.CreatedBy = c.email
		return d.svc.Books.Create(ctx, in)
	case *createBooksRequest:
		inputs := make([]book.Input, len(req.Books))
		for i, in := range req.Books {
			in.CreatedBy = c.email
			inputs[i] = in
		}
		return d.svc.Books.CreateMany(ctx, inputs)
	case *deleteBookRequest:
		return nil, d.svc.Books.Delete(ctx, req.ID, c.role)

	case *getLoansRequest:
		return d.svc.Loans.List(ctx)
	case *getLoanByBookIDRequest:
		return d.svc.Loans.OpenForBook(ctx, req.BookID)
	case *borrowBookRequest:
		return d.svc.Loans.Borrow(ctx, req.BookID, c.email)
	case *returnBookRequest:
		return d.svc.Loans.Return(ctx, req.LoanID, c.email, c.role)

	case *getAllReviewsRequest:
		return d.svc.Reviews.ListWithBooks(ctx)
	case *getReviewsByBookIDRequest:
		return d.svc.Reviews.ListByBook(ctx, req.BookID)
	case *getMyReviewRequest:
		return d.svc.Reviews.GetByBookAndUser(ctx, req.BookID, c.email)
	case *createOrUpdateReviewRequest:
		return d.svc.Reviews.CreateOrUpdate(ctx, req.Review.input(), c.email)
	case *deleteReviewRequest:
		return nil, d.svc.Reviews.Delete(ctx, req.ID, c.email, c.role)

	case *searchExternalCatalogRequest:
		return d.svc.Catalog.Search(ctx, req.Query)
	case *getExternalCatalogItemRequest:
		return d.svc.Catalog.Get(ctx, req.ID)
	}
	return nil, fmt.Errorf("%w: %T", errUnhandledAction, req)
}

// writeError reports classified errors with their own status and message.
// Everything else is logged and hidden behind a generic 500.
func (d *Dispatcher) writeError(w http.ResponseWriter, r *http.Request, action, email string, err error) {
	if appErr, ok := apperror.As(err); ok && appErr.Kind != apperror.KindInternal {
		httpx.JSONError(w, appErr.Status(), appErr.Message)
		return
	}

	d.log.Error("unexpected error",
		zap.String("action", action),
		zap.String("request_id", httpx.RequestIDFrom(r)),
		zap.String("user", email),
		zap.Error(err),
	)
	httpx.JSONError(w, http.StatusInternalServerError, "internal server error")
}
