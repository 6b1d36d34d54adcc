// Package auth turns an identity token into an authenticated caller.
package auth

import (
	"context"
	"net/http"
	"strings"

	"booklend/internal/apperror"

	"go.uber.org/zap"
)

var (
	ErrMissingToken     = apperror.Unauthenticated("Token required")
	ErrInvalidToken     = apperror.Unauthenticated("Unauthorized")
	ErrDomainNotAllowed = apperror.Unauthenticated("Domain not allowed")
)

// Identity is a verified caller.
type Identity struct {
	Email   string  `json:"email"`
	Name    string  `json:"name"`
	Picture *string `json:"picture"`
}

// Verifier checks an identity token's signature, audience and expiry. It
// must only return identities whose email the issuer marked as verified.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// Authenticator verifies tokens and applies the email-domain allow-list.
type Authenticator struct {
	verifier Verifier
	domains  []string
	denied   *apperror.Error
	log      *zap.Logger
}

type Option func(*Authenticator)

// WithDomainDeniedStatus reports disallowed domains as 403 instead of 401.
func WithDomainDeniedStatus(status int) Option {
	return func(a *Authenticator) {
		if status == http.StatusForbidden {
			a.denied = &apperror.Error{
				Kind:    apperror.KindForbidden,
				Message: ErrDomainNotAllowed.Message,
				Err:     ErrDomainNotAllowed,
			}
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(a *Authenticator) { a.log = log }
}

// NewAuthenticator builds an Authenticator. An empty domain list lets every
// verified email through.
func NewAuthenticator(v Verifier, allowedDomains []string, opts ...Option) *Authenticator {
	a := &Authenticator{
		verifier: v,
		domains:  ParseDomains(strings.Join(allowedDomains, ",")),
		denied:   ErrDomainNotAllowed,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Authenticate returns the caller behind token, or one of ErrMissingToken,
// ErrInvalidToken or ErrDomainNotAllowed.
func (a *Authenticator) Authenticate(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrMissingToken
	}
	id, err := a.verifier.Verify(ctx, token)
	if err != nil {
		a.log.Debug("token verification failed", zap.Error(err))
		return Identity{}, ErrInvalidToken
	}
	if id.Email == "" {
		return Identity{}, ErrInvalidToken
	}
	if id.Name == "" {
		id.Name = id.Email
	}
	if !a.domainAllowed(id.Email) {
		return Identity{}, a.denied
	}
	return id, nil
}

func (a *Authenticator) domainAllowed(email string) bool {
	if len(a.domains) == 0 {
		return true
	}
	_, domain, ok := strings.Cut(email, "@")
	if !ok {
		return false
	}
	for _, d := range a.domains {
		if strings.EqualFold(d, domain) {
			return true
		}
	}
	return false
}

// ParseDomains splits a comma separated list, dropping blanks.
func ParseDomains(s string) []string {
	var out []string
	for _, d := range strings.Split(s, ",") {
		if d = strings.TrimSpace(d); d != "" {
			out = append(out, d)
		}
	}
	return out
}

// TokenFromRequest reads the token from header, falling back to an
// "Authorization: Bearer" header.
func TokenFromRequest(r *http.Request, header string) string {
	if header != "" {
		if tok := strings.TrimSpace(r.Header.Get(header)); tok != "" {
			return tok
		}
	}
	authz := r.Header.Get("Authorization")
	if strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	}
	return ""
}
