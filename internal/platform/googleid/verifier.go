// Package googleid verifies Google Sign-In ID tokens.
package googleid

import (
	"context"
	"errors"
	"fmt"

	"booklend/internal/auth"

	"google.golang.org/api/idtoken"
	"google.golang.org/api/option"
)

var ErrUnverifiedEmail = errors.New("email not verified")

type validator interface {
	Validate(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)
}

// Verifier checks tokens against Google's signing keys for one OAuth client.
type Verifier struct {
	clientID  string
	validator validator
}

var _ auth.Verifier = (*Verifier)(nil)

func NewVerifier(ctx context.Context, clientID string, opts ...option.ClientOption) (*Verifier, error) {
	if clientID == "" {
		return nil, errors.New("googleid: client id is required")
	}
	v, err := idtoken.NewValidator(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("googleid: new validator: %w", err)
	}
	return &Verifier{clientID: clientID, validator: v}, nil
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Identity, error) {
	payload, err := v.validator.Validate(ctx, token, v.clientID)
	if err != nil {
		return auth.Identity{}, err
	}
	return identityFromClaims(payload.Claims)
}

func identityFromClaims(claims map[string]any) (auth.Identity, error) {
	email, _ := claims["email"].(string)
	if email == "" {
		return auth.Identity{}, errors.New("token has no email")
	}
	if verified, _ := claims["email_verified"].(bool); !verified {
		return auth.Identity{}, ErrUnverifiedEmail
	}
	id := auth.Identity{Email: email}
	id.Name, _ = claims["name"].(string)
	if pic, _ := claims["picture"].(string); pic != "" {
		id.Picture = &pic
	}
	return id, nil
}
