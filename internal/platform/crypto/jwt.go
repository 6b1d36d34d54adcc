// Package crypto issues and verifies HS256 identity tokens for development
// deployments that run without Google sign-in.
package crypto

import (
	"context"
	"errors"
	"time"

	"booklend/internal/auth"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "booklend-dev"

// Claims mirrors the subset of a Google ID token the API relies on.
type Claims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name,omitempty"`
	Picture       string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

var ErrUnverifiedEmail = errors.New("email not verified")

func GenerateToken(secret string, id auth.Identity, ttl time.Duration) (string, error) {
	c := Claims{
		Email:         id.Email,
		EmailVerified: true,
		Name:          id.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.Email,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	if id.Picture != nil {
		c.Picture = *id.Picture
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return t.SignedString([]byte(secret))
}

func ParseToken(secret, tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil {
		return nil, err
	}
	if claims, ok := t.Claims.(*Claims); ok && t.Valid {
		return claims, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}

// Verifier is an auth.Verifier over tokens from GenerateToken.
type Verifier struct {
	secret string
}

var _ auth.Verifier = (*Verifier)(nil)

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: secret}
}

func (v *Verifier) Verify(_ context.Context, token string) (auth.Identity, error) {
	claims, err := ParseToken(v.secret, token)
	if err != nil {
		return auth.Identity{}, err
	}
	if !claims.EmailVerified {
		return auth.Identity{}, ErrUnverifiedEmail
	}
	id := auth.Identity{Email: claims.Email, Name: claims.Name}
	if claims.Picture != "" {
		id.Picture = &claims.Picture
	}
	return id, nil
}
