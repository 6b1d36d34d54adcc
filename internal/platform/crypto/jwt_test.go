package crypto

import (
	"context"
	"testing"
	"time"

	"booklend/internal/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret-key"

func TestGenerateAndParseToken(t *testing.T) {
	pic := "https://example.com/a.png"
	token, err := GenerateToken(secret, auth.Identity{Email: "a@example.com", Name: "Alice", Picture: &pic}, time.Hour)
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		claims, err := ParseToken(secret, token)
		require.NoError(t, err)
		assert.Equal(t, "a@example.com", claims.Email)
		assert.True(t, claims.EmailVerified)
		assert.Equal(t, "Alice", claims.Name)
		assert.Equal(t, pic, claims.Picture)
	})

	t.Run("invalid signature", func(t *testing.T) {
		claims, err := ParseToken("wrong-secret", token)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseToken(secret, "invalid.token.here")
		assert.Error(t, err)
	})
}

func TestParseToken_Expired(t *testing.T) {
	token, err := GenerateToken(secret, auth.Identity{Email: "a@example.com"}, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(secret, token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerifier(t *testing.T) {
	v := NewVerifier(secret)
	ctx := context.Background()

	t.Run("verified email", func(t *testing.T) {
		token, err := GenerateToken(secret, auth.Identity{Email: "a@example.com", Name: "Alice"}, time.Hour)
		require.NoError(t, err)

		id, err := v.Verify(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, auth.Identity{Email: "a@example.com", Name: "Alice"}, id)
	})

	t.Run("unverified email", func(t *testing.T) {
		c := Claims{
			Email: "a@example.com",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    issuer,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
		require.NoError(t, err)

		_, err = v.Verify(ctx, token)
		assert.ErrorIs(t, err, ErrUnverifiedEmail)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		c := Claims{Email: "a@example.com", EmailVerified: true, RegisteredClaims: jwt.RegisteredClaims{Issuer: "someone-else"}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
		require.NoError(t, err)

		_, err = v.Verify(ctx, token)
		assert.Error(t, err)
	})
}
