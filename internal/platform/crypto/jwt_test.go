package crypto

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	token, jti, err := GenerateToken("test-secret", "user-123", time.Hour)

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, jti)

	claims, err := ParseToken("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Sub)
	assert.Equal(t, jti, claims.ID)
	assert.Equal(t, TokenIssuer, claims.Issuer)
	assert.Equal(t, "user-123", claims.Subject)
}

func TestGenerateToken_UniqueJTIs(t *testing.T) {
	token1, jti1, err1 := GenerateToken("test-secret", "user-123", time.Hour)
	token2, jti2, err2 := GenerateToken("test-secret", "user-123", time.Hour)

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.NotEqual(t, jti1, jti2)
	assert.NotEqual(t, token1, token2)
}

func TestParseToken(t *testing.T) {
	secret := "test-secret"

	t.Run("invalid signature", func(t *testing.T) {
		token, _, err := GenerateToken("wrong-secret", "user-123", time.Hour)
		require.NoError(t, err)

		claims, err := ParseToken(secret, token)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("expired token", func(t *testing.T) {
		c := Claims{
			Sub: "user-123",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    TokenIssuer,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
		require.NoError(t, err)

		claims, err := ParseToken(secret, token)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
		assert.Nil(t, claims)
	})

	t.Run("missing subject", func(t *testing.T) {
		c := Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    TokenIssuer,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
		require.NoError(t, err)

		claims, err := ParseToken(secret, token)
		assert.ErrorIs(t, err, jwt.ErrTokenInvalidClaims)
		assert.Nil(t, claims)
	})

	t.Run("foreign issuer", func(t *testing.T) {
		c := Claims{
			Sub: "user-123",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "someone-else",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
		require.NoError(t, err)

		claims, err := ParseToken(secret, token)
		assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
		assert.Nil(t, claims)
	})

	t.Run("no expiry", func(t *testing.T) {
		c := Claims{
			Sub:              "user-123",
			RegisteredClaims: jwt.RegisteredClaims{Issuer: TokenIssuer},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
		require.NoError(t, err)

		claims, err := ParseToken(secret, token)
		assert.ErrorIs(t, err, jwt.ErrTokenRequiredClaimMissing)
		assert.Nil(t, claims)
	})

	t.Run("wrong signing method", func(t *testing.T) {
		c := Claims{Sub: "user-123"}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, c).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		claims, err := ParseToken(secret, token)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("malformed token", func(t *testing.T) {
		claims, err := ParseToken(secret, "not.a.valid.token")
		assert.Error(t, err)
		assert.Nil(t, claims)
	})
}
