package crypto

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenIssuer is stamped into every token and required when parsing.
const TokenIssuer = "bookshelf"

// Claims identifies the user a bearer token was minted for.
type Claims struct {
	Sub string `json:"sub"`
	jwt.RegisteredClaims
}

// GenerateToken mints an HS256 bearer token for userID and returns it with its jti.
func GenerateToken(secret, userID string, ttl time.Duration) (token, jti string, err error) {
	now := time.Now()
	jti = uuid.NewString()
	claims := Claims{
		Sub: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    TokenIssuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}
	return token, jti, nil
}

var parserOptions = []jwt.ParserOption{
	jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	jwt.WithIssuer(TokenIssuer),
	jwt.WithExpirationRequired(),
}

// ParseToken verifies tokenStr and returns its claims. Tokens without a subject are rejected.
func ParseToken(secret, tokenStr string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, parserOptions...)
	if err != nil {
		return nil, err
	}
	if claims.Sub == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
