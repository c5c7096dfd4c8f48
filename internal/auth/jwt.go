package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidAccessToken is returned for every verification failure.
// Expired, tampered and malformed tokens are deliberately not
// distinguished so callers cannot build an oracle out of the error.
var ErrInvalidAccessToken = errors.New("invalid or expired access token")

// Claims are the identity claims embedded in an access token.
type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies short-lived access tokens with a
// server-held HMAC secret. Access tokens are never persisted; validity
// is purely signature plus expiry.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured access-token lifetime.
func (c *TokenCodec) TTL() time.Duration { return c.ttl }

// Issue signs a token carrying the user's identity, valid for the
// configured TTL from now.
func (c *TokenCodec) Issue(userID uint, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify checks signature and expiry and returns the embedded claims.
// Any failure yields ErrInvalidAccessToken.
func (c *TokenCodec) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidAccessToken
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidAccessToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidAccessToken
	}

	return claims, nil
}
