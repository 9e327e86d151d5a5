package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "siteapi"

var (
	// ErrTokenMalformed covers every structural failure: bad encoding,
	// wrong signing method, or a signature that does not verify.
	ErrTokenMalformed = errors.New("token malformed")
	// ErrTokenExpired is returned for a well-signed token whose expiry
	// instant has passed.
	ErrTokenExpired = errors.New("token expired")
)

// TokenCodec issues and validates HS256-signed bearer tokens carrying an
// admin's email as the subject claim. Tokens are self-contained: no
// server-side session exists, and validity depends only on the signature
// and the embedded expiry. The signing secret is fixed at construction;
// replacing it invalidates every outstanding token.
type TokenCodec struct {
	secret []byte
}

// NewTokenCodec creates a codec signing with the given secret.
func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{secret: []byte(secret)}
}

// Issue creates a signed token for subject that expires after ttl.
func (c *TokenCodec) Issue(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", fmt.Errorf("token ttl must be positive, got %s", ttl)
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate verifies the token's signature and expiry and returns the
// subject claim. Expected failures come back as ErrTokenExpired or
// ErrTokenMalformed; no other errors are produced for bad input.
func (c *TokenCodec) Validate(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenMalformed
	}
	if !token.Valid || claims.Subject == "" {
		return "", ErrTokenMalformed
	}
	return claims.Subject, nil
}
