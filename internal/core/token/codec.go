// Package token signs and verifies the bearer tokens issued at login.
//
// Tokens are HS256 JWTs carrying a point-in-time snapshot of the user's
// identity. Verification is pure computation; nothing here touches storage.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/velora/identity-api/internal/core/domain"
)

var ErrTokenMalformed = errors.New("malformed token")
var ErrTokenExpired = errors.New("token expired")
var ErrTokenInvalid = errors.New("invalid token")

// Claims is the payload embedded in a token. Subject holds the user ID.
// Role mirrors the user's permission label at issuance time; authorization
// decisions must not trust it — the access guard re-fetches the user.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Codec issues and verifies tokens with a single shared symmetric secret.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec builds a Codec. An empty secret or non-positive TTL is a
// configuration error: signing with an empty key would make every token
// forgeable, so it is rejected here rather than at request time.
func NewCodec(secret string, ttl time.Duration) (*Codec, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("token: signing secret must not be empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token: ttl must be positive, got %s", ttl)
	}
	return &Codec{secret: []byte(secret), ttl: ttl}, nil
}

// Issue signs a token for the given user, valid for the configured TTL.
func (c *Codec) Issue(user *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := &Claims{
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify checks the signature and expiry of a raw token and returns its
// claims. Failures are reported as ErrTokenMalformed (structural decode
// failure), ErrTokenExpired, or ErrTokenInvalid (bad signature or any
// other rejection).
func (c *Codec) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return nil, ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	case err != nil, !tkn.Valid:
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
