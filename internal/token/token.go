// Package token issues and verifies signed download tokens. Emailed
// download links carry one; it binds a link to a single result identifier
// for a limited time.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"diacfix/internal/config"
	"diacfix/internal/domain"
)

const issuerName = "diacfix"

// Issuer signs and verifies download tokens. With no secret configured it
// is disabled and download links are unauthenticated.
type Issuer struct {
	secret []byte
	expiry time.Duration
}

// NewIssuer creates an Issuer from download config.
func NewIssuer(cfg *config.DownloadConfig) *Issuer {
	expiry := cfg.TokenExpiry
	if expiry <= 0 {
		expiry = 60 * time.Minute
	}
	return &Issuer{
		secret: []byte(cfg.TokenSecret),
		expiry: expiry,
	}
}

// Enabled reports whether download links require a token.
func (i *Issuer) Enabled() bool {
	return len(i.secret) > 0
}

// Issue signs a token bound to the given result identifier.
func (i *Issuer) Issue(resultID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuerName,
		Subject:   resultID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.expiry)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("signing download token: %w", err)
	}
	return signed, nil
}

// Verify checks the token signature, expiry, and that it was issued for
// the given result identifier.
func (i *Issuer) Verify(tokenString string, resultID uuid.UUID) error {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuerName),
	)
	if err != nil {
		return domain.ErrTokenInvalid
	}
	if claims.Subject != resultID.String() {
		return domain.ErrTokenInvalid
	}
	return nil
}
