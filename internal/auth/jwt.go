// Package auth issues and validates the bearer tokens reviewers use.
// Tokens are HS256 JWTs whose subject is the user id.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/GameXcalibur/LynxATS/internal/config"
)

var (
	// ErrNoSecret is returned by New when SECRET_KEY is empty.
	ErrNoSecret = errors.New("SECRET_KEY is empty")
	// ErrInvalidIssuer is returned for tokens minted by someone else.
	ErrInvalidIssuer = errors.New("invalid token issuer")
	// ErrTokenRevoked is returned for tokens revoked by logout.
	ErrTokenRevoked = errors.New("token has been revoked")
)

// revocationCleanup is how often expired revocations are purged.
const revocationCleanup = 5 * time.Minute

// JWT signs and validates tokens with one secret.
type JWT struct {
	secret  []byte
	issuer  string
	ttl     time.Duration
	revoked RevocationStore
}

func New(cfg config.AuthConfig) (*JWT, error) {
	if cfg.SecretKey == "" {
		return nil, ErrNoSecret
	}
	return &JWT{
		secret:  []byte(cfg.SecretKey),
		issuer:  cfg.Issuer,
		ttl:     cfg.TokenTTL,
		revoked: NewMemoryRevocations(revocationCleanup),
	}, nil
}

// GenerateToken returns a signed token for userID.
func (j *JWT) GenerateToken(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    j.issuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	})

	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidatedToken parses encoded and returns its claims. Expired tokens
// fail with an error wrapping jwt.ErrTokenExpired.
func (j *JWT) ValidatedToken(encoded string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(encoded, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid access token")
	}
	if !claims.VerifyIssuer(j.issuer, true) {
		return nil, ErrInvalidIssuer
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	if claims.ID != "" && j.revoked.IsRevoked(claims.ID) {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// Revoke makes ValidatedToken refuse the token of claims until it expires.
func (j *JWT) Revoke(claims *jwt.RegisteredClaims) error {
	if claims.ID == "" {
		return errors.New("token has no id")
	}
	if claims.ExpiresAt == nil {
		return errors.New("token has no expiry")
	}
	j.revoked.Revoke(claims.ID, claims.ExpiresAt.Time)
	return nil
}
