// Package sessionx issues and verifies the signed bearer tokens that stand in
// for browser sessions. Tokens are HS256 JWTs carrying the user id as the
// subject claim; the domain services never see them, they only receive the
// resolved user id.
package sessionx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is how long a session token stays valid unless configured
// otherwise.
const DefaultTTL = 24 * time.Hour

var (
	ErrInvalidToken = errors.New("sessionx: invalid token")
	ErrExpiredToken = errors.New("sessionx: token expired")
)

// Manager signs and verifies session tokens with a single shared secret.
type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewManager(secret []byte, issuer string, ttl time.Duration) *Manager {
	// Only an unset TTL falls back to the default; a negative TTL is kept
	// as-given and issues already-expired tokens.
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Manager{secret: secret, issuer: issuer, ttl: ttl}
}

// TTL reports the lifetime of newly issued tokens.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Issue creates a signed session token for the given user id.
func (m *Manager) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    m.issuer,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify checks the token signature, issuer and expiry, and returns the
// user id from the subject claim.
func (m *Manager) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
