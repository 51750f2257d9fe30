// Package token issues and verifies the signed bearer credentials that
// prove identity and role. Tokens are stateless: there is no revocation
// list, so a token stays valid until its embedded expiry even if the
// account's password changes afterwards. That trade-off is deliberate and
// asserted in the tests rather than patched over.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the fixed expiry horizon for issued tokens.
const DefaultTTL = 7 * 24 * time.Hour

// Verification failure modes. The guard maps each to a distinct denial
// message, so they must stay distinguishable via errors.Is.
var (
	ErrTokenMissing   = errors.New("token missing")
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenSignature = errors.New("token signature invalid")
	ErrTokenExpired   = errors.New("token expired")
)

// Claims is the signed payload: identity reference, role, and the display
// fields the guard attaches to the request context.
type Claims struct {
	jwt.RegisteredClaims
	Role     string `json:"role"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Service signs and verifies tokens with a server-held secret injected at
// construction. The secret and TTL are read-only after startup.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func New(secret []byte, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{secret: secret, ttl: ttl}
}

// Issue signs a token for the given identity. The expiry horizon is fixed
// at construction time.
func (s *Service) Issue(userID, role, username, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Role:     role,
		Username: username,
		Email:    email,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("token: sign failed: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a raw token. Failures never panic past this
// boundary; each is classified as missing, malformed, bad signature, or
// expired.
func (s *Service) Verify(raw string) (*Claims, error) {
	if raw == "" {
		return nil, ErrTokenMissing
	}

	claims := &Claims{}
	t, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, fmt.Errorf("%w: %v", ErrTokenSignature, err)
		default:
			return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
		}
	}
	if !t.Valid || claims.Subject == "" {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
