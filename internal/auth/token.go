// Package auth signs visitors in through an external identity provider and
// tracks their sessions.
//
// Sign-in uses the OAuth 2.0 authorization code flow (Google, GitHub). On
// success a local user is upserted, a server-side session row is created, and
// the browser receives a signed session token whose jti names that row. Every
// request re-checks the row, so signing out or expiring a session takes effect
// immediately even though the token itself is still well-formed.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "snitchon"

// ErrInvalidToken is returned for tokens that are malformed, tampered with,
// expired, or issued by someone else.
var ErrInvalidToken = errors.New("auth: invalid session token")

// Claims is what a session token carries.
type Claims struct {
	SessionID string // jti
	UserID    string // sub
	Provider  string
	ExpiresAt time.Time
}

type sessionClaims struct {
	Provider string `json:"prv,omitempty"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies session tokens with HS256.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

// NewTokenService returns a TokenService. The secret must be at least 16
// bytes.
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: session secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret), now: time.Now}, nil
}

// Issue signs a token for the given session.
func (s *TokenService) Issue(c Claims) (string, error) {
	if c.SessionID == "" || c.UserID == "" {
		return "", errors.New("auth: token needs a session and a user")
	}
	claims := sessionClaims{
		Provider: c.Provider,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        c.SessionID,
			Subject:   c.UserID,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(c.ExpiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}
	return signed, nil
}

// Parse verifies tok and returns its claims. Any failure is reported as
// ErrInvalidToken, wrapping the underlying cause.
func (s *TokenService) Parse(tok string) (Claims, error) {
	if tok == "" {
		return Claims{}, ErrInvalidToken
	}
	var sc sessionClaims
	_, err := jwt.ParseWithClaims(tok, &sc,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if sc.ID == "" || sc.Subject == "" {
		return Claims{}, ErrInvalidToken
	}
	return Claims{
		SessionID: sc.ID,
		UserID:    sc.Subject,
		Provider:  sc.Provider,
		ExpiresAt: sc.ExpiresAt.Time,
	}, nil
}
