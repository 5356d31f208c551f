package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const deleteAudience = "entry-delete"

// deleteClaims binds a confirmation to one user and one entry.
type deleteClaims struct {
	EntryID string `json:"eid"`
	jwt.RegisteredClaims
}

// DeleteConfirmer issues and checks the short-lived tokens that gate a
// permanent delete. A token is only good for the entry and user it was
// issued for, and only until it expires.
type DeleteConfirmer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewDeleteConfirmer returns a confirmer signing with HS256.
func NewDeleteConfirmer(secret string, ttl time.Duration) *DeleteConfirmer {
	return &DeleteConfirmer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed confirmation token and its expiry.
func (c *DeleteConfirmer) Issue(userID, entryID string) (string, time.Time, error) {
	now := c.now()
	exp := now.Add(c.ttl)
	claims := deleteClaims{
		EntryID: entryID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Audience:  jwt.ClaimStrings{deleteAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tok, exp, nil
}

// Verify returns ErrDeleteNotConfirmed unless token was issued by this
// confirmer for exactly (userID, entryID) and has not expired.
func (c *DeleteConfirmer) Verify(token, userID, entryID string) error {
	if token == "" {
		return ErrDeleteNotConfirmed
	}
	var claims deleteClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(deleteAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return errors.Join(ErrDeleteNotConfirmed, err)
	}
	if claims.Subject != userID || claims.EntryID != entryID {
		return ErrDeleteNotConfirmed
	}
	return nil
}
